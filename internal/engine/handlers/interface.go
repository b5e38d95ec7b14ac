package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"

	"github.com/zyedidia/generic/mapset"
)

var (
	// ErrActionRejected - действие игрока невозможно (стена, пустой пол, полный рюкзак).
	// Ход не тратится, причина уже записана в журнал.
	ErrActionRejected = errors.New("action rejected")
	// ErrInvalidPayload - данные команды не разобрались или не прошли валидацию.
	ErrInvalidPayload = errors.New("invalid payload")
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Grid     *domain.Grid
	Registry *domain.Registry
	Actor    *domain.Entity // Игрок
	Visible  mapset.Set[int]
	Log      *domain.MessageLog

	State enums.GameState
	// PendingItem - индекс предмета, ожидающего выбора цели.
	PendingItem int

	// Spawn создаёт монстра или предмет по ключу таблицы контента (для админ-команд).
	Spawn func(key string, pos domain.Position) *domain.Entity
}

// Result - возвращает результат выполнения команды.
// Хендлер не переключает состояние сам, он сообщает движку, что произошло.
type Result struct {
	// TurnTaken: действие заняло ход, после него ходят враги.
	TurnTaken bool
	// NextState: StateNone - оставить текущее состояние.
	NextState enums.GameState

	PendingItem int
	Targeting   string

	Descend    bool
	LeveledUp  bool
	PlayerDied bool
}

// HandlerFunc - это контракт для любой команды (MOVE, USE, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// TurnResult - ход потрачен, возврат в обычный режим.
func TurnResult() Result {
	return Result{TurnTaken: true, NextState: enums.StatePlayerTurn}
}

// Reject пишет причину в журнал и возвращает ErrActionRejected.
func Reject(ctx Context, reason string) (Result, error) {
	ctx.Log.Add(reason, domain.MsgInfo, domain.ColorYellow)
	return Result{}, fmt.Errorf("%w: %s", ErrActionRejected, reason)
}

// Rejected оборачивает ошибку системы: сообщение уже в журнале.
func Rejected(err error) (Result, error) {
	return Result{}, fmt.Errorf("%w: %w", ErrActionRejected, err)
}
