package systems

import (
	"crawler-server/internal/core/types"
	"crawler-server/internal/domain"

	"github.com/zyedidia/generic/mapset"
)

// ValidationResult - результат проверки цели
type ValidationResult struct {
	Pos     domain.Position
	Target  *domain.Entity // Живая сущность в клетке, если есть
	Valid   bool
	Message string // Сообщение об ошибке, если Valid == false
}

// ValidateTarget проверяет клетку, выбранную в режиме прицеливания.
// Клетка должна быть в поле зрения игрока.
func ValidateTarget(grid *domain.Grid, visible mapset.Set[int], reg *domain.Registry, pos domain.Position) ValidationResult {
	if !grid.InBounds(pos.X, pos.Y) {
		return ValidationResult{Pos: pos, Message: "Цель за пределами карты."}
	}
	if !InFOV(grid, visible, pos) {
		return ValidationResult{Pos: pos, Message: "Вы не можете выбрать клетку вне поля зрения."}
	}

	res := ValidationResult{Pos: pos, Valid: true}
	for _, e := range reg.At(pos.X, pos.Y) {
		if e.IsAlive() {
			res.Target = e
			break
		}
	}
	return res
}

// ResolveEntityTarget переводит прицел по ID сущности в клетку.
func ResolveEntityTarget(reg *domain.Registry, id types.EntityID) (domain.Position, bool) {
	e, ok := reg.Get(id)
	if !ok {
		return domain.Position{}, false
	}
	return e.Pos, true
}
