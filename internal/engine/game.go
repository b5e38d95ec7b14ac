package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
	"crawler-server/internal/engine/handlers"
	"crawler-server/internal/engine/handlers/actions"
	"crawler-server/internal/engine/handlers/admin"
	"crawler-server/internal/infrastructure/storage"
	"crawler-server/internal/systems"
	"crawler-server/pkg/dungeon"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

var (
	// ErrActionRejected - действие невозможно, ход не потрачен.
	ErrActionRejected = handlers.ErrActionRejected
	// ErrInvalidPayload - команда не разобралась.
	ErrInvalidPayload = handlers.ErrInvalidPayload
	// ErrWrongState - команда не принимается в текущем состоянии.
	ErrWrongState = errors.New("command not allowed in current state")
	// ErrAdminDisabled - админ-команды выключены конфигом.
	ErrAdminDisabled = errors.New("admin commands are disabled")
	// ErrUnknownCommand - такой админ-команды нет.
	ErrUnknownCommand = errors.New("unknown admin command")
)

// Game - одна партия. Не безопасна для конкурентного использования:
// транспорт вызывает её из одной горутины.
type Game struct {
	cfg    Config
	tables *dungeon.Tables
	rng    *rand.Rand

	Map    *GameMap
	Player *domain.Entity
	Log    *domain.MessageLog

	state   enums.GameState
	visible mapset.Set[int]
	turn    int

	// Подсостояния
	pendingItem   int
	targeting     string
	resumeEnemies bool

	frameSeq      int
	dispatch      map[domain.ActionType]handlers.HandlerFunc
	adminDispatch map[string]handlers.HandlerFunc

	// recording - запись принятых команд, nil - не пишем
	recording *storage.ReplaySession
}

// StartRecording начинает запись партии. В запись попадают только команды,
// которые движок принял к исполнению: выключенные и неизвестные админ-команды
// не пишутся, поэтому проигрывание с Admin=true их не воспроизведёт.
func (g *Game) StartRecording() *storage.ReplaySession {
	g.recording = &storage.ReplaySession{Seed: g.cfg.Seed, Timestamp: time.Now().Unix()}
	return g.recording
}

// NewGame создаёт партию: первый уровень, героя и его стартовый кинжал.
func NewGame(cfg Config, tables *dungeon.Tables) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		cfg:           cfg,
		tables:        tables,
		rng:           rand.New(rand.NewSource(cfg.Seed)),
		Log:           domain.NewMessageLog(cfg.MessageLogSize),
		Player:        dungeon.NewPlayer(dungeon.DefaultPlayer),
		dispatch:      actions.Handlers(),
		adminDispatch: admin.Handlers(),
	}
	g.Map = NewGameMap(cfg.LayoutParams(), tables, dungeon.PopulateOptions{MaxAttempts: cfg.PopulateAttempts})

	if err := g.Map.Build(g.rng, 1, g.Player); err != nil {
		return nil, err
	}
	if err := g.giveStartingGear(); err != nil {
		return nil, err
	}

	g.state = enums.StatePlayerTurn
	g.recomputeFOV()
	g.Log.Add("Добро пожаловать в подземелье! Найдите лестницу вниз.", domain.MsgSystem, domain.ColorLightViolet)

	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"seed":      cfg.Seed,
	}).Info("Game created.")
	return g, nil
}

// giveStartingGear выдаёт кинжал: ID предмет получает в реестре,
// затем переходит в инвентарь и надевается.
func (g *Game) giveStartingGear() error {
	dagger := dungeon.StartingDagger.SpawnItem(g.Player.Pos)
	id, err := g.Map.Registry.Insert(dagger)
	if err != nil {
		return fmt.Errorf("starting gear: %w", err)
	}
	g.Map.Registry.Remove(id)
	if err := g.Player.Inventory.AddItem(dagger); err != nil {
		return fmt.Errorf("starting gear: %w", err)
	}
	g.Player.Equipment.Toggle(dagger)
	return nil
}

func (g *Game) State() enums.GameState { return g.state }

func (g *Game) Turn() int { return g.turn }

// Visible - множество индексов видимых клеток.
func (g *Game) Visible() mapset.Set[int] { return g.visible }

// Execute выполняет команду игрока и, если ход потрачен, фазу врагов.
func (g *Game) Execute(cmd domain.Command) error {
	gameLogger := logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"action":    cmd.Action.String(),
		"state":     g.state.String(),
		"turn":      g.turn,
	})

	if !Allows(g.state, cmd.Action) {
		gameLogger.Debug("Command not allowed in this state.")
		return fmt.Errorf("%w: %s in %s", ErrWrongState, cmd.Action, g.state)
	}
	handler, ok := g.dispatch[cmd.Action]
	if !ok {
		return fmt.Errorf("%w: no handler for %s", ErrWrongState, cmd.Action)
	}
	// Команда, которая не помещается в запись, не исполняется и без записи
	act := storage.ReplayAction{Turn: g.turn, Action: cmd.Action, Payload: cmd.Payload}
	if err := storage.CheckAction(act); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if g.recording != nil {
		g.recording.Actions = append(g.recording.Actions, act)
	}

	res, err := handler(g.handlerContext(), cmd.Payload)
	if err != nil {
		if errors.Is(err, ErrActionRejected) || errors.Is(err, ErrInvalidPayload) {
			gameLogger.WithError(err).Debug("Command rejected.")
		} else {
			gameLogger.WithError(err).Error("Command failed.")
		}
		return err
	}

	return g.applyResult(res)
}

// ExecuteAdmin выполняет отладочную команду. Ход не тратится, враги не ходят.
func (g *Game) ExecuteAdmin(name string, payload json.RawMessage) error {
	if !g.cfg.Admin {
		return ErrAdminDisabled
	}
	if g.state == enums.StatePlayerDead {
		return fmt.Errorf("%w: admin %s in %s", ErrWrongState, name, g.state)
	}
	name = strings.ToUpper(name)
	handler, ok := g.adminDispatch[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	act := storage.ReplayAction{Turn: g.turn, Admin: name, Payload: payload}
	if err := storage.CheckAction(act); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	res, err := handler(g.handlerContext(), payload)
	if err != nil {
		return err
	}
	if g.recording != nil {
		g.recording.Actions = append(g.recording.Actions, act)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"admin":     name,
		"turn":      g.turn,
	}).Warn("Admin command executed.")

	if res.PlayerDied {
		g.killPlayer()
		return nil
	}
	g.recomputeFOV()
	return nil
}

func (g *Game) handlerContext() handlers.Context {
	return handlers.Context{
		Grid:        g.Map.Grid,
		Registry:    g.Map.Registry,
		Actor:       g.Player,
		Visible:     g.visible,
		Log:         g.Log,
		State:       g.state,
		PendingItem: g.pendingItem,
		Spawn:       g.tables.Spawn,
	}
}

// recomputeFOV пересчитывает поле зрения и помечает клетки исследованными.
func (g *Game) recomputeFOV() {
	g.visible = systems.ComputeFOV(g.Map.Grid, g.Player.Pos, g.cfg.FOVRadius)
	g.visible.Each(func(idx int) {
		x, y := g.Map.Grid.Coords(idx)
		g.Map.Grid.MarkExplored(x, y)
	})
}
