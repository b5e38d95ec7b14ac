package agent

import (
	"encoding/json"
	"errors"

	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
	"crawler-server/internal/engine"
	"crawler-server/internal/systems"
	"crawler-server/pkg/api"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Bot - автоигрок. Видит партию так же, как клиент: только через api.Frame,
// и отвечает обычными командами. Нужен для прогонов движка без человека.
//
// Цикл:
//  1. Frame -> локальная карта из исследованных тайлов и видимых сущностей.
//  2. Decide -> одна команда по приоритетам: меню, бой, лут, лестница, разведка.
//  3. Execute -> отказ движка (стена, пустой пол) не ошибка, бот просто решает заново.
type Bot struct {
	Game *engine.Game

	// Последняя замеченная лестница на текущей глубине
	stairs      *domain.Position
	stairsDepth int
}

// RunStats - итог прогона.
type RunStats struct {
	Commands int
	Rejected int
	Turns    int
	Depth    int
	Died     bool
}

func NewBot(g *engine.Game) *Bot {
	return &Bot{Game: g}
}

// Run отдаёт до maxCommands команд или пока герой не погибнет.
func (b *Bot) Run(maxCommands int) (RunStats, error) {
	var stats RunStats
	botLogger := logger.Log.WithFields(logrus.Fields{
		"component": "bot",
		"seed":      b.Game.Seed(),
	})

	for stats.Commands < maxCommands {
		frame := b.Game.Frame()
		if frame.State == enums.StatePlayerDead.String() {
			stats.Died = true
			break
		}

		cmd := b.Decide(frame)
		stats.Commands++

		err := b.Game.Execute(cmd)
		switch {
		case err == nil:
		case errors.Is(err, engine.ErrActionRejected), errors.Is(err, engine.ErrWrongState), errors.Is(err, engine.ErrInvalidPayload):
			stats.Rejected++
			botLogger.WithError(err).Debug("Bot command rejected.")
		default:
			return stats, err
		}
	}

	stats.Turns = b.Game.Turn()
	stats.Depth = b.Game.Map.Depth
	if b.Game.State() == enums.StatePlayerDead {
		stats.Died = true
	}

	botLogger.WithFields(logrus.Fields{
		"commands": stats.Commands,
		"rejected": stats.Rejected,
		"turns":    stats.Turns,
		"depth":    stats.Depth,
		"died":     stats.Died,
	}).Info("Bot run finished.")
	return stats, nil
}

// Decide выбирает команду по кадру.
func (b *Bot) Decide(f api.Frame) domain.Command {
	switch f.State {
	case enums.StateLevelUp.String():
		return command(domain.ActionLevelUp, api.StatPayload{Stat: api.StatHP})
	case enums.StateTargeting.String(), enums.StateShowInventory.String(), enums.StateDropInventory.String():
		return command(domain.ActionCancel, nil)
	}
	if f.Player == nil {
		return command(domain.ActionWait, nil)
	}

	if b.stairsDepth != f.Depth {
		b.stairs, b.stairsDepth = nil, f.Depth
	}

	grid := buildLocalGrid(f)
	me, others := b.findActors(f)
	if me == nil {
		return command(domain.ActionWait, nil)
	}

	// 1. Бой: ближайший видимый живой монстр
	if target := nearest(me, others, func(e *domain.Entity) bool {
		return e.Type == enums.EntityTypeMonster && e.Fighter != nil
	}); target != nil {
		return b.stepTo(me, target, grid, others)
	}

	// 2. Лут под ногами и в поле зрения
	if len(f.Player.Inventory) < f.Player.Capacity {
		if item := nearest(me, others, func(e *domain.Entity) bool { return e.Type == enums.EntityTypeItem }); item != nil {
			if item.Pos == me.Pos {
				return command(domain.ActionPickup, nil)
			}
			return b.stepTo(me, item, grid, others)
		}
	}

	// 3. Лестница
	if b.stairs != nil {
		if *b.stairs == me.Pos {
			return command(domain.ActionDescend, nil)
		}
		return b.stepTo(me, &domain.Entity{Pos: *b.stairs}, grid, others)
	}

	// 4. Разведка: ближайшая исследованная клетка на границе тумана
	if dx, dy, ok := exploreStep(grid, f, me.Pos); ok {
		return command(domain.ActionMove, api.DirectionPayload{Dx: dx, Dy: dy})
	}
	return command(domain.ActionWait, nil)
}

func (b *Bot) stepTo(me, target *domain.Entity, grid *domain.Grid, others []*domain.Entity) domain.Command {
	dx, dy, ok := systems.FindStep(me, target, grid, others)
	if !ok || (dx == 0 && dy == 0) {
		return command(domain.ActionWait, nil)
	}
	return command(domain.ActionMove, api.DirectionPayload{Dx: dx, Dy: dy})
}

// buildLocalGrid: всё неисследованное считается стеной,
// чтобы не строить пути в неизвестность.
func buildLocalGrid(f api.Frame) *domain.Grid {
	grid := domain.NewGrid(f.Grid.Width, f.Grid.Height)
	for _, tv := range f.Map {
		if !tv.IsWall {
			_ = grid.Carve(tv.X, tv.Y)
		}
	}
	return grid
}

// findActors конвертирует EntityView в доменные сущности для поиска пути.
func (b *Bot) findActors(f api.Frame) (me *domain.Entity, others []*domain.Entity) {
	for _, ev := range f.Entities {
		e := &domain.Entity{
			ID:   ev.ID,
			Type: enums.ParseEntityType(ev.Type),
			Name: ev.Name,
			Pos:  domain.Position{X: ev.Pos.X, Y: ev.Pos.Y},
		}
		if ev.Stats != nil {
			e.Fighter = &domain.FighterComponent{HP: ev.Stats.HP, MaxHP: ev.Stats.MaxHP}
			e.Blocks = true
		}

		if ev.ID == f.Player.ID {
			me = e
			continue
		}
		if e.Type == enums.EntityTypeStairs {
			pos := e.Pos
			b.stairs = &pos
		}
		others = append(others, e)
	}
	return me, others
}

func nearest(me *domain.Entity, others []*domain.Entity, match func(*domain.Entity) bool) *domain.Entity {
	var best *domain.Entity
	bestDist := 0.0
	for _, e := range others {
		if !match(e) {
			continue
		}
		if d := me.DistanceTo(e); best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// exploreStep - BFS от героя до ближайшей проходимой клетки,
// у которой есть неисследованный сосед. Возвращает первый шаг.
func exploreStep(grid *domain.Grid, f api.Frame, from domain.Position) (int, int, bool) {
	explored := make(map[int]bool, len(f.Map))
	for _, tv := range f.Map {
		explored[grid.Index(tv.X, tv.Y)] = true
	}

	isFrontier := func(p domain.Position) bool {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := p.Shift(dx, dy)
				if grid.InBounds(n.X, n.Y) && !explored[grid.Index(n.X, n.Y)] {
					return true
				}
			}
		}
		return false
	}

	start := grid.Index(from.X, from.Y)
	firstStep := map[int]domain.Position{start: {}}
	queue := []domain.Position{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curIdx := grid.Index(cur.X, cur.Y)

		if cur != from && isFrontier(cur) {
			step := firstStep[curIdx]
			return step.X, step.Y, true
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				n := cur.Shift(dx, dy)
				if grid.IsBlocked(n.X, n.Y) {
					continue
				}
				nIdx := grid.Index(n.X, n.Y)
				if _, seen := firstStep[nIdx]; seen {
					continue
				}
				if cur == from {
					firstStep[nIdx] = domain.Position{X: dx, Y: dy}
				} else {
					firstStep[nIdx] = firstStep[curIdx]
				}
				queue = append(queue, n)
			}
		}
	}
	return 0, 0, false
}

func command(action domain.ActionType, payload any) domain.Command {
	var raw json.RawMessage
	if payload != nil {
		raw, _ = json.Marshal(payload)
	}
	return domain.Command{Action: action, Payload: raw}
}
