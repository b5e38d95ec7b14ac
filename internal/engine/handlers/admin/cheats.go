package admin

import (
	"errors"
	"fmt"

	"crawler-server/internal/core/types"
	"crawler-server/internal/domain"
	"crawler-server/internal/engine/handlers"
	"crawler-server/internal/systems"
)

// TeleportPayload: { "x": 10, "y": 10 }
type TeleportPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SpawnPayload: { "template": "orc" }
type SpawnPayload struct {
	Template string `json:"template"`
}

func (p SpawnPayload) Validate() error {
	if p.Template == "" {
		return errors.New("template is required")
	}
	return nil
}

// KillPayload: { "targetId": "72339069014704129" }
type KillPayload struct {
	TargetID types.EntityID `json:"targetId"`
}

func (p KillPayload) Validate() error {
	if p.TargetID.IsNil() {
		return errors.New("targetId is required")
	}
	return nil
}

// Handlers - таблица админ-команд по именам.
func Handlers() map[string]handlers.HandlerFunc {
	return map[string]handlers.HandlerFunc{
		"TELEPORT": handlers.WithPayload[TeleportPayload](HandleTeleport),
		"SPAWN":    handlers.WithPayload[SpawnPayload](HandleSpawn),
		"HEAL":     handlers.WithEmptyPayload(HandleHeal),
		"KILL":     handlers.WithPayload[KillPayload](HandleKill),
		"REVEAL":   handlers.WithEmptyPayload(HandleReveal),
	}
}

func HandleTeleport(ctx handlers.Context, p TeleportPayload) (handlers.Result, error) {
	if ctx.Grid.IsBlocked(p.X, p.Y) {
		return handlers.Reject(ctx, "Телепорт в стену невозможен.")
	}
	if other, ok := ctx.Registry.BlockingAt(p.X, p.Y); ok && other != ctx.Actor {
		return handlers.Reject(ctx, "Клетка занята.")
	}
	if err := ctx.Registry.Move(ctx.Actor.ID, p.X, p.Y); err != nil {
		return handlers.Result{}, err
	}
	ctx.Log.Add("Вас переносит магия.", domain.MsgSystem, domain.ColorLightViolet)
	return handlers.EmptyResult(), nil
}

// HandleSpawn ставит монстра на первую свободную соседнюю клетку, предмет - под ноги.
func HandleSpawn(ctx handlers.Context, p SpawnPayload) (handlers.Result, error) {
	if ctx.Spawn == nil {
		return handlers.Reject(ctx, "Таблицы контента недоступны.")
	}

	e := ctx.Spawn(p.Template, ctx.Actor.Pos)
	if e == nil {
		return handlers.Reject(ctx, fmt.Sprintf("Неизвестный шаблон %q.", p.Template))
	}

	if e.Blocks {
		pos, ok := freeNeighbour(ctx, ctx.Actor.Pos)
		if !ok {
			return handlers.Reject(ctx, "Рядом нет свободного места.")
		}
		e.Pos = pos
	}
	if _, err := ctx.Registry.Insert(e); err != nil {
		return handlers.Result{}, err
	}

	ctx.Log.Add(fmt.Sprintf("Призван: %s.", e.Name), domain.MsgSystem, domain.ColorLightViolet)
	return handlers.EmptyResult(), nil
}

func HandleHeal(ctx handlers.Context) (handlers.Result, error) {
	if f := ctx.Actor.Fighter; f != nil {
		f.HP = f.MaxHP
	}
	ctx.Log.Add("Вы полностью исцелены.", domain.MsgSystem, domain.ColorGreen)
	return handlers.EmptyResult(), nil
}

// HandleKill убивает сущность без награды.
func HandleKill(ctx handlers.Context, p KillPayload) (handlers.Result, error) {
	target, ok := ctx.Registry.Get(p.TargetID)
	if !ok || target.Fighter == nil {
		return handlers.Reject(ctx, "Цель не найдена.")
	}
	target.Fighter.HP = 0

	res := handlers.EmptyResult()
	res.PlayerDied = systems.Kill(target, ctx.Log)
	return res, nil
}

// HandleReveal открывает всю карту.
func HandleReveal(ctx handlers.Context) (handlers.Result, error) {
	for idx := range ctx.Grid.Tiles {
		x, y := ctx.Grid.Coords(idx)
		ctx.Grid.MarkExplored(x, y)
	}
	ctx.Log.Add("Карта открыта.", domain.MsgSystem, domain.ColorLightViolet)
	return handlers.EmptyResult(), nil
}

func freeNeighbour(ctx handlers.Context, pos domain.Position) (domain.Position, bool) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := pos.Shift(dx, dy)
			if ctx.Grid.IsBlocked(p.X, p.Y) {
				continue
			}
			if _, occupied := ctx.Registry.BlockingAt(p.X, p.Y); occupied {
				continue
			}
			return p, true
		}
	}
	return domain.Position{}, false
}
