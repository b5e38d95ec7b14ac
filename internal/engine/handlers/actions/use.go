package actions

import (
	"errors"

	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
	"crawler-server/internal/engine/handlers"
	"crawler-server/internal/systems"
	"crawler-server/pkg/api"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HandleUse обрабатывает команду USE - использование предмета из инвентаря.
// Прицельные предметы переводят игру в режим выбора цели.
func HandleUse(ctx handlers.Context, p api.IndexPayload) (handlers.Result, error) {
	return useItem(ctx, p.Index, nil)
}

// HandleTarget завершает прицеливание для отложенного предмета.
func HandleTarget(ctx handlers.Context, p api.TargetPayload) (handlers.Result, error) {
	var pos domain.Position
	if p.X != nil && p.Y != nil {
		pos = domain.Position{X: *p.X, Y: *p.Y}
	} else {
		resolved, ok := systems.ResolveEntityTarget(ctx.Registry, p.TargetID)
		if !ok {
			return handlers.Reject(ctx, "Цель не найдена.")
		}
		pos = resolved
	}
	return useItem(ctx, ctx.PendingItem, &pos)
}

func useItem(ctx handlers.Context, index int, target *domain.Position) (handlers.Result, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"component":  "use_handler",
		"actor_id":   ctx.Actor.ID,
		"item_index": index,
	})

	useCtx := systems.UseContext{
		Grid:     ctx.Grid,
		Registry: ctx.Registry,
		Visible:  ctx.Visible,
		Log:      ctx.Log,
	}
	res, err := systems.UseItem(useCtx, ctx.Actor, index, target)
	switch {
	case errors.Is(err, systems.ErrNoSuchItem):
		return handlers.Reject(ctx, "В этой ячейке инвентаря ничего нет.")
	case errors.Is(err, systems.ErrNoEffect), errors.Is(err, systems.ErrNotEquippable):
		log.Debug("Item had no effect.")
		return handlers.Rejected(err)
	case err != nil:
		log.WithError(err).Warn("Item use failed.")
		return handlers.Result{}, err
	}

	if res.NeedsTarget {
		msg := res.TargetingMessage
		if msg == "" {
			msg = "Выберите цель."
		}
		ctx.Log.Add(msg, domain.MsgInfo, domain.ColorLightCyan)
		return handlers.Result{NextState: enums.StateTargeting, PendingItem: index, Targeting: msg}, nil
	}

	out := handlers.TurnResult()
	out.LeveledUp = res.LeveledUp()
	out.PlayerDied = res.PlayerDied()
	return out, nil
}
