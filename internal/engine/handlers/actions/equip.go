package actions

import (
	"errors"

	"crawler-server/internal/engine/handlers"
	"crawler-server/internal/systems"
	"crawler-server/pkg/api"
)

// HandleEquip надевает или снимает предмет.
func HandleEquip(ctx handlers.Context, p api.IndexPayload) (handlers.Result, error) {
	_, err := systems.ToggleEquip(ctx.Actor, p.Index, ctx.Log)
	switch {
	case errors.Is(err, systems.ErrNoSuchItem):
		return handlers.Reject(ctx, "В этой ячейке инвентаря ничего нет.")
	case errors.Is(err, systems.ErrNotEquippable):
		return handlers.Rejected(err)
	case err != nil:
		return handlers.Result{}, err
	}
	return handlers.TurnResult(), nil
}
