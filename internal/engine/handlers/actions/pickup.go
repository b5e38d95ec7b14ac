package actions

import (
	"crawler-server/internal/engine/handlers"
	"crawler-server/internal/systems"
)

// HandlePickup подбирает предмет под ногами.
func HandlePickup(ctx handlers.Context) (handlers.Result, error) {
	if err := systems.Pickup(ctx.Actor, ctx.Registry, ctx.Log); err != nil {
		return handlers.Rejected(err)
	}
	return handlers.TurnResult(), nil
}
