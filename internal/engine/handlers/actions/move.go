package actions

import (
	"crawler-server/internal/engine/handlers"
	"crawler-server/internal/systems"
	"crawler-server/pkg/api"
)

// HandleMove двигает игрока или атакует того, кто стоит на пути.
func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	res := systems.CalculateMove(ctx.Actor, p.Dx, p.Dy, ctx.Grid, ctx.Registry)

	if res.IsWall {
		return handlers.Reject(ctx, "Путь прегражден.")
	}

	if res.BlockedBy != nil {
		return attack(ctx, res.BlockedBy)
	}

	if err := ctx.Registry.Move(ctx.Actor.ID, res.NewX, res.NewY); err != nil {
		return handlers.Result{}, err
	}
	return handlers.TurnResult(), nil
}
