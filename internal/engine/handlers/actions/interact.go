package actions

import (
	"crawler-server/internal/core/types"
	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/engine/handlers"
)

// HandleDescend спускает игрока по лестнице, если он стоит на ней.
// Новый уровень строит движок.
func HandleDescend(ctx handlers.Context) (handlers.Result, error) {
	for _, e := range ctx.Registry.At(ctx.Actor.Pos.X, ctx.Actor.Pos.Y) {
		if e.Stairs == nil {
			continue
		}
		if ctx.Registry.Depth() >= types.MaxDepth {
			return handlers.Reject(ctx, "Лестница обрывается во тьму. Глубже пути нет.")
		}
		return handlers.Result{Descend: true, NextState: enums.StatePlayerTurn}, nil
	}
	return handlers.Reject(ctx, "Здесь нет лестницы вниз.")
}
