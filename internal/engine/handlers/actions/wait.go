package actions

import "crawler-server/internal/engine/handlers"

func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.TurnResult(), nil
}
