package actions

import (
	"errors"

	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
	"crawler-server/internal/engine/handlers"
	"crawler-server/internal/systems"
	"crawler-server/pkg/api"
)

// HandleShowInventory открывает меню использования предметов.
func HandleShowInventory(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{NextState: enums.StateShowInventory}, nil
}

// HandleDropInventory открывает меню выбрасывания предметов.
func HandleDropInventory(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{NextState: enums.StateDropInventory}, nil
}

// HandleCancel закрывает меню или отменяет прицеливание.
func HandleCancel(ctx handlers.Context) (handlers.Result, error) {
	if ctx.State == enums.StateTargeting {
		ctx.Log.Add("Прицеливание отменено.", domain.MsgInfo, domain.ColorWhite)
	}
	return handlers.Result{NextState: enums.StatePlayerTurn}, nil
}

// HandleDrop выкладывает предмет из инвентаря на пол.
func HandleDrop(ctx handlers.Context, p api.IndexPayload) (handlers.Result, error) {
	err := systems.Drop(ctx.Actor, p.Index, ctx.Registry, ctx.Log)
	if errors.Is(err, systems.ErrNoSuchItem) {
		return handlers.Reject(ctx, "В этой ячейке инвентаря ничего нет.")
	}
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.TurnResult(), nil
}
