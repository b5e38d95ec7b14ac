package actions

import (
	"crawler-server/internal/domain"
	"crawler-server/internal/engine/handlers"
	"crawler-server/pkg/api"
)

// Handlers возвращает таблицу обработчиков команд игрока.
func Handlers() map[domain.ActionType]handlers.HandlerFunc {
	return map[domain.ActionType]handlers.HandlerFunc{
		domain.ActionMove:          handlers.WithPayload[api.DirectionPayload](HandleMove),
		domain.ActionWait:          handlers.WithEmptyPayload(HandleWait),
		domain.ActionPickup:        handlers.WithEmptyPayload(HandlePickup),
		domain.ActionShowInventory: handlers.WithEmptyPayload(HandleShowInventory),
		domain.ActionDropInventory: handlers.WithEmptyPayload(HandleDropInventory),
		domain.ActionUse:           handlers.WithPayload[api.IndexPayload](HandleUse),
		domain.ActionDrop:          handlers.WithPayload[api.IndexPayload](HandleDrop),
		domain.ActionEquip:         handlers.WithPayload[api.IndexPayload](HandleEquip),
		domain.ActionTarget:        handlers.WithPayload[api.TargetPayload](HandleTarget),
		domain.ActionCancel:        handlers.WithEmptyPayload(HandleCancel),
		domain.ActionDescend:       handlers.WithEmptyPayload(HandleDescend),
		domain.ActionLevelUp:       handlers.WithPayload[api.StatPayload](HandleLevelUp),
	}
}
