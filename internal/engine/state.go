package engine

import (
	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"

	"github.com/zyedidia/generic/mapset"
)

// allowedActions - какие команды принимаются в каждом состоянии.
// PlayerDead и EnemyTurn не принимают ничего.
var allowedActions = map[enums.GameState]mapset.Set[domain.ActionType]{
	enums.StatePlayerTurn: actionSet(
		domain.ActionMove, domain.ActionWait, domain.ActionPickup,
		domain.ActionShowInventory, domain.ActionDropInventory,
		domain.ActionUse, domain.ActionDrop, domain.ActionEquip, domain.ActionDescend,
	),
	enums.StateShowInventory: actionSet(domain.ActionUse, domain.ActionEquip, domain.ActionCancel),
	enums.StateDropInventory: actionSet(domain.ActionDrop, domain.ActionCancel),
	enums.StateTargeting:     actionSet(domain.ActionTarget, domain.ActionCancel),
	enums.StateLevelUp:       actionSet(domain.ActionLevelUp),
}

func actionSet(actions ...domain.ActionType) mapset.Set[domain.ActionType] {
	s := mapset.New[domain.ActionType]()
	for _, a := range actions {
		s.Put(a)
	}
	return s
}

// Allows проверяет, принимается ли команда в состоянии s.
func Allows(s enums.GameState, action domain.ActionType) bool {
	set, ok := allowedActions[s]
	return ok && set.Has(action)
}
