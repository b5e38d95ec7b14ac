package domain

import "strings"

// ActionType - Внутренний числовой идентификатор команды игрока
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionWait
	ActionPickup
	ActionShowInventory
	ActionDropInventory
	ActionUse
	ActionDrop
	ActionEquip
	ActionTarget
	ActionCancel
	ActionDescend
	ActionLevelUp
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"MOVE":           ActionMove,
	"WAIT":           ActionWait,
	"PICKUP":         ActionPickup,
	"SHOW_INVENTORY": ActionShowInventory,
	"DROP_INVENTORY": ActionDropInventory,
	"USE":            ActionUse,
	"DROP":           ActionDrop,
	"EQUIP":          ActionEquip,
	"TARGET":         ActionTarget,
	"CANCEL":         ActionCancel,
	"DESCEND":        ActionDescend,
	"LEVEL_UP":       ActionLevelUp,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionMove:          "MOVE",
	ActionWait:          "WAIT",
	ActionPickup:        "PICKUP",
	ActionShowInventory: "SHOW_INVENTORY",
	ActionDropInventory: "DROP_INVENTORY",
	ActionUse:           "USE",
	ActionDrop:          "DROP",
	ActionEquip:         "EQUIP",
	ActionTarget:        "TARGET",
	ActionCancel:        "CANCEL",
	ActionDescend:       "DESCEND",
	ActionLevelUp:       "LEVEL_UP",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	if val, ok := actionStringToCmd[strings.ToUpper(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
