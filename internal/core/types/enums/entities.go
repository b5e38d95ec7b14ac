package enums

import "strings"

// EntityType хранится в битах Type у EntityID.
type EntityType uint8

const (
	EntityTypeUnknown EntityType = iota
	EntityTypePlayer
	EntityTypeMonster
	EntityTypeItem
	EntityTypeStairs
	EntityTypeSpawner
)

var entityTypeToString = map[EntityType]string{
	EntityTypePlayer:  "PLAYER",
	EntityTypeMonster: "MONSTER",
	EntityTypeItem:    "ITEM",
	EntityTypeStairs:  "STAIRS",
	EntityTypeSpawner: "SPAWNER",
}

var entityTypeStringToType = map[string]EntityType{
	"PLAYER":  EntityTypePlayer,
	"MONSTER": EntityTypeMonster,
	"ITEM":    EntityTypeItem,
	"STAIRS":  EntityTypeStairs,
	"SPAWNER": EntityTypeSpawner,
}

// String возвращает строковое представление (для логов и дебага)
func (e EntityType) String() string {
	if val, ok := entityTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityType конвертирует строку в Enum
func ParseEntityType(s string) EntityType {
	if val, ok := entityTypeStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EntityTypeUnknown
}

// RenderOrder задаёт порядок отрисовки: меньшие значения рисуются раньше.
type RenderOrder uint8

const (
	RenderOrderNone RenderOrder = iota
	RenderOrderCorpse
	RenderOrderItem
	RenderOrderActor
	RenderOrderStairs
)
