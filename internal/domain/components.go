package domain

import (
	"crawler-server/internal/core/types"
	"crawler-server/internal/core/types/enums"
)

// --- КОМПОНЕНТЫ ---
// Каждый компонент хранит ID владельца, а не указатель на него.
// Registry перепривязывает Owner при вставке сущности.

// FighterComponent - боевые характеристики (без бонусов экипировки)
type FighterComponent struct {
	Owner   types.EntityID `json:"-"`
	HP      int            `json:"hp"`
	MaxHP   int            `json:"maxHp"`
	Defense int            `json:"defense"`
	Power   int            `json:"power"`
	XP      int            `json:"xp"` // Награда за убийство
	Gold    int            `json:"gold"`
}

// Behavior - вариант поведения. Confused оборачивает предыдущий вариант.
type Behavior struct {
	Kind      enums.AIKind `json:"kind"`
	TurnsLeft int          `json:"turnsLeft,omitempty"`
	Previous  *Behavior    `json:"previous,omitempty"`
}

// AIComponent - мозги монстра
type AIComponent struct {
	Owner    types.EntityID `json:"-"`
	Behavior Behavior       `json:"behavior"`
	// ActsOutsideVision: монстр действует вне поля зрения игрока,
	// если тот ближе ActionRadius.
	ActsOutsideVision bool `json:"actsOutsideVision"`
	ActionRadius      int  `json:"actionRadius"`
}

// ItemComponent - описание эффекта при использовании
type ItemComponent struct {
	Owner            types.EntityID   `json:"-"`
	Effect           enums.ItemEffect `json:"effect"`
	Amount           int              `json:"amount,omitempty"`
	Damage           int              `json:"damage,omitempty"`
	Radius           int              `json:"radius,omitempty"`
	Range            int              `json:"range,omitempty"`
	Turns            int              `json:"turns,omitempty"`
	Targeting        bool             `json:"targeting,omitempty"`
	TargetingMessage string           `json:"targetingMessage,omitempty"`
}

// EquippableComponent - бонусы при экипировке. Всегда идёт в паре с ItemComponent.
type EquippableComponent struct {
	Owner        types.EntityID      `json:"-"`
	Slot         enums.EquipmentSlot `json:"slot"`
	PowerBonus   int                 `json:"powerBonus"`
	DefenseBonus int                 `json:"defenseBonus"`
}

// InventoryComponent хранит предметы у сущности.
// Предметы в инвентаре не живут в реестре уровня.
type InventoryComponent struct {
	Owner    types.EntityID `json:"-"`
	Items    []*Entity      `json:"items"`
	Capacity int            `json:"capacity"`
}

// EquipmentComponent: слот -> ID предмета из инвентаря владельца.
type EquipmentComponent struct {
	Owner types.EntityID                         `json:"-"`
	Slots map[enums.EquipmentSlot]types.EntityID `json:"slots"`
}

// SpawnerComponent периодически порождает монстров в своей комнате.
type SpawnerComponent struct {
	Owner        types.EntityID `json:"-"`
	Room         Room           `json:"room"`
	Template     string         `json:"template"`
	Cooldown     int            `json:"cooldown"`
	CooldownLeft int            `json:"cooldownLeft"`
	Radius       int            `json:"radius"`
}

type StairsComponent struct {
	Owner types.EntityID `json:"-"`
	Floor int            `json:"floor"`
}

// LevelComponent - прогрессия игрока
type LevelComponent struct {
	Owner        types.EntityID `json:"-"`
	CurrentLevel int            `json:"currentLevel"`
	CurrentXP    int            `json:"currentXp"`
	Base         int            `json:"base"`
	Factor       int            `json:"factor"`
}
