package domain

import (
	"crawler-server/internal/core/types"
	"crawler-server/internal/core/types/enums"
)

// Entity - агрегат опциональных компонентов. nil означает отсутствие свойства.
type Entity struct {
	ID   types.EntityID   `json:"id"`
	Type enums.EntityType `json:"type"`
	Name string           `json:"name"`
	Pos  Position         `json:"pos"`

	Glyph       types.Glyph       `json:"glyph"`
	RenderOrder enums.RenderOrder `json:"renderOrder"`
	Blocks      bool              `json:"blocks"`

	// ResourceValue - вес присутствия в бюджете комнаты.
	ResourceValue int `json:"resourceValue"`
	// TreasureValue - золото, которое получает убийца.
	TreasureValue int `json:"treasureValue"`

	Fighter    *FighterComponent    `json:"fighter,omitempty"`
	AI         *AIComponent         `json:"ai,omitempty"`
	Item       *ItemComponent       `json:"item,omitempty"`
	Equippable *EquippableComponent `json:"equippable,omitempty"`
	Inventory  *InventoryComponent  `json:"inventory,omitempty"`
	Equipment  *EquipmentComponent  `json:"equipment,omitempty"`
	Spawner    *SpawnerComponent    `json:"spawner,omitempty"`
	Stairs     *StairsComponent     `json:"stairs,omitempty"`
	Level      *LevelComponent      `json:"level,omitempty"`
}

// Normalize восстанавливает инвариант: экипируемое всегда является предметом.
func (e *Entity) Normalize() *Entity {
	if e.Equippable != nil && e.Item == nil {
		e.Item = &ItemComponent{}
	}
	return e
}

// BindOwner проставляет ID владельца во все компоненты.
func (e *Entity) BindOwner(id types.EntityID) {
	e.ID = id
	if e.Fighter != nil {
		e.Fighter.Owner = id
	}
	if e.AI != nil {
		e.AI.Owner = id
	}
	if e.Item != nil {
		e.Item.Owner = id
	}
	if e.Equippable != nil {
		e.Equippable.Owner = id
	}
	if e.Inventory != nil {
		e.Inventory.Owner = id
	}
	if e.Equipment != nil {
		e.Equipment.Owner = id
	}
	if e.Spawner != nil {
		e.Spawner.Owner = id
	}
	if e.Stairs != nil {
		e.Stairs.Owner = id
	}
	if e.Level != nil {
		e.Level.Owner = id
	}
}

// IsAlive: есть Fighter и положительное здоровье.
func (e *Entity) IsAlive() bool {
	return e != nil && e.Fighter != nil && e.Fighter.HP > 0
}

// Power - сила атаки с учётом экипировки.
func (e *Entity) Power() int {
	if e.Fighter == nil {
		return 0
	}
	power, _ := e.equipmentBonus()
	return e.Fighter.Power + power
}

// Defense - защита с учётом экипировки.
func (e *Entity) Defense() int {
	if e.Fighter == nil {
		return 0
	}
	_, defense := e.equipmentBonus()
	return e.Fighter.Defense + defense
}

func (e *Entity) equipmentBonus() (power, defense int) {
	if e.Equipment == nil || e.Inventory == nil {
		return 0, 0
	}
	for _, id := range e.Equipment.Slots {
		item := e.Inventory.FindItem(id)
		if item == nil || item.Equippable == nil {
			continue
		}
		power += item.Equippable.PowerBonus
		defense += item.Equippable.DefenseBonus
	}
	return power, defense
}

// DistanceTo - евклидово расстояние между сущностями.
func (e *Entity) DistanceTo(other *Entity) float64 {
	return e.Pos.DistanceTo(other.Pos)
}
