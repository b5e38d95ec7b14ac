package domain

import (
	"crawler-server/internal/core/types"
	"crawler-server/internal/core/types/enums"
)

// AddItem добавляет предмет в инвентарь с проверкой места.
func (inv *InventoryComponent) AddItem(item *Entity) error {
	if item == nil || item.Item == nil {
		return ErrNotAnItem
	}
	if len(inv.Items) >= inv.Capacity {
		return ErrInventoryFull
	}
	inv.Items = append(inv.Items, item)
	return nil
}

// RemoveItem удаляет предмет из инвентаря, сохраняя порядок остальных.
func (inv *InventoryComponent) RemoveItem(itemID types.EntityID) *Entity {
	for i, item := range inv.Items {
		if item.ID == itemID {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return item
		}
	}
	return nil
}

// FindItem ищет предмет по ID.
func (inv *InventoryComponent) FindItem(itemID types.EntityID) *Entity {
	if inv == nil {
		return nil
	}
	for _, item := range inv.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// ItemAt возвращает предмет по номеру в списке инвентаря.
func (inv *InventoryComponent) ItemAt(index int) (*Entity, bool) {
	if index < 0 || index >= len(inv.Items) {
		return nil, false
	}
	return inv.Items[index], true
}

func (inv *InventoryComponent) IsFull() bool {
	return len(inv.Items) >= inv.Capacity
}

func NewEquipment() *EquipmentComponent {
	return &EquipmentComponent{Slots: make(map[enums.EquipmentSlot]types.EntityID)}
}

// EquipChange - что изменилось после переключения экипировки.
type EquipChange struct {
	Equipped   types.EntityID
	Unequipped types.EntityID
}

// Toggle надевает предмет или снимает его, если он уже надет.
// Предмет, занимавший слот, снимается.
func (eq *EquipmentComponent) Toggle(item *Entity) EquipChange {
	var change EquipChange
	if item == nil || item.Equippable == nil {
		return change
	}
	if eq.Slots == nil {
		eq.Slots = make(map[enums.EquipmentSlot]types.EntityID)
	}

	slot := item.Equippable.Slot
	current, occupied := eq.Slots[slot]
	switch {
	case occupied && current == item.ID:
		delete(eq.Slots, slot)
		change.Unequipped = item.ID
	case occupied:
		eq.Slots[slot] = item.ID
		change.Unequipped = current
		change.Equipped = item.ID
	default:
		eq.Slots[slot] = item.ID
		change.Equipped = item.ID
	}
	return change
}

func (eq *EquipmentComponent) IsEquipped(id types.EntityID) bool {
	if eq == nil {
		return false
	}
	for _, equipped := range eq.Slots {
		if equipped == id {
			return true
		}
	}
	return false
}

// Unequip снимает предмет из любого слота. Возвращает false, если он не был надет.
func (eq *EquipmentComponent) Unequip(id types.EntityID) bool {
	for slot, equipped := range eq.Slots {
		if equipped == id {
			delete(eq.Slots, slot)
			return true
		}
	}
	return false
}
