package systems

import (
	"errors"
	"fmt"

	"crawler-server/internal/domain"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoInventory      = errors.New("entity has no inventory")
	ErrNothingToPickUp  = errors.New("nothing to pick up")
	ErrNoSuchItem       = errors.New("no item at this inventory index")
	ErrNotEquippable    = errors.New("item cannot be equipped")
	ErrNoEquipmentSlots = errors.New("entity has no equipment slots")
)

// --- PICKUP ---

// Pickup подбирает первый предмет под ногами actor.
// Предмет покидает реестр уровня и переходит во владение инвентаря.
func Pickup(actor *domain.Entity, reg *domain.Registry, log *domain.MessageLog) error {
	if actor.Inventory == nil {
		return ErrNoInventory
	}

	var item *domain.Entity
	for _, e := range reg.At(actor.Pos.X, actor.Pos.Y) {
		if e.Item != nil && e.ID != actor.ID {
			item = e
			break
		}
	}
	if item == nil {
		log.Add("Здесь нечего подобрать.", domain.MsgInfo, domain.ColorYellow)
		return ErrNothingToPickUp
	}

	if actor.Inventory.IsFull() {
		log.Add("Вы не можете унести больше, инвентарь полон.", domain.MsgInfo, domain.ColorYellow)
		return domain.ErrInventoryFull
	}

	if _, ok := reg.Remove(item.ID); !ok {
		return fmt.Errorf("pickup %s: %w", item.ID, domain.ErrUnknownEntity)
	}
	if err := actor.Inventory.AddItem(item); err != nil {
		return err
	}

	log.Add(fmt.Sprintf("Вы подбираете %s!", item.Name), domain.MsgInfo, domain.ColorLightCyan)
	logger.Log.WithFields(logrus.Fields{
		"component": "inventory_system",
		"actor":     actor.Name,
		"item_id":   item.ID,
		"item":      item.Name,
	}).Debug("Item picked up.")
	return nil
}

// --- DROP ---

// Drop выкладывает предмет под ноги actor. Надетый предмет сначала снимается.
// В реестре предмет получает новый ID.
func Drop(actor *domain.Entity, index int, reg *domain.Registry, log *domain.MessageLog) error {
	if actor.Inventory == nil {
		return ErrNoInventory
	}
	item, ok := actor.Inventory.ItemAt(index)
	if !ok {
		return ErrNoSuchItem
	}

	if actor.Equipment != nil && actor.Equipment.Unequip(item.ID) {
		log.Add(fmt.Sprintf("Вы сняли %s.", item.Name), domain.MsgInfo, domain.ColorYellow)
	}

	actor.Inventory.RemoveItem(item.ID)
	item.Pos = actor.Pos
	if _, err := reg.Insert(item); err != nil {
		// Вернуть предмет, чтобы он не потерялся
		_ = actor.Inventory.AddItem(item)
		return fmt.Errorf("drop %s: %w", item.Name, err)
	}

	log.Add(fmt.Sprintf("Вы выбрасываете %s.", item.Name), domain.MsgInfo, domain.ColorYellow)
	return nil
}

// --- EQUIP ---

// ToggleEquip надевает предмет или снимает его, если он уже надет.
func ToggleEquip(actor *domain.Entity, index int, log *domain.MessageLog) (domain.EquipChange, error) {
	var change domain.EquipChange
	if actor.Inventory == nil {
		return change, ErrNoInventory
	}
	if actor.Equipment == nil {
		return change, ErrNoEquipmentSlots
	}
	item, ok := actor.Inventory.ItemAt(index)
	if !ok {
		return change, ErrNoSuchItem
	}
	if item.Equippable == nil {
		log.Add(fmt.Sprintf("%s нельзя надеть.", capitalize(item.Name)), domain.MsgInfo, domain.ColorYellow)
		return change, ErrNotEquippable
	}

	change = actor.Equipment.Toggle(item)
	if !change.Unequipped.IsNil() {
		if old := actor.Inventory.FindItem(change.Unequipped); old != nil {
			log.Add(fmt.Sprintf("Вы сняли %s.", old.Name), domain.MsgInfo, domain.ColorLightViolet)
		}
	}
	if !change.Equipped.IsNil() {
		log.Add(fmt.Sprintf("Вы экипировали %s.", item.Name), domain.MsgInfo, domain.ColorLightViolet)
	}
	return change, nil
}
