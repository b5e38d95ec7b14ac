package enums

import "strings"

// ItemEffect - эффект, который срабатывает при использовании предмета.
type ItemEffect uint8

const (
	ItemEffectNone ItemEffect = iota
	ItemEffectHeal
	ItemEffectLightning
	ItemEffectFireball
	ItemEffectConfuse
)

var itemEffectToString = map[ItemEffect]string{
	ItemEffectNone:      "NONE",
	ItemEffectHeal:      "HEAL",
	ItemEffectLightning: "LIGHTNING",
	ItemEffectFireball:  "FIREBALL",
	ItemEffectConfuse:   "CONFUSE",
}

var itemEffectStringToType = map[string]ItemEffect{
	"":          ItemEffectNone,
	"NONE":      ItemEffectNone,
	"HEAL":      ItemEffectHeal,
	"LIGHTNING": ItemEffectLightning,
	"FIREBALL":  ItemEffectFireball,
	"CONFUSE":   ItemEffectConfuse,
}

func (e ItemEffect) String() string {
	if val, ok := itemEffectToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseItemEffect(s string) (ItemEffect, bool) {
	val, ok := itemEffectStringToType[strings.ToUpper(s)]
	return val, ok
}

// EquipmentSlot - слот экипировки.
type EquipmentSlot uint8

const (
	SlotNone EquipmentSlot = iota
	SlotMainHand
	SlotOffHand
)

var slotToString = map[EquipmentSlot]string{
	SlotNone:     "NONE",
	SlotMainHand: "MAIN_HAND",
	SlotOffHand:  "OFF_HAND",
}

var slotStringToType = map[string]EquipmentSlot{
	"MAIN_HAND": SlotMainHand,
	"OFF_HAND":  SlotOffHand,
}

func (s EquipmentSlot) String() string {
	if val, ok := slotToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseEquipmentSlot(s string) (EquipmentSlot, bool) {
	val, ok := slotStringToType[strings.ToUpper(s)]
	return val, ok
}
