package dungeon

import (
	"crawler-server/internal/core/types"
	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
)

// MonsterTemplate определяет шаблон для создания монстра
type MonsterTemplate struct {
	Name   string
	Symbol byte
	Color  uint32

	AI                enums.AIKind
	ActsOutsideVision bool
	ActionRadius      int

	HP      int
	Defense int
	Power   int
	XP      int

	ResourceValue int
	TreasureValue int
	Weight        WeightCurve
}

// SpawnMonster создает монстра из шаблона на заданной позиции
func (t MonsterTemplate) SpawnMonster(pos domain.Position) *domain.Entity {
	kind := t.AI
	if kind == enums.AIKindNone {
		kind = enums.AIKindAggressive
	}
	return &domain.Entity{
		Type:          enums.EntityTypeMonster,
		Name:          t.Name,
		Pos:           pos,
		Glyph:         types.MakeGlyph(t.Color, t.Symbol),
		RenderOrder:   enums.RenderOrderActor,
		Blocks:        true,
		ResourceValue: t.ResourceValue,
		TreasureValue: t.TreasureValue,
		Fighter: &domain.FighterComponent{
			HP:      t.HP,
			MaxHP:   t.HP,
			Defense: t.Defense,
			Power:   t.Power,
			XP:      t.XP,
		},
		AI: &domain.AIComponent{
			Behavior:          domain.Behavior{Kind: kind},
			ActsOutsideVision: t.ActsOutsideVision,
			ActionRadius:      t.ActionRadius,
		},
	}
}

// ItemTemplate определяет шаблон для создания предмета-сущности
type ItemTemplate struct {
	Name   string
	Symbol byte
	Color  uint32

	Effect           enums.ItemEffect
	Amount           int
	Damage           int
	Radius           int
	Range            int
	Turns            int
	Targeting        bool
	TargetingMessage string

	// Экипировка (Slot == SlotNone - не экипируется)
	Slot         enums.EquipmentSlot
	PowerBonus   int
	DefenseBonus int

	ResourceValue int
	Weight        WeightCurve
}

// SpawnItem создаёт Entity-предмет из шаблона
func (t ItemTemplate) SpawnItem(pos domain.Position) *domain.Entity {
	e := &domain.Entity{
		Type:          enums.EntityTypeItem,
		Name:          t.Name,
		Pos:           pos,
		Glyph:         types.MakeGlyph(t.Color, t.Symbol),
		RenderOrder:   enums.RenderOrderItem,
		ResourceValue: t.ResourceValue,
		Item: &domain.ItemComponent{
			Effect:           t.Effect,
			Amount:           t.Amount,
			Damage:           t.Damage,
			Radius:           t.Radius,
			Range:            t.Range,
			Turns:            t.Turns,
			Targeting:        t.Targeting,
			TargetingMessage: t.TargetingMessage,
		},
	}
	if t.Slot != enums.SlotNone {
		e.Equippable = &domain.EquippableComponent{
			Slot:         t.Slot,
			PowerBonus:   t.PowerBonus,
			DefenseBonus: t.DefenseBonus,
		}
	}
	return e
}

// Tables - статические таблицы контента, от которых зависит наполнение уровня.
type Tables struct {
	Monsters map[string]MonsterTemplate
	Items    map[string]ItemTemplate

	// Бюджеты на комнату в зависимости от глубины
	MonsterBudget WeightCurve
	ItemBudget    WeightCurve
	// SpawnerChance - шанс (в процентах) поставить спаунер в комнату
	SpawnerChance WeightCurve

	SpawnerCooldown int
	SpawnerRadius   int
}

// MonsterTable собирает таблицу выбора монстров.
func (t *Tables) MonsterTable() SpawnTable {
	table := make(SpawnTable, len(t.Monsters))
	for key, m := range t.Monsters {
		table[key] = m.Weight
	}
	return table
}

// ItemTable собирает таблицу выбора предметов.
func (t *Tables) ItemTable() SpawnTable {
	table := make(SpawnTable, len(t.Items))
	for key, it := range t.Items {
		table[key] = it.Weight
	}
	return table
}

// SpawnMonster создаёт монстра по ключу таблицы. nil - ключ неизвестен.
func (t *Tables) SpawnMonster(key string, pos domain.Position) *domain.Entity {
	m, ok := t.Monsters[key]
	if !ok {
		return nil
	}
	return m.SpawnMonster(pos)
}

// Spawn создаёт монстра или предмет по ключу: сначала ищет среди монстров.
func (t *Tables) Spawn(key string, pos domain.Position) *domain.Entity {
	if e := t.SpawnMonster(key, pos); e != nil {
		return e
	}
	if it, ok := t.Items[key]; ok {
		return it.SpawnItem(pos)
	}
	return nil
}
