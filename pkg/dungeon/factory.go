package dungeon

import (
	"fmt"

	"crawler-server/internal/core/types"
	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
)

// Параметры спаунера по умолчанию
const (
	DefaultSpawnerCooldown = 50
	DefaultSpawnerRadius   = 20
)

// PlayerTemplate - стартовые характеристики героя.
type PlayerTemplate struct {
	Name              string
	HP                int
	Defense           int
	Power             int
	InventoryCapacity int
	LevelUpBase       int
	LevelUpFactor     int
}

// DefaultPlayer - стартовый герой.
var DefaultPlayer = PlayerTemplate{
	Name:              "Игрок",
	HP:                100,
	Defense:           1,
	Power:             2,
	InventoryCapacity: 26,
	LevelUpBase:       200,
	LevelUpFactor:     150,
}

// StartingDagger - оружие, с которым герой начинает игру.
var StartingDagger = ItemTemplate{
	Name:       "Кинжал",
	Symbol:     '-',
	Color:      0x00BFFF,
	Slot:       enums.SlotMainHand,
	PowerBonus: 2,
}

// NewPlayer создаёт героя без позиции и ID: их выдаёт реестр уровня.
func NewPlayer(t PlayerTemplate) *domain.Entity {
	return &domain.Entity{
		Type:        enums.EntityTypePlayer,
		Name:        t.Name,
		Glyph:       types.MakeGlyph(domain.ColorWhite, domain.SymbolPlayer),
		RenderOrder: enums.RenderOrderActor,
		Blocks:      true,
		Fighter: &domain.FighterComponent{
			HP:      t.HP,
			MaxHP:   t.HP,
			Defense: t.Defense,
			Power:   t.Power,
		},
		Inventory: &domain.InventoryComponent{Capacity: t.InventoryCapacity},
		Equipment: domain.NewEquipment(),
		Level: &domain.LevelComponent{
			CurrentLevel: 1,
			Base:         t.LevelUpBase,
			Factor:       t.LevelUpFactor,
		},
	}
}

// NewStairs создаёт спуск на следующий этаж.
func NewStairs(pos domain.Position, floor int) *domain.Entity {
	return &domain.Entity{
		Type:        enums.EntityTypeStairs,
		Name:        "Лестница вниз",
		Pos:         pos,
		Glyph:       types.MakeGlyph(domain.ColorWhite, domain.SymbolStairs),
		RenderOrder: enums.RenderOrderStairs,
		Stairs:      &domain.StairsComponent{Floor: floor},
	}
}

// NewSpawner создаёт неблокирующий спаунер монстров, привязанный к комнате.
func NewSpawner(pos domain.Position, room domain.Room, key string, m MonsterTemplate, cooldown, radius int) *domain.Entity {
	if cooldown <= 0 {
		cooldown = DefaultSpawnerCooldown
	}
	if radius <= 0 {
		radius = DefaultSpawnerRadius
	}
	return &domain.Entity{
		Type:        enums.EntityTypeSpawner,
		Name:        fmt.Sprintf("Логово: %s", m.Name),
		Pos:         pos,
		Glyph:       types.MakeGlyph(domain.ColorWhite, domain.SymbolSpawner),
		RenderOrder: enums.RenderOrderItem,
		Spawner: &domain.SpawnerComponent{
			Room:     room,
			Template: key,
			Cooldown: cooldown,
			Radius:   radius,
		},
	}
}
