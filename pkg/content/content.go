package content

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"crawler-server/internal/core/types"
	"crawler-server/internal/core/types/enums"
	"crawler-server/pkg/dungeon"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalidContent - таблица контента не проходит проверку.
var ErrInvalidContent = errors.New("invalid content")

//go:embed default.yaml
var defaultYAML []byte

type file struct {
	MonsterBudget dungeon.WeightCurve `yaml:"monster_budget"`
	ItemBudget    dungeon.WeightCurve `yaml:"item_budget"`
	SpawnerChance dungeon.WeightCurve `yaml:"spawner_chance"`

	Spawner struct {
		Cooldown int `yaml:"cooldown"`
		Radius   int `yaml:"radius"`
	} `yaml:"spawner"`

	Monsters map[string]monsterDoc `yaml:"monsters"`
	Items    map[string]itemDoc    `yaml:"items"`
}

type monsterDoc struct {
	Name              string              `yaml:"name"`
	Symbol            string              `yaml:"symbol"`
	Color             string              `yaml:"color"`
	AI                string              `yaml:"ai"`
	ActsOutsideVision bool                `yaml:"acts_outside_vision"`
	ActionRadius      int                 `yaml:"action_radius"`
	HP                int                 `yaml:"hp"`
	Defense           int                 `yaml:"defense"`
	Power             int                 `yaml:"power"`
	XP                int                 `yaml:"xp"`
	ResourceValue     int                 `yaml:"resource_value"`
	TreasureValue     int                 `yaml:"treasure_value"`
	Weight            dungeon.WeightCurve `yaml:"weight"`
}

type itemDoc struct {
	Name             string              `yaml:"name"`
	Symbol           string              `yaml:"symbol"`
	Color            string              `yaml:"color"`
	Effect           string              `yaml:"effect"`
	Amount           int                 `yaml:"amount"`
	Damage           int                 `yaml:"damage"`
	Radius           int                 `yaml:"radius"`
	Range            int                 `yaml:"range"`
	Turns            int                 `yaml:"turns"`
	Targeting        bool                `yaml:"targeting"`
	TargetingMessage string              `yaml:"targeting_message"`
	Slot             string              `yaml:"slot"`
	PowerBonus       int                 `yaml:"power_bonus"`
	DefenseBonus     int                 `yaml:"defense_bonus"`
	ResourceValue    int                 `yaml:"resource_value"`
	Weight           dungeon.WeightCurve `yaml:"weight"`
}

// Default разбирает встроенные таблицы.
func Default() (*dungeon.Tables, error) {
	return Parse(defaultYAML)
}

// MustDefault - Default с паникой: встроенный файл обязан быть валидным.
func MustDefault() *dungeon.Tables {
	t, err := Default()
	if err != nil {
		panic(fmt.Sprintf("content: embedded tables: %v", err))
	}
	return t
}

// LoadFile читает таблицы из YAML-файла.
func LoadFile(path string) (*dungeon.Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content %s: %w", path, err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", path, err)
	}
	return t, nil
}

// Load читает таблицы из r.
func Load(r io.Reader) (*dungeon.Tables, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse разбирает YAML и собирает dungeon.Tables.
// Записи проверяются в отсортированном порядке ключей, чтобы ошибка была воспроизводимой.
func Parse(data []byte) (*dungeon.Tables, error) {
	var doc file
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(doc.Monsters) == 0 {
		return nil, fmt.Errorf("%w: no monsters defined", ErrInvalidContent)
	}

	tables := &dungeon.Tables{
		Monsters:        make(map[string]dungeon.MonsterTemplate, len(doc.Monsters)),
		Items:           make(map[string]dungeon.ItemTemplate, len(doc.Items)),
		MonsterBudget:   doc.MonsterBudget,
		ItemBudget:      doc.ItemBudget,
		SpawnerChance:   doc.SpawnerChance,
		SpawnerCooldown: doc.Spawner.Cooldown,
		SpawnerRadius:   doc.Spawner.Radius,
	}

	for _, key := range sortedKeys(doc.Monsters) {
		m, err := doc.Monsters[key].template()
		if err != nil {
			return nil, fmt.Errorf("monster %q: %w", key, err)
		}
		tables.Monsters[key] = m
	}
	for _, key := range sortedKeys(doc.Items) {
		it, err := doc.Items[key].template()
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", key, err)
		}
		tables.Items[key] = it
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "content",
		"monsters":  len(tables.Monsters),
		"items":     len(tables.Items),
	}).Debug("Content tables loaded")

	return tables, nil
}

func (d monsterDoc) template() (dungeon.MonsterTemplate, error) {
	symbol, color, err := parseLook(d.Symbol, d.Color)
	if err != nil {
		return dungeon.MonsterTemplate{}, err
	}
	if d.Name == "" {
		return dungeon.MonsterTemplate{}, fmt.Errorf("%w: name is required", ErrInvalidContent)
	}
	if d.HP <= 0 {
		return dungeon.MonsterTemplate{}, fmt.Errorf("%w: hp must be positive, got %d", ErrInvalidContent, d.HP)
	}
	kind, ok := enums.ParseAIKind(d.AI)
	if !ok {
		return dungeon.MonsterTemplate{}, fmt.Errorf("%w: unknown ai %q", ErrInvalidContent, d.AI)
	}

	return dungeon.MonsterTemplate{
		Name:              d.Name,
		Symbol:            symbol,
		Color:             color,
		AI:                kind,
		ActsOutsideVision: d.ActsOutsideVision,
		ActionRadius:      d.ActionRadius,
		HP:                d.HP,
		Defense:           d.Defense,
		Power:             d.Power,
		XP:                d.XP,
		ResourceValue:     resourceValue(d.ResourceValue),
		TreasureValue:     d.TreasureValue,
		Weight:            d.Weight,
	}, nil
}

func (d itemDoc) template() (dungeon.ItemTemplate, error) {
	symbol, color, err := parseLook(d.Symbol, d.Color)
	if err != nil {
		return dungeon.ItemTemplate{}, err
	}
	if d.Name == "" {
		return dungeon.ItemTemplate{}, fmt.Errorf("%w: name is required", ErrInvalidContent)
	}
	effect, ok := enums.ParseItemEffect(d.Effect)
	if !ok {
		return dungeon.ItemTemplate{}, fmt.Errorf("%w: unknown effect %q", ErrInvalidContent, d.Effect)
	}
	slot := enums.SlotNone
	if d.Slot != "" {
		if slot, ok = enums.ParseEquipmentSlot(d.Slot); !ok {
			return dungeon.ItemTemplate{}, fmt.Errorf("%w: unknown slot %q", ErrInvalidContent, d.Slot)
		}
	}
	if effect == enums.ItemEffectNone && slot == enums.SlotNone {
		logger.Log.WithFields(logrus.Fields{
			"component": "content",
			"item":      d.Name,
		}).Warn("Item has neither effect nor slot")
	}

	return dungeon.ItemTemplate{
		Name:             d.Name,
		Symbol:           symbol,
		Color:            color,
		Effect:           effect,
		Amount:           d.Amount,
		Damage:           d.Damage,
		Radius:           d.Radius,
		Range:            d.Range,
		Turns:            d.Turns,
		Targeting:        d.Targeting,
		TargetingMessage: d.TargetingMessage,
		Slot:             slot,
		PowerBonus:       d.PowerBonus,
		DefenseBonus:     d.DefenseBonus,
		ResourceValue:    resourceValue(d.ResourceValue),
		Weight:           d.Weight,
	}, nil
}

// parseLook проверяет символ (ровно один ASCII-байт) и цвет (пустой - белый).
func parseLook(symbol, color string) (byte, uint32, error) {
	if len(symbol) != 1 || symbol[0] < 33 || symbol[0] > 126 {
		return 0, 0, fmt.Errorf("%w: symbol must be a single printable ASCII char, got %q", ErrInvalidContent, symbol)
	}
	if strings.TrimSpace(color) == "" {
		return symbol[0], 0xFFFFFF, nil
	}
	c, err := types.ParseColor(color)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}
	return symbol[0], c, nil
}

// Нулевая стоимость не списывала бы бюджет комнаты.
func resourceValue(v int) int {
	if v <= 0 {
		return 1
	}
	return v
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
