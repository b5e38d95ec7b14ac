package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"crawler-server/internal/core/types"
	"crawler-server/internal/domain"
	"crawler-server/pkg/dungeon"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrDepthOutOfRange - глубина вне 1..types.MaxDepth.
var ErrDepthOutOfRange = errors.New("depth out of range")

// GameMap - текущий уровень: сетка, глубина, реестр сущностей и комнаты.
type GameMap struct {
	Grid     *domain.Grid
	Depth    int
	Registry *domain.Registry
	Rooms    []domain.Room

	params dungeon.LayoutParams
	tables *dungeon.Tables
	opts   dungeon.PopulateOptions
}

// NewGameMap создаёт пустую карту. Уровень строится через Build.
func NewGameMap(params dungeon.LayoutParams, tables *dungeon.Tables, opts dungeon.PopulateOptions) *GameMap {
	return &GameMap{params: params, tables: tables, opts: opts}
}

// Build генерирует уровень depth и ставит игрока на вход.
// Игрок переносится со всеми компонентами, меняется только его ID.
func (m *GameMap) Build(rng *rand.Rand, depth int, player *domain.Entity) error {
	if depth < 1 || depth > types.MaxDepth {
		return fmt.Errorf("build level %d: %w", depth, ErrDepthOutOfRange)
	}

	layout, err := dungeon.GenerateLayout(rng, m.params)
	if err != nil {
		return fmt.Errorf("build level %d: %w", depth, err)
	}

	reg := domain.NewRegistry(depth, layout.Grid.Width, layout.Grid.Height)

	player.Pos = layout.Start
	if _, err := reg.Insert(player); err != nil {
		return fmt.Errorf("build level %d: place player: %w", depth, err)
	}
	if _, err := reg.Insert(dungeon.NewStairs(layout.Exit, depth+1)); err != nil {
		return fmt.Errorf("build level %d: place stairs: %w", depth, err)
	}

	result, err := dungeon.Populate(rng, reg, layout.Rooms, depth, m.tables, m.opts)
	if err != nil {
		return fmt.Errorf("build level %d: populate: %w", depth, err)
	}

	m.Grid = layout.Grid
	m.Depth = depth
	m.Registry = reg
	m.Rooms = layout.Rooms

	logger.Log.WithFields(logrus.Fields{
		"component": "world_builder",
		"depth":     depth,
		"rooms":     len(layout.Rooms),
		"monsters":  result.Monsters,
		"items":     result.Items,
		"spawners":  result.Spawners,
	}).Info("Level built.")
	return nil
}

// AdvanceLevel перестраивает карту для следующей глубины.
func (m *GameMap) AdvanceLevel(rng *rand.Rand, player *domain.Entity) error {
	return m.Build(rng, m.Depth+1, player)
}
