package dungeon

import (
	"errors"
	"fmt"
	"math/rand"

	"crawler-server/internal/domain"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrOccupiedCell - в клетке уже есть сущность, размещение отклонено.
var ErrOccupiedCell = errors.New("cell is occupied")

// DefaultMaxAttempts - сколько раз тянуть из таблицы на одну комнату.
const DefaultMaxAttempts = 30

// PopulateOptions ограничивает цикл размещения.
type PopulateOptions struct {
	// MaxAttempts - лимит вытягиваний из таблицы на комнату и таблицу.
	MaxAttempts int
}

// PopulateResult - что было размещено на уровне.
type PopulateResult struct {
	Monsters int
	Items    int
	Spawners int
	// Occupied - сколько размещений отклонено из-за занятой клетки.
	Occupied int
}

// Populate наполняет комнаты монстрами, предметами и спаунерами.
// Бюджет комнаты выставляется в rooms[i].MonsterBudget.
// Первая комната отдана игроку: монстров и спаунеров в ней нет, предметы есть.
func Populate(rng *rand.Rand, reg *domain.Registry, rooms []domain.Room, depth int, tables *Tables, opts PopulateOptions) (PopulateResult, error) {
	var result PopulateResult
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	monsters := tables.MonsterTable()
	items := tables.ItemTable()

	for i := range rooms {
		rooms[i].MonsterBudget = tables.MonsterBudget.At(depth)
		room := rooms[i]

		if i > 0 {
			n, occupied, err := fillRoom(rng, reg, room, depth, room.MonsterBudget, opts.MaxAttempts, monsters,
				func(key string) int { return tables.Monsters[key].ResourceValue },
				func(key string, pos domain.Position) *domain.Entity { return tables.Monsters[key].SpawnMonster(pos) })
			if err != nil {
				return result, err
			}
			result.Monsters += n
			result.Occupied += occupied

			placed, err := placeSpawner(rng, reg, room, depth, tables, monsters)
			if err != nil {
				return result, err
			}
			if placed {
				result.Spawners++
			}
		}

		n, occupied, err := fillRoom(rng, reg, room, depth, tables.ItemBudget.At(depth), opts.MaxAttempts, items,
			func(key string) int { return tables.Items[key].ResourceValue },
			func(key string, pos domain.Position) *domain.Entity { return tables.Items[key].SpawnItem(pos) })
		if err != nil {
			return result, err
		}
		result.Items += n
		result.Occupied += occupied
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "populate",
		"depth":     depth,
		"rooms":     len(rooms),
		"monsters":  result.Monsters,
		"items":     result.Items,
		"spawners":  result.Spawners,
		"occupied":  result.Occupied,
	}).Debug("Level populated")

	return result, nil
}

// fillRoom тянет записи из таблицы, пока хватает бюджета или не кончились попытки.
// Занятая клетка не списывает бюджет.
func fillRoom(
	rng *rand.Rand,
	reg *domain.Registry,
	room domain.Room,
	depth, budget, maxAttempts int,
	table SpawnTable,
	cost func(key string) int,
	spawn func(key string, pos domain.Position) *domain.Entity,
) (placed, occupied int, err error) {
	remaining := budget
	for attempt := 0; remaining > 0 && attempt < maxAttempts; attempt++ {
		key, pickErr := table.Pick(rng, depth)
		if errors.Is(pickErr, ErrEmptySpawnTable) {
			return placed, occupied, nil
		}

		value := cost(key)
		if value > remaining {
			continue
		}

		err := placeAt(reg, spawn(key, room.RandomPoint(rng)))
		if errors.Is(err, ErrOccupiedCell) {
			occupied++
			continue
		}
		if err != nil {
			return placed, occupied, err
		}

		placed++
		remaining -= value
	}
	return placed, occupied, nil
}

func placeSpawner(rng *rand.Rand, reg *domain.Registry, room domain.Room, depth int, tables *Tables, monsters SpawnTable) (bool, error) {
	chance := tables.SpawnerChance.At(depth)
	if chance <= 0 || rng.Intn(100) >= chance {
		return false, nil
	}
	key, err := monsters.Pick(rng, depth)
	if errors.Is(err, ErrEmptySpawnTable) {
		return false, nil
	}

	spawner := NewSpawner(room.RandomPoint(rng), room, key, tables.Monsters[key], tables.SpawnerCooldown, tables.SpawnerRadius)
	err = placeAt(reg, spawner)
	if errors.Is(err, ErrOccupiedCell) {
		return false, nil
	}
	return err == nil, err
}

// placeAt регистрирует сущность, если в клетке никого нет.
func placeAt(reg *domain.Registry, e *domain.Entity) error {
	if len(reg.At(e.Pos.X, e.Pos.Y)) > 0 {
		return fmt.Errorf("place %q at (%d,%d): %w", e.Name, e.Pos.X, e.Pos.Y, ErrOccupiedCell)
	}
	_, err := reg.Insert(e)
	return err
}
