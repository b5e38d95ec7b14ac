package dungeon

import (
	"errors"
	"fmt"
	"math/rand"

	"crawler-server/internal/domain"
	"crawler-server/pkg/utils"
)

// ErrGenerationFailure - ни одна комната не поместилась, у уровня нет точки старта.
var ErrGenerationFailure = errors.New("level generation failed: no rooms placed")

// Параметры генерации по умолчанию
const (
	MapWidth    = 80
	MapHeight   = 43
	MaxRooms    = 30
	RoomMinSize = 6
	RoomMaxSize = 10
)

// LayoutParams - размеры карты и ограничения на комнаты.
type LayoutParams struct {
	Width       int
	Height      int
	MaxRooms    int
	RoomMinSize int
	RoomMaxSize int
}

// DefaultLayoutParams возвращает стандартные параметры уровня.
func DefaultLayoutParams() LayoutParams {
	return LayoutParams{
		Width:       MapWidth,
		Height:      MapHeight,
		MaxRooms:    MaxRooms,
		RoomMinSize: RoomMinSize,
		RoomMaxSize: RoomMaxSize,
	}
}

// Layout - результат генерации: сетка, комнаты в порядке принятия, вход и выход.
type Layout struct {
	Grid  *domain.Grid
	Rooms []domain.Room
	Start domain.Position
	Exit  domain.Position
}

func createRoom(grid *domain.Grid, room domain.Room) {
	for y := room.Y1 + 1; y < room.Y2; y++ {
		for x := room.X1 + 1; x < room.X2; x++ {
			_ = grid.Carve(x, y)
		}
	}
}

func createHCorridor(grid *domain.Grid, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		_ = grid.Carve(x, y)
	}
}

func createVCorridor(grid *domain.Grid, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		_ = grid.Carve(x, y)
	}
}

// LevelBuilder предоставляет fluent API для создания раскладки уровня
type LevelBuilder struct {
	params LayoutParams
	grid   *domain.Grid
	rooms  []domain.Room
	rng    *rand.Rand
}

// NewLevel создает новый builder для уровня
func NewLevel(rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{params: DefaultLayoutParams(), rng: rng}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.params.Width = width
	b.params.Height = height
	return b
}

// WithRoomSize задаёт границы размера комнаты
func (b *LevelBuilder) WithRoomSize(minSize, maxSize int) *LevelBuilder {
	b.params.RoomMinSize = minSize
	b.params.RoomMaxSize = maxSize
	return b
}

// WithRooms генерирует комнаты и коридоры. Каждая попытка расходуется
// ровно один раз: неудачное размещение не повторяется.
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	b.params.MaxRooms = maxRooms
	b.grid = domain.NewGrid(max(b.params.Width, 0), max(b.params.Height, 0))
	b.rooms = make([]domain.Room, 0, max(maxRooms, 0))
	if b.params.RoomMinSize < 1 || b.params.RoomMaxSize < b.params.RoomMinSize {
		// Комнату такого размера не вырезать: ни одна попытка не удастся
		return b
	}

	for i := 0; i < maxRooms; i++ {
		w := utils.RandRange(b.rng, b.params.RoomMinSize, b.params.RoomMaxSize)
		h := utils.RandRange(b.rng, b.params.RoomMinSize, b.params.RoomMaxSize)
		if w >= b.params.Width || h >= b.params.Height {
			continue
		}
		x := utils.RandRange(b.rng, 0, b.params.Width-w-1)
		y := utils.RandRange(b.rng, 0, b.params.Height-h-1)

		newRoom := domain.NewRoom(x, y, w, h)

		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(b.grid, newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			prev := b.rooms[len(b.rooms)-1].Center()
			curr := newRoom.Center()

			if b.rng.Intn(2) == 0 {
				createHCorridor(b.grid, prev.X, curr.X, prev.Y)
				createVCorridor(b.grid, prev.Y, curr.Y, curr.X)
			} else {
				createVCorridor(b.grid, prev.Y, curr.Y, prev.X)
				createHCorridor(b.grid, prev.X, curr.X, curr.Y)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	return b
}

// Build собирает раскладку. Старт - центр первой комнаты, выход - центр последней.
func (b *LevelBuilder) Build() (*Layout, error) {
	if len(b.rooms) == 0 {
		return nil, fmt.Errorf("%dx%d map, %d attempts: %w",
			b.params.Width, b.params.Height, b.params.MaxRooms, ErrGenerationFailure)
	}
	return &Layout{
		Grid:  b.grid,
		Rooms: b.rooms,
		Start: b.rooms[0].Center(),
		Exit:  b.rooms[len(b.rooms)-1].Center(),
	}, nil
}

// GenerateLayout - короткая форма для NewLevel(...).WithSize(...).WithRooms(...).Build().
func GenerateLayout(rng *rand.Rand, p LayoutParams) (*Layout, error) {
	return NewLevel(rng).
		WithSize(p.Width, p.Height).
		WithRoomSize(p.RoomMinSize, p.RoomMaxSize).
		WithRooms(p.MaxRooms).
		Build()
}
