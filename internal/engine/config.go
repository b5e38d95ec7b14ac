package engine

import (
	"errors"
	"fmt"
	"time"

	"crawler-server/pkg/dungeon"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidConfig - значение конфигурации вне допустимого диапазона.
var ErrInvalidConfig = errors.New("invalid engine config")

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят все уровни и решения монстров.
	// 0 - взять зерно от текущего времени.
	Seed int64 `env:"CD_SEED" envDefault:"0"`

	MapWidth    int `env:"CD_MAP_WIDTH" envDefault:"80"`
	MapHeight   int `env:"CD_MAP_HEIGHT" envDefault:"43"`
	MaxRooms    int `env:"CD_MAX_ROOMS" envDefault:"30"`
	RoomMinSize int `env:"CD_ROOM_MIN_SIZE" envDefault:"6"`
	RoomMaxSize int `env:"CD_ROOM_MAX_SIZE" envDefault:"10"`

	FOVRadius int `env:"CD_FOV_RADIUS" envDefault:"10"`

	// MessageLogSize - сколько сообщений журнала хранится.
	MessageLogSize int `env:"CD_MESSAGE_LOG_SIZE" envDefault:"100"`
	// PopulateAttempts - лимит вытягиваний из таблиц на комнату.
	PopulateAttempts int `env:"CD_POPULATE_ATTEMPTS" envDefault:"30"`

	// Admin - разрешить отладочные команды.
	Admin bool `env:"CD_ADMIN" envDefault:"false"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	p := dungeon.DefaultLayoutParams()
	return Config{
		Seed:             time.Now().UnixNano(),
		MapWidth:         p.Width,
		MapHeight:        p.Height,
		MaxRooms:         p.MaxRooms,
		RoomMinSize:      p.RoomMinSize,
		RoomMaxSize:      p.RoomMaxSize,
		FOVRadius:        10,
		MessageLogSize:   100,
		PopulateAttempts: dungeon.DefaultMaxAttempts,
	}
}

// LoadConfig читает конфигурацию из переменных окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse engine config: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate отсекает значения, на которых генератор или журнал не работают.
func (c Config) Validate() error {
	switch {
	case c.MapWidth < 3 || c.MapHeight < 3:
		return fmt.Errorf("%w: map %dx%d is too small", ErrInvalidConfig, c.MapWidth, c.MapHeight)
	case c.MaxRooms < 1:
		return fmt.Errorf("%w: max rooms %d, need at least 1", ErrInvalidConfig, c.MaxRooms)
	case c.RoomMinSize < 1 || c.RoomMaxSize < c.RoomMinSize:
		return fmt.Errorf("%w: room size %d..%d", ErrInvalidConfig, c.RoomMinSize, c.RoomMaxSize)
	case c.FOVRadius < 0:
		return fmt.Errorf("%w: negative fov radius %d", ErrInvalidConfig, c.FOVRadius)
	case c.MessageLogSize < 1:
		return fmt.Errorf("%w: message log size %d", ErrInvalidConfig, c.MessageLogSize)
	case c.PopulateAttempts < 1:
		return fmt.Errorf("%w: populate attempts %d", ErrInvalidConfig, c.PopulateAttempts)
	}
	return nil
}

// LayoutParams - параметры генератора карты.
func (c Config) LayoutParams() dungeon.LayoutParams {
	return dungeon.LayoutParams{
		Width:       c.MapWidth,
		Height:      c.MapHeight,
		MaxRooms:    c.MaxRooms,
		RoomMinSize: c.RoomMinSize,
		RoomMaxSize: c.RoomMaxSize,
	}
}
