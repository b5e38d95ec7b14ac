package api

import (
	"encoding/json"

	"crawler-server/internal/core/types"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Frame это снимок игры для отрисовки. Отправляется после каждой команды.
type Frame struct {
	// Type тип сообщения: "FRAME" или "ERROR".
	Type string `json:"type"`

	// Turn номер хода игрока.
	Turn int `json:"turn"`

	// State состояние планировщика (PLAYER_TURN, TARGETING, PLAYER_DEAD...).
	// Клиент показывает меню инвентаря или прицел по этому полю.
	State string `json:"state"`

	// Depth текущая глубина подземелья.
	Depth int `json:"depth"`

	// Grid метаданные о размере всей карты.
	Grid GridMeta `json:"grid"`

	// Map срез всех видимых и/или исследованных тайлов.
	Map []TileView `json:"map,omitempty"`

	// Entities видимые сущности, отсортированные по порядку отрисовки.
	Entities []EntityView `json:"entities,omitempty"`

	// Player HUD игрока.
	Player *PlayerView `json:"player,omitempty"`

	// Messages новые сообщения журнала с прошлого кадра.
	Messages []MessageView `json:"messages,omitempty"`

	// Targeting подсказка прицеливания, если State == TARGETING.
	Targeting string `json:"targeting,omitempty"`

	// Error текст ошибки для Type == "ERROR".
	Error string `json:"error,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// IsWall true, если тайл блокирует движение.
	IsWall bool `json:"isWall"`

	// IsVisible true, если тайл находится в текущем поле зрения. Рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// IsExplored true, если тайл когда-либо был увиден. Используется для "тумана войны".
	IsExplored bool `json:"isExplored"`
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID   types.EntityID `json:"id"`
	Type string         `json:"type"` // PLAYER, MONSTER, ITEM, STAIRS, SPAWNER
	Name string         `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
		Order  int    `json:"order"`
	} `json:"render"`

	// Stats отсутствует у предметов и останков.
	Stats *StatsView `json:"stats,omitempty"`
}

// StatsView - здоровье для полоски над монстром.
type StatsView struct {
	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
}

// PlayerView - HUD игрока.
type PlayerView struct {
	ID       types.EntityID `json:"id"`
	HP       int            `json:"hp"`
	MaxHP    int            `json:"maxHp"`
	Power    int            `json:"power"`
	Defense  int            `json:"defense"`
	Gold     int            `json:"gold"`
	Level    int            `json:"level"`
	XP       int            `json:"xp"`
	XPToNext int            `json:"xpToNext"`

	Inventory []ItemView `json:"inventory"`
	Capacity  int        `json:"capacity"`
}

// ItemView представляет предмет инвентаря для клиента.
// Index - номер предмета для команд USE, DROP и EQUIP.
type ItemView struct {
	Index    int            `json:"index"`
	ID       types.EntityID `json:"id"`
	Name     string         `json:"name"`
	Symbol   string         `json:"symbol"`
	Color    string         `json:"color"`
	Equipped bool           `json:"equipped,omitempty"`
	Slot     string         `json:"slot,omitempty"`
}

// MessageView представляет одну запись в журнале.
type MessageView struct {
	Seq   int    `json:"seq"`
	Text  string `json:"text"`
	Type  string `json:"type"` // INFO, COMBAT, SYSTEM, DEATH
	Color string `json:"color"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для MOVE.
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// IndexPayload используется для действий с предметами инвентаря (USE, DROP, EQUIP).
type IndexPayload struct {
	Index int `json:"index"`
}

// TargetPayload используется для TARGET: либо клетка, либо ID сущности.
type TargetPayload struct {
	X        *int           `json:"x,omitempty"`
	Y        *int           `json:"y,omitempty"`
	TargetID types.EntityID `json:"targetId,omitempty"`
}

// StatPayload используется для LEVEL_UP.
type StatPayload struct {
	Stat string `json:"stat"` // hp, str, def
}
