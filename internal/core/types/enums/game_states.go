package enums

// GameState - состояние планировщика ходов.
type GameState uint8

const (
	// StateNone - "без изменений" в результатах обработчиков.
	StateNone GameState = iota
	StatePlayerTurn
	StateEnemyTurn
	StatePlayerDead
	StateTargeting
	StateShowInventory
	StateDropInventory
	StateLevelUp
)

var gameStateNames = map[GameState]string{
	StateNone:          "NONE",
	StatePlayerTurn:    "PLAYER_TURN",
	StateEnemyTurn:     "ENEMY_TURN",
	StatePlayerDead:    "PLAYER_DEAD",
	StateTargeting:     "TARGETING",
	StateShowInventory: "SHOW_INVENTORY",
	StateDropInventory: "DROP_INVENTORY",
	StateLevelUp:       "LEVEL_UP",
}

func (s GameState) String() string {
	if name, ok := gameStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsMenu - подсостояние, приостанавливающее фазу врагов.
func (s GameState) IsMenu() bool {
	switch s {
	case StateTargeting, StateShowInventory, StateDropInventory, StateLevelUp:
		return true
	}
	return false
}
