package domain

import "encoding/json"

// Command - команда игрока для движка.
// Payload парсится хендлером конкретного действия.
type Command struct {
	Action  ActionType
	Payload json.RawMessage
}
