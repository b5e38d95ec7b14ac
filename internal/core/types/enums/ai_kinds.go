package enums

import "strings"

// AIKind - закрытый набор вариантов поведения.
type AIKind uint8

const (
	AIKindNone AIKind = iota
	AIKindAggressive
	AIKindConfused
)

var aiKindToString = map[AIKind]string{
	AIKindNone:       "NONE",
	AIKindAggressive: "AGGRESSIVE",
	AIKindConfused:   "CONFUSED",
}

var aiKindStringToType = map[string]AIKind{
	"AGGRESSIVE": AIKindAggressive,
	"BASIC":      AIKindAggressive,
	"CONFUSED":   AIKindConfused,
}

func (k AIKind) String() string {
	if val, ok := aiKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseAIKind: пустая строка означает поведение по умолчанию (Aggressive).
func ParseAIKind(s string) (AIKind, bool) {
	if s == "" {
		return AIKindAggressive, true
	}
	val, ok := aiKindStringToType[strings.ToUpper(s)]
	return val, ok
}
