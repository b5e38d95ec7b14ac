package domain

import "crawler-server/internal/core/types/enums"

// DefaultConfusionTurns - длительность замешательства, если предмет её не задаёт.
const DefaultConfusionTurns = 10

// Confuse оборачивает текущее поведение в Confused.
// Повторное замешательство не теряет исходное поведение: длительность
// становится max(оставшаяся, новая).
func (a *AIComponent) Confuse(turns int) {
	if turns <= 0 {
		turns = DefaultConfusionTurns
	}
	if a.Behavior.Kind == enums.AIKindConfused {
		if turns > a.Behavior.TurnsLeft {
			a.Behavior.TurnsLeft = turns
		}
		return
	}
	prev := a.Behavior
	a.Behavior = Behavior{Kind: enums.AIKindConfused, TurnsLeft: turns, Previous: &prev}
}

// TickConfusion списывает один ход замешательства.
// Возвращает true, когда поведение восстановлено.
func (a *AIComponent) TickConfusion() bool {
	if a.Behavior.Kind != enums.AIKindConfused {
		return false
	}
	a.Behavior.TurnsLeft--
	if a.Behavior.TurnsLeft > 0 {
		return false
	}
	if a.Behavior.Previous != nil {
		a.Behavior = *a.Behavior.Previous
	} else {
		a.Behavior = Behavior{Kind: enums.AIKindAggressive}
	}
	return true
}

func (a *AIComponent) IsConfused() bool {
	return a.Behavior.Kind == enums.AIKindConfused
}
