package engine

import (
	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/systems"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// processEnemyPhase - ход всех монстров в порядке вставки в реестр,
// затем срабатывание спаунеров. Монстры, порождённые в этой фазе,
// ходят со следующей.
func (g *Game) processEnemyPhase() {
	g.state = enums.StateEnemyTurn

	ctx := systems.TurnContext{
		Grid:     g.Map.Grid,
		Registry: g.Map.Registry,
		Target:   g.Player,
		Visible:  g.visible,
		Rng:      g.rng,
		Log:      g.Log,
	}

	acted := 0
	for _, e := range g.Map.Registry.Entities() {
		if e == g.Player || e.AI == nil {
			continue
		}
		res := systems.TakeTurn(ctx, e)
		acted++
		if res.Attacked && res.Attack.PlayerDied {
			g.killPlayer()
			return
		}
	}

	spawned := systems.TickSpawners(g.Map.Registry, g.Player, g.rng, g.tables.SpawnMonster)

	logger.Log.WithFields(logrus.Fields{
		"component": "ai_turn_processor",
		"turn":      g.turn,
		"acted":     acted,
		"spawned":   len(spawned),
	}).Debug("Enemy phase finished.")

	g.state = enums.StatePlayerTurn
}
