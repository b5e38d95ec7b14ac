package engine

import (
	"fmt"

	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
	"crawler-server/internal/engine/handlers"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// applyResult переводит результат обработчика в переходы состояний.
func (g *Game) applyResult(res handlers.Result) error {
	prev := g.state

	if res.NextState != enums.StateNone {
		g.state = res.NextState
	}
	if res.NextState == enums.StateTargeting {
		g.pendingItem = res.PendingItem
		g.targeting = res.Targeting
	} else if prev == enums.StateTargeting {
		g.pendingItem = 0
		g.targeting = ""
	}

	if res.PlayerDied {
		g.killPlayer()
		return nil
	}

	if prev == enums.StateLevelUp {
		return g.finishLevelUp()
	}

	if res.Descend {
		return g.descend()
	}

	if !res.TurnTaken {
		return nil
	}

	g.turn++
	g.recomputeFOV()

	if res.LeveledUp {
		// Враги ходят после выбора характеристики
		g.state = enums.StateLevelUp
		g.resumeEnemies = true
		return nil
	}

	g.processEnemyPhase()
	return nil
}

func (g *Game) finishLevelUp() error {
	g.state = enums.StatePlayerTurn
	if g.resumeEnemies {
		g.resumeEnemies = false
		g.processEnemyPhase()
	}
	return nil
}

// descend - спуск по лестнице: новый уровень, отдых на половину здоровья.
func (g *Game) descend() error {
	if err := g.Map.AdvanceLevel(g.rng, g.Player); err != nil {
		return fmt.Errorf("descend: %w", err)
	}

	g.Player.Fighter.Heal(g.Player.Fighter.MaxHP / 2)
	g.Log.Add("Вы отдыхаете мгновение и восстанавливаете силы.", domain.MsgSystem, domain.ColorLightViolet)

	g.turn++
	g.state = enums.StatePlayerTurn
	g.recomputeFOV()

	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"depth":     g.Map.Depth,
		"player_hp": g.Player.Fighter.HP,
	}).Info("Player descended.")
	return nil
}

func (g *Game) killPlayer() {
	g.state = enums.StatePlayerDead
	g.resumeEnemies = false
	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"depth":     g.Map.Depth,
		"turn":      g.turn,
	}).Info("Player died.")
}
