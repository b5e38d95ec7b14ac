package systems

import (
	"errors"
	"fmt"
	"math/rand"

	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// TurnContext - всё, что нужно монстру для хода.
type TurnContext struct {
	Grid     *domain.Grid
	Registry *domain.Registry
	Target   *domain.Entity // игрок
	Visible  mapset.Set[int]
	Rng      *rand.Rand
	Log      *domain.MessageLog
}

// TurnResult - что произошло за ход монстра.
type TurnResult struct {
	Moved    bool
	Attacked bool
	Attack   AttackResult
}

// TakeTurn выполняет ход сущности согласно её текущему поведению.
// Сущности без AI или Fighter (предметы, останки) ничего не делают.
func TakeTurn(ctx TurnContext, e *domain.Entity) TurnResult {
	if e == nil || e.AI == nil || e.Fighter == nil || ctx.Target == nil {
		return TurnResult{}
	}

	switch e.AI.Behavior.Kind {
	case enums.AIKindAggressive:
		return aggressiveTurn(ctx, e)
	case enums.AIKindConfused:
		return confusedTurn(ctx, e)
	}
	return TurnResult{}
}

// canAct: монстр в поле зрения игрока, либо умеет действовать вне его и цель рядом.
func canAct(ctx TurnContext, e *domain.Entity) bool {
	if InFOV(ctx.Grid, ctx.Visible, e.Pos) {
		return true
	}
	return e.AI.ActsOutsideVision && e.DistanceTo(ctx.Target) <= float64(e.AI.ActionRadius)
}

func aggressiveTurn(ctx TurnContext, e *domain.Entity) TurnResult {
	var res TurnResult
	if !canAct(ctx, e) {
		return res
	}

	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"entity_id": e.ID,
		"name":      e.Name,
	})

	dist := e.DistanceTo(ctx.Target)
	if dist >= 2 {
		dx, dy, ok := FindStep(e, ctx.Target, ctx.Grid, ctx.Registry.Entities())
		if !ok {
			aiLogger.WithField("distance", dist).Debug("No step towards target.")
			return res
		}
		res.Moved = TryMove(e, dx, dy, ctx.Grid, ctx.Registry)
		aiLogger.WithFields(logrus.Fields{"dx": dx, "dy": dy, "moved": res.Moved}).Debug("Chasing target.")
		return res
	}

	if !ctx.Target.IsAlive() {
		return res
	}

	attack, err := Attack(e, ctx.Target, ctx.Log)
	if err != nil {
		if !errors.Is(err, ErrNoFighter) {
			aiLogger.WithError(err).Warn("Attack failed.")
		}
		return res
	}
	res.Attacked = true
	res.Attack = attack
	return res
}

func confusedTurn(ctx TurnContext, e *domain.Entity) TurnResult {
	var res TurnResult

	d := directions8[ctx.Rng.Intn(len(directions8))]
	res.Moved = TryMove(e, d[0], d[1], ctx.Grid, ctx.Registry)

	if e.AI.TickConfusion() {
		ctx.Log.Add(fmt.Sprintf("%s больше не в замешательстве!", capitalize(e.Name)), domain.MsgInfo, domain.ColorRed)
		logger.Log.WithFields(logrus.Fields{
			"component": "ai_system",
			"entity_id": e.ID,
			"name":      e.Name,
		}).Debug("Confusion wore off.")
	}
	return res
}
