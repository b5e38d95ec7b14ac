package actions

import (
	"errors"
	"fmt"

	"crawler-server/internal/domain"
	"crawler-server/internal/engine/handlers"
	"crawler-server/internal/systems"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// attack - удар по сущности, в которую упёрся игрок.
func attack(ctx handlers.Context, target *domain.Entity) (handlers.Result, error) {
	res, err := systems.Attack(ctx.Actor, target, ctx.Log)
	if errors.Is(err, systems.ErrNoFighter) {
		return handlers.Reject(ctx, fmt.Sprintf("%s преграждает путь.", target.Name))
	}
	if err != nil {
		return handlers.Result{}, err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "attack_handler",
		"target":    target.Name,
		"damage":    res.Damage,
		"killed":    res.Killed,
	}).Debug("Player attacked.")

	out := handlers.TurnResult()
	out.LeveledUp = res.LeveledUp
	out.PlayerDied = res.PlayerDied
	return out, nil
}
