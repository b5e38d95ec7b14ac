package engine

import (
	"errors"
	"fmt"

	"crawler-server/internal/domain"
	"crawler-server/internal/infrastructure/storage"
	"crawler-server/pkg/dungeon"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrReplayDiverged - проигрывание записи разошлось с записанными ходами.
var ErrReplayDiverged = errors.New("replay diverged")

// Seed - мастер-зерно партии.
func (g *Game) Seed() int64 { return g.cfg.Seed }

// Replay проигрывает запись на новой партии с тем же сидом.
// Отклонённые команды отклоняются и при проигрывании, это не ошибка.
// Админ-команды попадают в запись только исполненными, поэтому Admin включается всегда.
func Replay(cfg Config, tables *dungeon.Tables, session *storage.ReplaySession) (*Game, error) {
	cfg.Seed = session.Seed
	cfg.Admin = true

	g, err := NewGame(cfg, tables)
	if err != nil {
		return nil, err
	}

	replayLogger := logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"seed":      session.Seed,
		"actions":   len(session.Actions),
	})

	for i, act := range session.Actions {
		if g.turn != act.Turn {
			return g, fmt.Errorf("%w: action %d recorded at turn %d, replayed at %d", ErrReplayDiverged, i, act.Turn, g.turn)
		}

		if act.Admin != "" {
			err = g.ExecuteAdmin(act.Admin, act.Payload)
		} else {
			err = g.Execute(domain.Command{Action: act.Action, Payload: act.Payload})
		}
		if err != nil && !isExpectedRejection(err) {
			return g, fmt.Errorf("replay action %d: %w", i, err)
		}
	}

	replayLogger.WithFields(logrus.Fields{
		"turn":  g.turn,
		"depth": g.Map.Depth,
		"state": g.state.String(),
	}).Info("Replay finished.")
	return g, nil
}

func isExpectedRejection(err error) bool {
	return errors.Is(err, ErrActionRejected) ||
		errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrWrongState) ||
		errors.Is(err, ErrUnknownCommand)
}
