package systems

import (
	"errors"
	"fmt"
	"strings"

	"crawler-server/internal/core/types"
	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrNoFighter - атака по сущности без боевого компонента (труп, предмет).
var ErrNoFighter = errors.New("target has no fighter component")

// AttackResult - итог одной атаки
type AttackResult struct {
	Damage     int
	Killed     bool
	PlayerDied bool
	XP         int
	Gold       int
	LeveledUp  bool
}

// Attack разрешает одну атаку attacker по defender и пишет сообщения в журнал.
//
// Урон = max(0, сила атакующего - защита цели), обе величины с учётом экипировки.
// При гибели цели атакующий получает её опыт и сокровища.
func Attack(attacker, defender *domain.Entity, log *domain.MessageLog) (AttackResult, error) {
	var res AttackResult
	if defender == nil || defender.Fighter == nil {
		return res, ErrNoFighter
	}

	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"target_id":     defender.ID,
		"target_name":   defender.Name,
	})

	res.Damage = max(0, attacker.Power()-defender.Defense())

	if res.Damage == 0 {
		log.Add(fmt.Sprintf("%s атакует %s, но не наносит урона.", capitalize(attacker.Name), defender.Name), domain.MsgCombat, domain.ColorWhite)
		combatLogger.Debug("Attack resolved without damage.")
		return res, nil
	}

	log.Add(fmt.Sprintf("%s атакует %s и наносит %d урона.", capitalize(attacker.Name), defender.Name, res.Damage), domain.MsgCombat, domain.ColorWhite)

	hpBefore := defender.Fighter.HP
	if !defender.Fighter.TakeDamage(res.Damage) {
		combatLogger.WithFields(logrus.Fields{
			"damage":    res.Damage,
			"hp_before": hpBefore,
			"hp_after":  defender.Fighter.HP,
		}).Debug("Attack resolved.")
		return res, nil
	}

	res = resolveKill(attacker, defender, res, log)

	combatLogger.WithFields(logrus.Fields{
		"damage":      res.Damage,
		"xp":          res.XP,
		"gold":        res.Gold,
		"leveled_up":  res.LeveledUp,
		"player_died": res.PlayerDied,
	}).Info("Target killed.")

	return res, nil
}

// resolveKill фиксирует гибель target и начисляет награду source.
// Опыт и золото считываются до Kill: останки их теряют.
func resolveKill(source, target *domain.Entity, res AttackResult, log *domain.MessageLog) AttackResult {
	res.Killed = true
	res.XP = target.Fighter.XP
	res.Gold = target.TreasureValue
	res.PlayerDied = Kill(target, log)

	if source == target {
		return res
	}
	if source.Fighter != nil {
		source.Fighter.Gold += res.Gold
	}
	if source.Level != nil && res.XP > 0 {
		log.Add(fmt.Sprintf("Вы получаете %d опыта.", res.XP), domain.MsgInfo, domain.ColorWhite)
		res.LeveledUp = source.Level.AddXP(res.XP)
		if res.LeveledUp {
			log.Add(fmt.Sprintf("Ваши боевые навыки растут! Достигнут уровень %d!", source.Level.CurrentLevel), domain.MsgSystem, domain.ColorYellow)
		}
	}
	return res
}

// Kill переводит сущность в состояние смерти. Возвращает true, если погиб игрок.
//
// Игрок только меняет символ: его компоненты нужны для экрана смерти.
// Монстр становится проходимыми останками без боевых компонентов,
// но сохраняет слот в реестре.
func Kill(e *domain.Entity, log *domain.MessageLog) bool {
	if e.Type == enums.EntityTypePlayer {
		e.Glyph = types.MakeGlyph(domain.ColorDarkRed, domain.SymbolCorpse)
		log.Add("Вы погибли!", domain.MsgDeath, domain.ColorRed)
		return true
	}

	log.Add(fmt.Sprintf("%s погибает!", capitalize(e.Name)), domain.MsgDeath, domain.ColorOrange)

	e.Glyph = types.MakeGlyph(domain.ColorDarkRed, domain.SymbolCorpse)
	e.Blocks = false
	e.Fighter = nil
	e.AI = nil
	e.Inventory = nil
	e.Equipment = nil
	e.ResourceValue = 0
	e.TreasureValue = 0
	e.Name = "останки " + e.Name
	e.RenderOrder = enums.RenderOrderCorpse
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
