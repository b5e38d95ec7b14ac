package systems

import (
	"math/rand"

	"crawler-server/internal/domain"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SpawnFunc строит монстра по ключу шаблона. nil - шаблон неизвестен.
type SpawnFunc func(key string, pos domain.Position) *domain.Entity

// RoomMonsterCount - суммарный ResourceValue бойцов строго внутри комнаты.
func RoomMonsterCount(reg *domain.Registry, room domain.Room) int {
	count := 0
	for _, e := range reg.Entities() {
		if e.Fighter != nil && room.ContainsInterior(e.Pos) {
			count += e.ResourceValue
		}
	}
	return count
}

// CanSpawn проверяет и продвигает перезарядку спаунера.
//
// Пока идёт перезарядка, счётчик уменьшается и спаун запрещён. Когда
// игрок подходит на расстояние Radius, перезарядка запускается заново,
// а спаун разрешён, если комната не заполнена до MonsterBudget.
func CanSpawn(spawner *domain.Entity, player *domain.Entity, reg *domain.Registry) bool {
	sp := spawner.Spawner
	if sp.CooldownLeft > 0 {
		sp.CooldownLeft--
		return false
	}
	if player.DistanceTo(spawner) > float64(sp.Radius) {
		return false
	}
	sp.CooldownLeft = sp.Cooldown
	return RoomMonsterCount(reg, sp.Room) < sp.Room.MonsterBudget
}

// TickSpawners даёт каждому спаунеру уровня шанс породить монстра.
// Возвращает порождённых монстров, уже вставленных в реестр.
func TickSpawners(reg *domain.Registry, player *domain.Entity, rng *rand.Rand, spawn SpawnFunc) []*domain.Entity {
	var spawned []*domain.Entity

	for _, e := range reg.Entities() {
		if e.Spawner == nil || !CanSpawn(e, player, reg) {
			continue
		}

		spawnLogger := logger.Log.WithFields(logrus.Fields{
			"component": "spawner_system",
			"spawner":   e.ID,
			"template":  e.Spawner.Template,
		})

		pos := e.Spawner.Room.RandomPoint(rng)
		if _, blocked := reg.BlockingAt(pos.X, pos.Y); blocked {
			spawnLogger.WithField("pos", pos).Debug("Spawn cell is occupied.")
			continue
		}

		monster := spawn(e.Spawner.Template, pos)
		if monster == nil {
			spawnLogger.Warn("Unknown monster template.")
			continue
		}
		if _, err := reg.Insert(monster); err != nil {
			spawnLogger.WithError(err).Warn("Spawned monster rejected.")
			continue
		}

		spawnLogger.WithField("pos", pos).Debug("Monster spawned.")
		spawned = append(spawned, monster)
	}
	return spawned
}
