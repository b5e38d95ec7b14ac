package actions

import (
	"crawler-server/internal/domain"
	"crawler-server/internal/engine/handlers"
	"crawler-server/pkg/api"
)

// LevelUpHPBonus - прибавка к здоровью при выборе телосложения.
const LevelUpHPBonus = 20

// HandleLevelUp применяет выбранную при повышении уровня характеристику.
func HandleLevelUp(ctx handlers.Context, p api.StatPayload) (handlers.Result, error) {
	f := ctx.Actor.Fighter
	switch p.Stat {
	case api.StatHP:
		f.MaxHP += LevelUpHPBonus
		f.HP += LevelUpHPBonus
		ctx.Log.Add("Вы чувствуете себя крепче.", domain.MsgSystem, domain.ColorGreen)
	case api.StatPower:
		f.Power++
		ctx.Log.Add("Вы чувствуете себя сильнее.", domain.MsgSystem, domain.ColorGreen)
	case api.StatDefense:
		f.Defense++
		ctx.Log.Add("Вы чувствуете себя проворнее.", domain.MsgSystem, domain.ColorGreen)
	}
	// Состояние после выбора восстанавливает движок
	return handlers.EmptyResult(), nil
}
