package systems

import (
	"errors"
	"fmt"

	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// ErrNoEffect - предмет не сработал и не израсходован. Ход не тратится.
var ErrNoEffect = errors.New("item had no effect")

// UseContext - окружение, в котором применяется предмет.
type UseContext struct {
	Grid     *domain.Grid
	Registry *domain.Registry
	Visible  mapset.Set[int]
	Log      *domain.MessageLog
}

// UseResult - итог применения предмета.
type UseResult struct {
	// NeedsTarget: предмет требует выбора клетки, ничего не произошло.
	NeedsTarget      bool
	TargetingMessage string
	Consumed         bool
	Equip            *domain.EquipChange
	// Kills - гибели, вызванные предметом (опыт уже начислен).
	Kills []AttackResult
}

// PlayerDied сообщает, погиб ли игрок от собственного предмета.
func (r UseResult) PlayerDied() bool {
	for _, k := range r.Kills {
		if k.PlayerDied {
			return true
		}
	}
	return false
}

// LeveledUp - повысился ли уровень за счёт убийств предметом.
func (r UseResult) LeveledUp() bool {
	for _, k := range r.Kills {
		if k.LeveledUp {
			return true
		}
	}
	return false
}

// UseItem применяет предмет из инвентаря actor.
//
// target == nil для прицельного предмета означает "нужно выбрать цель":
// возвращается NeedsTarget без побочных эффектов. Экипируемые предметы
// без эффекта надеваются или снимаются.
func UseItem(ctx UseContext, actor *domain.Entity, index int, target *domain.Position) (UseResult, error) {
	var res UseResult
	if actor.Inventory == nil {
		return res, ErrNoInventory
	}
	item, ok := actor.Inventory.ItemAt(index)
	if !ok {
		return res, ErrNoSuchItem
	}
	props := item.Item

	if props.Effect == enums.ItemEffectNone {
		if item.Equippable != nil {
			change, err := ToggleEquip(actor, index, ctx.Log)
			if err != nil {
				return res, err
			}
			res.Equip = &change
			return res, nil
		}
		ctx.Log.Add(fmt.Sprintf("%s нельзя использовать.", capitalize(item.Name)), domain.MsgInfo, domain.ColorYellow)
		return res, ErrNoEffect
	}

	if props.Targeting && target == nil {
		res.NeedsTarget = true
		res.TargetingMessage = props.TargetingMessage
		return res, nil
	}

	var err error
	switch props.Effect {
	case enums.ItemEffectHeal:
		err = useHeal(ctx, actor, props)
	case enums.ItemEffectLightning:
		res.Kills, err = useLightning(ctx, actor, props)
	case enums.ItemEffectFireball:
		res.Kills, err = useFireball(ctx, actor, props, *target)
	case enums.ItemEffectConfuse:
		err = useConfuse(ctx, props, *target)
	default:
		err = ErrNoEffect
	}
	if err != nil {
		return res, err
	}

	actor.Inventory.RemoveItem(item.ID)
	res.Consumed = true

	logger.Log.WithFields(logrus.Fields{
		"component": "item_system",
		"actor":     actor.Name,
		"item":      item.Name,
		"effect":    props.Effect.String(),
		"kills":     len(res.Kills),
	}).Debug("Item used.")
	return res, nil
}

func useHeal(ctx UseContext, actor *domain.Entity, props *domain.ItemComponent) error {
	if actor.Fighter == nil {
		return ErrNoFighter
	}
	if actor.Fighter.IsFullHP() {
		ctx.Log.Add("Вы уже полностью здоровы.", domain.MsgInfo, domain.ColorYellow)
		return ErrNoEffect
	}
	actor.Fighter.Heal(props.Amount)
	ctx.Log.Add("Ваши раны начинают затягиваться!", domain.MsgInfo, domain.ColorGreen)
	return nil
}

// useLightning бьёт ближайшего видимого врага в пределах Range.
func useLightning(ctx UseContext, actor *domain.Entity, props *domain.ItemComponent) ([]AttackResult, error) {
	var target *domain.Entity
	closest := float64(props.Range) + 1

	for _, e := range ctx.Registry.Entities() {
		if e == actor || !e.IsAlive() || !InFOV(ctx.Grid, ctx.Visible, e.Pos) {
			continue
		}
		if d := actor.DistanceTo(e); d < closest {
			target = e
			closest = d
		}
	}

	if target == nil || closest > float64(props.Range) {
		ctx.Log.Add("Рядом нет врага, в которого можно ударить молнией.", domain.MsgInfo, domain.ColorRed)
		return nil, ErrNoEffect
	}

	ctx.Log.Add(fmt.Sprintf("Молния с громовым раскатом бьёт %s и наносит %d урона!", target.Name, props.Damage), domain.MsgCombat, domain.ColorWhite)
	if kill, ok := applyDamage(actor, target, props.Damage, ctx.Log); ok {
		return []AttackResult{kill}, nil
	}
	return nil, nil
}

// useFireball поражает всех бойцов в радиусе от точки взрыва,
// не закрытых от неё стенами. Игрок тоже может пострадать.
func useFireball(ctx UseContext, actor *domain.Entity, props *domain.ItemComponent, center domain.Position) ([]AttackResult, error) {
	check := ValidateTarget(ctx.Grid, ctx.Visible, ctx.Registry, center)
	if !check.Valid {
		ctx.Log.Add(check.Message, domain.MsgInfo, domain.ColorYellow)
		return nil, ErrNoEffect
	}

	ctx.Log.Add(fmt.Sprintf("Огненный шар взрывается, сжигая всё в радиусе %d клеток!", props.Radius), domain.MsgCombat, domain.ColorOrange)

	var kills []AttackResult
	radius := float64(props.Radius)
	for _, e := range ctx.Registry.Entities() {
		if !e.IsAlive() || e.Pos.DistanceTo(center) > radius {
			continue
		}
		if !HasLineOfSight(ctx.Grid, center, e.Pos) {
			continue
		}
		ctx.Log.Add(fmt.Sprintf("%s горит и получает %d урона.", capitalize(e.Name), props.Damage), domain.MsgCombat, domain.ColorOrange)
		if kill, ok := applyDamage(actor, e, props.Damage, ctx.Log); ok {
			kills = append(kills, kill)
		}
	}
	return kills, nil
}

func useConfuse(ctx UseContext, props *domain.ItemComponent, pos domain.Position) error {
	check := ValidateTarget(ctx.Grid, ctx.Visible, ctx.Registry, pos)
	if !check.Valid {
		ctx.Log.Add(check.Message, domain.MsgInfo, domain.ColorYellow)
		return ErrNoEffect
	}
	if check.Target == nil || check.Target.AI == nil {
		ctx.Log.Add("В выбранной клетке нет цели.", domain.MsgInfo, domain.ColorYellow)
		return ErrNoEffect
	}

	check.Target.AI.Confuse(props.Turns)
	ctx.Log.Add(fmt.Sprintf("Глаза %s стекленеют, он начинает бесцельно бродить!", check.Target.Name), domain.MsgInfo, domain.ColorLightCyan)
	return nil
}

// applyDamage наносит урон без учёта защиты. Возвращает true, если цель погибла.
func applyDamage(source, target *domain.Entity, amount int, log *domain.MessageLog) (AttackResult, bool) {
	res := AttackResult{Damage: amount}
	if !target.Fighter.TakeDamage(amount) {
		return res, false
	}
	return resolveKill(source, target, res, log), true
}
