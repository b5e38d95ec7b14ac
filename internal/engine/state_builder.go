package engine

import (
	"fmt"
	"sort"

	"crawler-server/internal/domain"
	"crawler-server/internal/systems"
	"crawler-server/pkg/api"
)

// Frame собирает снимок для отрисовки: исследованные тайлы, видимые сущности,
// HUD игрока и сообщения журнала с прошлого кадра.
func (g *Game) Frame() api.Frame {
	grid := g.Map.Grid

	frame := api.Frame{
		Type:      "FRAME",
		Turn:      g.turn,
		State:     g.state.String(),
		Depth:     g.Map.Depth,
		Grid:      api.GridMeta{Width: grid.Width, Height: grid.Height},
		Targeting: g.targeting,
	}

	// 1. Карта (туман войны: только исследованное)
	for idx := range grid.Tiles {
		x, y := grid.Coords(idx)
		if !grid.IsExplored(x, y) {
			continue
		}
		frame.Map = append(frame.Map, api.TileView{
			X: x, Y: y,
			IsWall:     grid.IsBlocked(x, y),
			IsVisible:  g.visible.Has(idx),
			IsExplored: true,
		})
	}

	// 2. Сущности в поле зрения, снизу вверх по порядку отрисовки
	var visible []*domain.Entity
	for _, e := range g.Map.Registry.Entities() {
		if e == g.Player || systems.InFOV(grid, g.visible, e.Pos) {
			visible = append(visible, e)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].RenderOrder < visible[j].RenderOrder
	})
	for _, e := range visible {
		frame.Entities = append(frame.Entities, toEntityView(e))
	}

	// 3. HUD
	frame.Player = g.playerView()

	// 4. Новые сообщения
	for _, m := range g.Log.Since(g.frameSeq) {
		frame.Messages = append(frame.Messages, api.MessageView{
			Seq:   m.Seq,
			Text:  m.Text,
			Type:  string(m.Type),
			Color: fmt.Sprintf("#%06X", m.Color),
		})
	}
	g.frameSeq = g.Log.Total()

	return frame
}

// toEntityView конвертирует доменную сущность в DTO для отправки клиенту.
func toEntityView(e *domain.Entity) api.EntityView {
	view := api.EntityView{
		ID:   e.ID,
		Type: e.Type.String(),
		Name: e.Name,
	}
	view.Pos.X = e.Pos.X
	view.Pos.Y = e.Pos.Y
	view.Render.Symbol = string(e.Glyph.Char())
	view.Render.Color = e.Glyph.HexColor()
	view.Render.Order = int(e.RenderOrder)

	if e.Fighter != nil {
		view.Stats = &api.StatsView{HP: e.Fighter.HP, MaxHP: e.Fighter.MaxHP}
	}
	return view
}

func (g *Game) playerView() *api.PlayerView {
	p := g.Player
	view := &api.PlayerView{
		ID:        p.ID,
		HP:        p.Fighter.HP,
		MaxHP:     p.Fighter.MaxHP,
		Power:     p.Power(),
		Defense:   p.Defense(),
		Gold:      p.Fighter.Gold,
		Level:     p.Level.CurrentLevel,
		XP:        p.Level.CurrentXP,
		XPToNext:  p.Level.ExperienceToNextLevel(),
		Inventory: make([]api.ItemView, 0, len(p.Inventory.Items)),
		Capacity:  p.Inventory.Capacity,
	}

	for i, item := range p.Inventory.Items {
		iv := api.ItemView{
			Index:    i,
			ID:       item.ID,
			Name:     item.Name,
			Symbol:   string(item.Glyph.Char()),
			Color:    item.Glyph.HexColor(),
			Equipped: p.Equipment.IsEquipped(item.ID),
		}
		if item.Equippable != nil {
			iv.Slot = item.Equippable.Slot.String()
		}
		view.Inventory = append(view.Inventory, iv)
	}
	return view
}
