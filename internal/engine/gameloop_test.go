package engine

import (
	"errors"
	"math/rand"
	"testing"

	"crawler-server/internal/core/types"
	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
	"crawler-server/pkg/api"
	"crawler-server/pkg/dungeon"
)

var fireballScroll = dungeon.ItemTemplate{
	Name:             "свиток огненного шара",
	Symbol:           '#',
	Effect:           enums.ItemEffectFireball,
	Damage:           25,
	Radius:           1,
	Targeting:        true,
	TargetingMessage: "Выберите клетку.",
}

func intPtr(v int) *int { return &v }

func TestMove(t *testing.T) {
	t.Run("step", func(t *testing.T) {
		g := newTestGame(t)
		useArena(t, g, 2, 2)

		if err := g.Execute(command(domain.ActionMove, api.DirectionPayload{Dx: 1, Dy: 1})); err != nil {
			t.Fatalf("Execute(MOVE) error = %v", err)
		}
		if g.Player.Pos != (domain.Position{X: 3, Y: 3}) {
			t.Errorf("player at %v, want (3,3)", g.Player.Pos)
		}
		if g.Turn() != 1 || g.State() != enums.StatePlayerTurn {
			t.Errorf("turn %d state %v", g.Turn(), g.State())
		}
	})

	t.Run("wall costs no turn", func(t *testing.T) {
		g := newTestGame(t)
		useArena(t, g, 1, 1)
		before := g.Log.Total()

		err := g.Execute(command(domain.ActionMove, api.DirectionPayload{Dx: -1, Dy: 0}))
		if !errors.Is(err, ErrActionRejected) {
			t.Fatalf("Execute(MOVE into wall) error = %v, want ErrActionRejected", err)
		}
		if g.Player.Pos != (domain.Position{X: 1, Y: 1}) {
			t.Errorf("player moved to %v", g.Player.Pos)
		}
		if g.Turn() != 0 {
			t.Errorf("Turn() = %d, want 0", g.Turn())
		}
		if g.Log.Total() != before+1 {
			t.Errorf("rejection should log exactly one message")
		}
	})
}

func TestWait_EnemiesAct(t *testing.T) {
	g := newTestGame(t)
	useArena(t, g, 2, 2)
	orc := addMonster(t, g, dungeon.MonsterTemplate{Name: "орк", HP: 10, Power: 1, ActionRadius: 10}, 7, 2)

	if err := g.Execute(command(domain.ActionWait, nil)); err != nil {
		t.Fatalf("Execute(WAIT) error = %v", err)
	}
	if g.Turn() != 1 {
		t.Errorf("Turn() = %d, want 1", g.Turn())
	}
	if d := orc.DistanceTo(g.Player); d >= 5 {
		t.Errorf("orc at %v did not close in (distance %.1f)", orc.Pos, d)
	}
	if g.State() != enums.StatePlayerTurn {
		t.Errorf("State() = %v, want PLAYER_TURN", g.State())
	}
}

func TestPlayerDeath(t *testing.T) {
	g := newTestGame(t)
	useArena(t, g, 2, 2)
	addMonster(t, g, dungeon.MonsterTemplate{Name: "огр", HP: 50, Power: 500}, 3, 2)

	if err := g.Execute(command(domain.ActionWait, nil)); err != nil {
		t.Fatalf("Execute(WAIT) error = %v", err)
	}
	if g.State() != enums.StatePlayerDead {
		t.Fatalf("State() = %v, want PLAYER_DEAD", g.State())
	}
	if g.Player.Glyph.Char() != domain.SymbolCorpse {
		t.Errorf("player glyph = %q, want corpse", g.Player.Glyph.Char())
	}

	for _, action := range []domain.ActionType{domain.ActionWait, domain.ActionMove, domain.ActionShowInventory} {
		if err := g.Execute(command(action, api.DirectionPayload{Dx: 1})); !errors.Is(err, ErrWrongState) {
			t.Errorf("Execute(%s) after death error = %v, want ErrWrongState", action, err)
		}
	}
}

func TestInventoryMenus(t *testing.T) {
	g := newTestGame(t)
	useArena(t, g, 2, 2)

	if err := g.Execute(command(domain.ActionShowInventory, nil)); err != nil {
		t.Fatalf("Execute(SHOW_INVENTORY) error = %v", err)
	}
	if g.State() != enums.StateShowInventory {
		t.Fatalf("State() = %v, want SHOW_INVENTORY", g.State())
	}
	if err := g.Execute(command(domain.ActionMove, api.DirectionPayload{Dx: 1})); !errors.Is(err, ErrWrongState) {
		t.Errorf("MOVE in menu error = %v, want ErrWrongState", err)
	}
	if err := g.Execute(command(domain.ActionCancel, nil)); err != nil {
		t.Fatalf("Execute(CANCEL) error = %v", err)
	}
	if g.State() != enums.StatePlayerTurn || g.Turn() != 0 {
		t.Errorf("after CANCEL: state %v turn %d", g.State(), g.Turn())
	}
}

func TestDropAndPickup(t *testing.T) {
	g := newTestGame(t)
	useArena(t, g, 2, 2)

	if err := g.Execute(command(domain.ActionDropInventory, nil)); err != nil {
		t.Fatalf("Execute(DROP_INVENTORY) error = %v", err)
	}
	if err := g.Execute(command(domain.ActionDrop, api.IndexPayload{Index: 0})); err != nil {
		t.Fatalf("Execute(DROP) error = %v", err)
	}
	if len(g.Player.Inventory.Items) != 0 {
		t.Fatalf("inventory size = %d, want 0", len(g.Player.Inventory.Items))
	}
	if g.Player.Power() != 2 {
		t.Errorf("Power() = %d after dropping the dagger, want 2", g.Player.Power())
	}
	if g.State() != enums.StatePlayerTurn || g.Turn() != 1 {
		t.Errorf("after DROP: state %v turn %d", g.State(), g.Turn())
	}

	if err := g.Execute(command(domain.ActionPickup, nil)); err != nil {
		t.Fatalf("Execute(PICKUP) error = %v", err)
	}
	if len(g.Player.Inventory.Items) != 1 {
		t.Errorf("inventory size = %d, want 1", len(g.Player.Inventory.Items))
	}
	if g.Turn() != 2 {
		t.Errorf("Turn() = %d, want 2", g.Turn())
	}

	err := g.Execute(command(domain.ActionPickup, nil))
	if !errors.Is(err, ErrActionRejected) {
		t.Errorf("PICKUP on empty floor error = %v, want ErrActionRejected", err)
	}
}

func TestTargetingFlow(t *testing.T) {
	t.Run("fire", func(t *testing.T) {
		g := newTestGame(t)
		useArena(t, g, 2, 2)
		giveItem(t, g, fireballScroll)
		orc := addMonster(t, g, dungeon.MonsterTemplate{Name: "орк", HP: 10, XP: 35}, 8, 5)

		if err := g.Execute(command(domain.ActionUse, api.IndexPayload{Index: 1})); err != nil {
			t.Fatalf("Execute(USE) error = %v", err)
		}
		if g.State() != enums.StateTargeting {
			t.Fatalf("State() = %v, want TARGETING", g.State())
		}
		if f := g.Frame(); f.Targeting != "Выберите клетку." {
			t.Errorf("Frame().Targeting = %q", f.Targeting)
		}
		if g.Turn() != 0 || len(g.Player.Inventory.Items) != 2 {
			t.Errorf("targeting should not spend the turn or the item")
		}

		if err := g.Execute(command(domain.ActionTarget, api.TargetPayload{X: intPtr(8), Y: intPtr(5)})); err != nil {
			t.Fatalf("Execute(TARGET) error = %v", err)
		}
		if orc.Fighter != nil {
			t.Error("orc survived the fireball")
		}
		if len(g.Player.Inventory.Items) != 1 {
			t.Errorf("scroll was not consumed")
		}
		if g.Player.Level.CurrentXP != 35 {
			t.Errorf("player XP = %d, want 35", g.Player.Level.CurrentXP)
		}
		if g.State() != enums.StatePlayerTurn || g.Turn() != 1 {
			t.Errorf("after TARGET: state %v turn %d", g.State(), g.Turn())
		}
		if g.Frame().Targeting != "" {
			t.Error("targeting prompt not cleared")
		}
	})

	t.Run("bad target keeps targeting", func(t *testing.T) {
		g := newTestGame(t)
		useArena(t, g, 2, 2)
		giveItem(t, g, fireballScroll)

		if err := g.Execute(command(domain.ActionUse, api.IndexPayload{Index: 1})); err != nil {
			t.Fatalf("Execute(USE) error = %v", err)
		}
		err := g.Execute(command(domain.ActionTarget, api.TargetPayload{X: intPtr(50), Y: intPtr(50)}))
		if !errors.Is(err, ErrActionRejected) {
			t.Fatalf("TARGET off map error = %v, want ErrActionRejected", err)
		}
		if g.State() != enums.StateTargeting {
			t.Errorf("State() = %v, want TARGETING", g.State())
		}
	})

	t.Run("cancel", func(t *testing.T) {
		g := newTestGame(t)
		useArena(t, g, 2, 2)
		giveItem(t, g, fireballScroll)

		if err := g.Execute(command(domain.ActionUse, api.IndexPayload{Index: 1})); err != nil {
			t.Fatalf("Execute(USE) error = %v", err)
		}
		if err := g.Execute(command(domain.ActionCancel, nil)); err != nil {
			t.Fatalf("Execute(CANCEL) error = %v", err)
		}
		if g.State() != enums.StatePlayerTurn || g.Turn() != 0 {
			t.Errorf("after CANCEL: state %v turn %d", g.State(), g.Turn())
		}
		if len(g.Player.Inventory.Items) != 2 {
			t.Error("cancelled scroll was consumed")
		}
		if g.pendingItem != 0 || g.targeting != "" {
			t.Error("targeting sub-state not cleared")
		}
	})
}

func TestLevelUp_DefersEnemies(t *testing.T) {
	g := newTestGame(t)
	useArena(t, g, 2, 2)
	g.Player.Level.CurrentXP = 340

	addMonster(t, g, dungeon.MonsterTemplate{Name: "крыса", HP: 1, XP: 35}, 3, 2)
	chaser := addMonster(t, g, dungeon.MonsterTemplate{Name: "орк", HP: 10, Power: 1, ActionRadius: 10}, 7, 4)
	start := chaser.Pos

	if err := g.Execute(command(domain.ActionMove, api.DirectionPayload{Dx: 1})); err != nil {
		t.Fatalf("Execute(MOVE/attack) error = %v", err)
	}
	if g.State() != enums.StateLevelUp {
		t.Fatalf("State() = %v, want LEVEL_UP", g.State())
	}
	if g.Player.Level.CurrentLevel != 2 {
		t.Errorf("level = %d, want 2", g.Player.Level.CurrentLevel)
	}
	if chaser.Pos != start {
		t.Error("enemies acted before the level-up choice")
	}
	if err := g.Execute(command(domain.ActionMove, api.DirectionPayload{Dx: 1})); !errors.Is(err, ErrWrongState) {
		t.Errorf("MOVE during LEVEL_UP error = %v, want ErrWrongState", err)
	}

	if err := g.Execute(command(domain.ActionLevelUp, api.StatPayload{Stat: api.StatHP})); err != nil {
		t.Fatalf("Execute(LEVEL_UP) error = %v", err)
	}
	if g.Player.Fighter.MaxHP != 120 || g.Player.Fighter.HP != 120 {
		t.Errorf("hp = %d/%d, want 120/120", g.Player.Fighter.HP, g.Player.Fighter.MaxHP)
	}
	if g.State() != enums.StatePlayerTurn {
		t.Errorf("State() = %v, want PLAYER_TURN", g.State())
	}
	if chaser.Pos == start {
		t.Error("deferred enemy phase did not run")
	}
	if g.Turn() != 1 {
		t.Errorf("Turn() = %d, want 1", g.Turn())
	}
}

func TestDescend(t *testing.T) {
	t.Run("on stairs", func(t *testing.T) {
		g := newTestGame(t)
		useArena(t, g, 2, 2)
		if _, err := g.Map.Registry.Insert(dungeon.NewStairs(g.Player.Pos, 2)); err != nil {
			t.Fatal(err)
		}
		g.Player.Fighter.HP = 10

		if err := g.Execute(command(domain.ActionDescend, nil)); err != nil {
			t.Fatalf("Execute(DESCEND) error = %v", err)
		}
		if g.Map.Depth != 2 {
			t.Errorf("Depth = %d, want 2", g.Map.Depth)
		}
		if g.Player.Fighter.HP != 60 {
			t.Errorf("HP = %d, want 60 (10 + half of 100)", g.Player.Fighter.HP)
		}
		if got, ok := g.Map.Registry.Get(g.Player.ID); !ok || got != g.Player {
			t.Error("player is not registered on the new level")
		}
		if g.Player.ID.Depth() != 2 {
			t.Errorf("player ID depth = %d, want 2", g.Player.ID.Depth())
		}
		if len(g.Player.Inventory.Items) != 1 {
			t.Error("inventory lost on descent")
		}
		if g.State() != enums.StatePlayerTurn || g.Turn() != 1 {
			t.Errorf("after DESCEND: state %v turn %d", g.State(), g.Turn())
		}
	})

	t.Run("no stairs", func(t *testing.T) {
		g := newTestGame(t)
		useArena(t, g, 2, 2)

		err := g.Execute(command(domain.ActionDescend, nil))
		if !errors.Is(err, ErrActionRejected) {
			t.Fatalf("DESCEND off stairs error = %v, want ErrActionRejected", err)
		}
		if g.Map.Depth != 1 || g.Turn() != 0 {
			t.Errorf("depth %d turn %d", g.Map.Depth, g.Turn())
		}
	})

	t.Run("deepest level", func(t *testing.T) {
		g := newTestGame(t)
		g.Map.Depth = types.MaxDepth
		useArena(t, g, 2, 2)
		if _, err := g.Map.Registry.Insert(dungeon.NewStairs(g.Player.Pos, types.MaxDepth+1)); err != nil {
			t.Fatal(err)
		}

		err := g.Execute(command(domain.ActionDescend, nil))
		if !errors.Is(err, ErrActionRejected) {
			t.Fatalf("DESCEND at depth %d error = %v, want ErrActionRejected", types.MaxDepth, err)
		}
		if g.Map.Depth != types.MaxDepth || g.Turn() != 0 {
			t.Errorf("depth %d turn %d", g.Map.Depth, g.Turn())
		}
		if g.Player.ID.Depth() != types.MaxDepth {
			t.Errorf("player ID depth = %d, want %d", g.Player.ID.Depth(), types.MaxDepth)
		}
	})
}

func TestGameMap_BuildDepthRange(t *testing.T) {
	tests := []struct {
		name    string
		depth   int
		wantErr error
	}{
		{"zero", 0, ErrDepthOutOfRange},
		{"negative", -3, ErrDepthOutOfRange},
		{"past id bits", types.MaxDepth + 1, ErrDepthOutOfRange},
		{"deepest", types.MaxDepth, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t)
			err := g.Map.Build(rand.New(rand.NewSource(3)), tt.depth, g.Player)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build(%d) error = %v, want %v", tt.depth, err, tt.wantErr)
			}
			if tt.wantErr == nil && g.Player.ID.Depth() != uint8(tt.depth) {
				t.Errorf("player ID depth = %d, want %d", g.Player.ID.Depth(), tt.depth)
			}
		})
	}
}

func TestFrame(t *testing.T) {
	g := newTestGame(t)
	useArena(t, g, 2, 2)
	addMonster(t, g, dungeon.MonsterTemplate{Name: "орк", HP: 10}, 6, 3)
	if _, err := g.Map.Registry.Insert(fireballScroll.SpawnItem(domain.Position{X: 5, Y: 5})); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Map.Registry.Insert(dungeon.NewStairs(domain.Position{X: 9, Y: 5}, 2)); err != nil {
		t.Fatal(err)
	}

	f := g.Frame()

	if f.State != "PLAYER_TURN" || f.Depth != 1 {
		t.Errorf("frame header = %s depth %d", f.State, f.Depth)
	}
	if len(f.Entities) != 4 {
		t.Fatalf("entities = %d, want 4", len(f.Entities))
	}
	for i := 1; i < len(f.Entities); i++ {
		if f.Entities[i-1].Render.Order > f.Entities[i].Render.Order {
			t.Errorf("entities not sorted by render order at %d", i)
		}
	}
	if f.Entities[0].Type != enums.EntityTypeItem.String() {
		t.Errorf("first entity = %s, want the item", f.Entities[0].Type)
	}

	for _, tile := range f.Map {
		if !tile.IsExplored {
			t.Fatalf("unexplored tile (%d,%d) in frame", tile.X, tile.Y)
		}
	}

	if f.Player == nil || f.Player.Power != 4 || len(f.Player.Inventory) != 1 {
		t.Fatalf("player view = %+v", f.Player)
	}
	if !f.Player.Inventory[0].Equipped || f.Player.Inventory[0].Slot != "MAIN_HAND" {
		t.Errorf("dagger view = %+v", f.Player.Inventory[0])
	}

	if len(f.Messages) == 0 {
		t.Error("first frame should carry the welcome message")
	}
	if again := g.Frame(); len(again.Messages) != 0 {
		t.Errorf("second frame repeated %d messages", len(again.Messages))
	}
}
