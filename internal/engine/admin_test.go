package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"
	"crawler-server/pkg/dungeon"
)

func newAdminGame(t *testing.T) *Game {
	t.Helper()
	cfg := testConfig(7)
	cfg.Admin = true

	tables := emptyTables()
	// Без веса: в генерации не участвует, только для SPAWN
	tables.Monsters["orc"] = dungeon.MonsterTemplate{Name: "орк", Symbol: 'o', HP: 10, Power: 3}

	g, err := NewGame(cfg, tables)
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	useArena(t, g, 2, 2)
	return g
}

func TestExecuteAdmin_Disabled(t *testing.T) {
	g := newTestGame(t)
	if err := g.ExecuteAdmin("HEAL", nil); !errors.Is(err, ErrAdminDisabled) {
		t.Errorf("ExecuteAdmin() error = %v, want ErrAdminDisabled", err)
	}
}

func TestExecuteAdmin(t *testing.T) {
	t.Run("unknown", func(t *testing.T) {
		g := newAdminGame(t)
		if err := g.ExecuteAdmin("fly", nil); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("ExecuteAdmin() error = %v, want ErrUnknownCommand", err)
		}
	})

	t.Run("heal", func(t *testing.T) {
		g := newAdminGame(t)
		g.Player.Fighter.HP = 5
		if err := g.ExecuteAdmin("heal", nil); err != nil {
			t.Fatalf("ExecuteAdmin() error = %v", err)
		}
		if g.Player.Fighter.HP != g.Player.Fighter.MaxHP {
			t.Errorf("HP = %d, want full", g.Player.Fighter.HP)
		}
		if g.Turn() != 0 {
			t.Error("admin command spent a turn")
		}
	})

	t.Run("teleport", func(t *testing.T) {
		g := newAdminGame(t)
		if err := g.ExecuteAdmin("TELEPORT", json.RawMessage(`{"x":8,"y":5}`)); err != nil {
			t.Fatalf("ExecuteAdmin() error = %v", err)
		}
		if g.Player.Pos != (domain.Position{X: 8, Y: 5}) {
			t.Errorf("player at %v, want (8,5)", g.Player.Pos)
		}
		if !g.Visible().Has(g.Map.Grid.Index(8, 5)) {
			t.Error("FOV not recomputed after teleport")
		}

		err := g.ExecuteAdmin("TELEPORT", json.RawMessage(`{"x":0,"y":0}`))
		if !errors.Is(err, ErrActionRejected) {
			t.Errorf("teleport into wall error = %v, want ErrActionRejected", err)
		}
	})

	t.Run("spawn and kill", func(t *testing.T) {
		g := newAdminGame(t)
		if err := g.ExecuteAdmin("SPAWN", json.RawMessage(`{"template":"orc"}`)); err != nil {
			t.Fatalf("ExecuteAdmin(SPAWN) error = %v", err)
		}

		var orc *domain.Entity
		for _, e := range g.Map.Registry.Entities() {
			if e.Type == enums.EntityTypeMonster {
				orc = e
			}
		}
		if orc == nil {
			t.Fatal("orc was not spawned")
		}
		if !orc.Pos.IsAdjacent(g.Player.Pos) {
			t.Errorf("orc at %v is not next to the player", orc.Pos)
		}

		payload, _ := json.Marshal(map[string]any{"targetId": orc.ID})
		if err := g.ExecuteAdmin("KILL", payload); err != nil {
			t.Fatalf("ExecuteAdmin(KILL) error = %v", err)
		}
		if orc.Fighter != nil || orc.Blocks {
			t.Error("orc was not turned into remains")
		}
		if g.Player.Level.CurrentXP != 0 {
			t.Error("admin kill must not grant XP")
		}

		err := g.ExecuteAdmin("SPAWN", json.RawMessage(`{"template":"dragon"}`))
		if !errors.Is(err, ErrActionRejected) {
			t.Errorf("unknown template error = %v, want ErrActionRejected", err)
		}
	})

	t.Run("reveal", func(t *testing.T) {
		g := newAdminGame(t)
		if err := g.ExecuteAdmin("REVEAL", nil); err != nil {
			t.Fatalf("ExecuteAdmin() error = %v", err)
		}
		if !g.Map.Grid.IsExplored(0, 0) || !g.Map.Grid.IsExplored(11, 7) {
			t.Error("map corners not explored")
		}
	})

	t.Run("kill self", func(t *testing.T) {
		g := newAdminGame(t)
		payload, _ := json.Marshal(map[string]any{"targetId": g.Player.ID})
		if err := g.ExecuteAdmin("KILL", payload); err != nil {
			t.Fatalf("ExecuteAdmin() error = %v", err)
		}
		if g.State() != enums.StatePlayerDead {
			t.Errorf("State() = %v, want PLAYER_DEAD", g.State())
		}
	})
}
