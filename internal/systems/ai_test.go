package systems

import (
	"strings"
	"testing"

	"crawler-server/internal/core/types/enums"
	"crawler-server/internal/domain"

	"github.com/zyedidia/generic/mapset"
)

func newTurnContext(g *domain.Grid, reg *domain.Registry, target *domain.Entity) TurnContext {
	return TurnContext{
		Grid:     g,
		Registry: reg,
		Target:   target,
		Visible:  ComputeFOV(g, target.Pos, 8),
		Rng:      newTestRng(),
		Log:      domain.NewMessageLog(20),
	}
}

func TestTakeTurn_Aggressive(t *testing.T) {
	t.Run("Chases visible target", func(t *testing.T) {
		g := createTestGrid(10, 10)
		reg := domain.NewRegistry(1, 10, 10)
		player := spawnPlayer(t, reg, 5, 5)
		orc := spawnFighter(t, reg, "orc", 1, 5, 10, 0, 3)

		res := TakeTurn(newTurnContext(g, reg, player), orc)
		if !res.Moved || orc.Pos != (domain.Position{X: 2, Y: 5}) {
			t.Errorf("orc at %+v, moved=%v; want (2,5)", orc.Pos, res.Moved)
		}
	})

	t.Run("Attacks adjacent target", func(t *testing.T) {
		g := createTestGrid(10, 10)
		reg := domain.NewRegistry(1, 10, 10)
		player := spawnPlayer(t, reg, 5, 5)
		orc := spawnFighter(t, reg, "orc", 4, 4, 10, 0, 3)
		ctx := newTurnContext(g, reg, player)

		res := TakeTurn(ctx, orc)
		if !res.Attacked || res.Attack.Damage != 2 {
			t.Errorf("result = %+v, want attack for 2", res)
		}
		if player.Fighter.HP != 28 {
			t.Errorf("player HP = %d, want 28", player.Fighter.HP)
		}
	})

	t.Run("Idle outside vision", func(t *testing.T) {
		g := createTestGrid(10, 10)
		for y := 0; y < 10; y++ {
			wall(g, 4, y)
		}
		reg := domain.NewRegistry(1, 10, 10)
		player := spawnPlayer(t, reg, 7, 5)
		orc := spawnFighter(t, reg, "orc", 1, 5, 10, 0, 3)

		res := TakeTurn(newTurnContext(g, reg, player), orc)
		if res.Moved || res.Attacked {
			t.Errorf("unseen monster must idle, got %+v", res)
		}
	})

	t.Run("Acts outside vision within radius", func(t *testing.T) {
		g := createTestGrid(10, 10)
		for y := 0; y < 9; y++ {
			wall(g, 4, y)
		}
		reg := domain.NewRegistry(1, 10, 10)
		player := spawnPlayer(t, reg, 7, 5)
		orc := spawnFighter(t, reg, "orc", 1, 5, 10, 0, 3)
		orc.AI.ActsOutsideVision = true
		orc.AI.ActionRadius = 10

		ctx := newTurnContext(g, reg, player)
		if InFOV(g, ctx.Visible, orc.Pos) {
			t.Fatal("test setup: orc must be outside the FOV")
		}
		res := TakeTurn(ctx, orc)
		if !res.Moved {
			t.Error("monster acting outside vision must move towards the target")
		}
	})

	t.Run("Does not attack dead target", func(t *testing.T) {
		g := createTestGrid(10, 10)
		reg := domain.NewRegistry(1, 10, 10)
		player := spawnPlayer(t, reg, 5, 5)
		player.Fighter.HP = 0
		orc := spawnFighter(t, reg, "orc", 4, 5, 10, 0, 3)

		res := TakeTurn(newTurnContext(g, reg, player), orc)
		if res.Attacked {
			t.Error("monster must not attack a dead target")
		}
	})
}

func TestTakeTurn_ConfusionLifecycle(t *testing.T) {
	g := createTestGrid(10, 10)
	reg := domain.NewRegistry(1, 10, 10)
	player := spawnPlayer(t, reg, 8, 8)
	orc := spawnFighter(t, reg, "orc", 4, 4, 10, 0, 3)
	orc.AI.ActsOutsideVision = true
	orc.AI.ActionRadius = 7
	original := orc.AI.Behavior

	orc.AI.Confuse(3)
	ctx := newTurnContext(g, reg, player)

	for turn := 1; turn <= 3; turn++ {
		if !orc.AI.IsConfused() {
			t.Fatalf("turn %d: monster must still be confused", turn)
		}
		res := TakeTurn(ctx, orc)
		if res.Attacked {
			t.Fatalf("turn %d: confused monster must not attack", turn)
		}
	}

	if orc.AI.IsConfused() {
		t.Fatal("confusion must wear off after 3 turns")
	}
	if orc.AI.Behavior.Kind != original.Kind || orc.AI.Behavior.Previous != nil {
		t.Errorf("behavior = %+v, want restored %+v", orc.AI.Behavior, original)
	}
	if !orc.AI.ActsOutsideVision || orc.AI.ActionRadius != 7 {
		t.Error("AI parameters must survive confusion")
	}

	msgs := ctx.Log.Messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "больше не в замешательстве") {
		t.Errorf("messages = %+v, want a single recovery message", msgs)
	}
}

func TestTakeTurn_ConfusedStaysOnMap(t *testing.T) {
	// Клетка 1x1, окружённая стенами: любое направление заблокировано
	g := domain.NewGrid(3, 3)
	_ = g.Carve(1, 1)
	reg := domain.NewRegistry(1, 3, 3)
	orc := spawnFighter(t, reg, "orc", 1, 1, 10, 0, 3)
	orc.AI.Confuse(5)
	target := &domain.Entity{Name: "Игрок", Pos: domain.Position{X: 0, Y: 0}, Fighter: &domain.FighterComponent{HP: 1}}

	ctx := TurnContext{Grid: g, Registry: reg, Target: target, Visible: mapset.New[int](), Rng: newTestRng(), Log: domain.NewMessageLog(5)}
	for i := 0; i < 5; i++ {
		if res := TakeTurn(ctx, orc); res.Moved {
			t.Fatal("walled-in monster must not move")
		}
	}
	if orc.Pos != (domain.Position{X: 1, Y: 1}) {
		t.Errorf("orc moved to %+v", orc.Pos)
	}
	if orc.AI.Behavior.Kind != enums.AIKindAggressive {
		t.Error("behavior must be restored after 5 turns")
	}
}

func TestTakeTurn_IgnoresNonActors(t *testing.T) {
	g := createTestGrid(5, 5)
	reg := domain.NewRegistry(1, 5, 5)
	player := spawnPlayer(t, reg, 2, 2)
	corpse := spawnFighter(t, reg, "orc", 1, 1, 1, 0, 1)
	Kill(corpse, domain.NewMessageLog(5))

	if res := TakeTurn(newTurnContext(g, reg, player), corpse); res.Moved || res.Attacked {
		t.Error("remains must not act")
	}
}
