package systems

import (
	"testing"

	"crawler-server/internal/domain"
)

func TestCalculateMove(t *testing.T) {
	g := createTestGrid(10, 10)
	wall(g, 5, 4)
	reg := domain.NewRegistry(1, 10, 10)
	mover := spawnFighter(t, reg, "orc", 4, 4, 10, 0, 1)
	blocker := spawnFighter(t, reg, "troll", 4, 5, 10, 0, 1)

	tests := []struct {
		name      string
		dx, dy    int
		wantMoved bool
		wantWall  bool
		wantBlock *domain.Entity
	}{
		{"Free cell", -1, 0, true, false, nil},
		{"Wall", 1, 0, false, true, nil},
		{"Entity", 0, 1, false, false, blocker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateMove(mover, tt.dx, tt.dy, g, reg)
			if res.HasMoved != tt.wantMoved || res.IsWall != tt.wantWall || res.BlockedBy != tt.wantBlock {
				t.Errorf("CalculateMove(%d,%d) = %+v", tt.dx, tt.dy, res)
			}
		})
	}

	if mover.Pos != (domain.Position{X: 4, Y: 4}) {
		t.Error("CalculateMove must not change the position")
	}
}

func TestCalculateMove_MapEdge(t *testing.T) {
	g := createTestGrid(3, 3)
	reg := domain.NewRegistry(1, 3, 3)
	mover := spawnFighter(t, reg, "orc", 0, 0, 10, 0, 1)

	if res := CalculateMove(mover, -1, 0, g, reg); !res.IsWall {
		t.Errorf("moving off the map must hit a wall, got %+v", res)
	}
}

func TestTryMove_UpdatesRegistry(t *testing.T) {
	g := createTestGrid(5, 5)
	reg := domain.NewRegistry(1, 5, 5)
	mover := spawnFighter(t, reg, "orc", 1, 1, 10, 0, 1)

	if !TryMove(mover, 1, 1, g, reg) {
		t.Fatal("TryMove() must succeed on an open grid")
	}
	if e, ok := reg.BlockingAt(2, 2); !ok || e != mover {
		t.Error("registry must see the mover at the new cell")
	}
}
