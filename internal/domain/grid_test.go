package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewGrid_FullyBlocked(t *testing.T) {
	g := NewGrid(5, 4)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.IsBlocked(x, y) || !g.BlocksSight(x, y) {
				t.Fatalf("tile (%d,%d) must be a wall", x, y)
			}
		}
	}
}

func TestGrid_Carve(t *testing.T) {
	g := NewGrid(5, 5)
	if err := g.Carve(2, 2); err != nil {
		t.Fatalf("Carve() error = %v", err)
	}
	if g.IsBlocked(2, 2) || g.BlocksSight(2, 2) {
		t.Error("carved tile must clear both flags")
	}
	if err := g.Carve(5, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Carve() out of bounds error = %v, want ErrOutOfBounds", err)
	}
}

func TestGrid_OutOfBoundsIsWall(t *testing.T) {
	g := NewGrid(3, 3)
	_ = g.Carve(0, 0)
	if !g.IsBlocked(-1, 0) || !g.BlocksSight(0, -1) {
		t.Error("coordinates outside the grid must be blocked")
	}
	if _, err := g.At(3, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("At() error = %v, want ErrOutOfBounds", err)
	}
}

func TestNewTile_SightOverride(t *testing.T) {
	glass := NewTile(true, false)
	if !glass.BlocksMovement || glass.BlocksSight {
		t.Errorf("NewTile(true, false) = %+v", glass)
	}
	wall := NewTile(true)
	if !wall.BlocksSight {
		t.Error("sight must default to the movement flag")
	}
}

func TestRoom_Intersects(t *testing.T) {
	a := NewRoom(0, 0, 5, 5)
	tests := []struct {
		name  string
		other Room
		want  bool
	}{
		{"Overlap", NewRoom(2, 2, 5, 5), true},
		{"Touching walls", NewRoom(5, 0, 4, 4), true},
		{"Separated", NewRoom(6, 0, 4, 4), false},
		{"Below", NewRoom(0, 6, 4, 4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Intersects(a); got != tt.want {
				t.Errorf("Intersects() is not symmetric")
			}
		})
	}
}

func TestRoom_CenterAndRandomPoint(t *testing.T) {
	r := NewRoom(10, 4, 7, 6)
	if c := r.Center(); c != (Position{X: 13, Y: 7}) {
		t.Errorf("Center() = %+v", c)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		p := r.RandomPoint(rng)
		if !r.ContainsInterior(p) {
			t.Fatalf("RandomPoint() = %+v is not inside %+v", p, r)
		}
	}
}
