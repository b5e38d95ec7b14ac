package dungeon

import (
	"errors"
	"math/rand"
	"testing"
)

func TestWeightCurve_At(t *testing.T) {
	curve := WeightCurve{{Depth: 1, Weight: 25}, {Depth: 3, Weight: 45}, {Depth: 5, Weight: 65}}

	tests := []struct {
		depth int
		want  int
	}{
		{0, 0},
		{1, 25},
		{2, 25},
		{3, 45},
		{5, 65},
		{100, 65},
	}
	for _, tt := range tests {
		if got := curve.At(tt.depth); got != tt.want {
			t.Errorf("At(%d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestWeightCurve_Unsorted(t *testing.T) {
	curve := WeightCurve{{Depth: 5, Weight: 65}, {Depth: 1, Weight: 25}}
	if got := curve.At(3); got != 25 {
		t.Errorf("At(3) = %d, want 25", got)
	}
}

func TestSpawnTable_PickEmpty(t *testing.T) {
	table := SpawnTable{
		"troll": {{Depth: 3, Weight: 15}},
		"ghost": Flat(0),
	}
	_, err := table.Pick(rand.New(rand.NewSource(1)), 1)
	if !errors.Is(err, ErrEmptySpawnTable) {
		t.Errorf("Pick() error = %v, want ErrEmptySpawnTable", err)
	}
}

func TestSpawnTable_PickOnlyPositive(t *testing.T) {
	table := SpawnTable{
		"orc":   Flat(80),
		"troll": {{Depth: 3, Weight: 15}},
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		key, err := table.Pick(rng, 2)
		if err != nil {
			t.Fatalf("Pick() error = %v", err)
		}
		if key != "orc" {
			t.Fatalf("Pick() = %s, troll has zero weight at depth 2", key)
		}
	}
}

func TestSpawnTable_PickProportional(t *testing.T) {
	table := SpawnTable{"a": Flat(1), "b": Flat(3)}
	rng := rand.New(rand.NewSource(3))

	counts := map[string]int{}
	const n = 4000
	for i := 0; i < n; i++ {
		key, _ := table.Pick(rng, 1)
		counts[key]++
	}
	// Ожидаем ~25% / ~75%
	if counts["a"] < n/5 || counts["a"] > n*3/10 {
		t.Errorf("distribution skewed: %v", counts)
	}
}

func TestSpawnTable_PickDeterministic(t *testing.T) {
	table := SpawnTable{"a": Flat(10), "b": Flat(10), "c": Flat(10)}
	first := make([]string, 20)
	second := make([]string, 20)

	rng := rand.New(rand.NewSource(9))
	for i := range first {
		first[i], _ = table.Pick(rng, 1)
	}
	rng = rand.New(rand.NewSource(9))
	for i := range second {
		second[i], _ = table.Pick(rng, 1)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}
