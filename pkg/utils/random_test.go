package utils

import (
	"math/rand"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if len(a) != 16 {
		t.Errorf("GenerateID() len = %d, want 16", len(a))
	}
	if a == b {
		t.Error("two IDs must differ")
	}
}

func TestRandRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		v := RandRange(rng, 3, 6)
		if v < 3 || v > 6 {
			t.Fatalf("RandRange(3, 6) = %d", v)
		}
	}
	if v := RandRange(rng, 5, 5); v != 5 {
		t.Errorf("RandRange(5, 5) = %d", v)
	}
	if v := RandRange(rng, 5, 2); v != 5 {
		t.Errorf("RandRange(5, 2) = %d, want min", v)
	}
}

func TestStringToSeed(t *testing.T) {
	a := StringToSeed("session-a")
	if a != StringToSeed("session-a") {
		t.Error("StringToSeed is not deterministic")
	}
	if a == StringToSeed("session-b") {
		t.Error("different strings gave the same seed")
	}
}
