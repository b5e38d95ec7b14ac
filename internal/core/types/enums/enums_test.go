package enums

import "testing"

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		in   string
		want EntityType
	}{
		{"player", EntityTypePlayer},
		{"MONSTER", EntityTypeMonster},
		{"Stairs", EntityTypeStairs},
		{"dragon", EntityTypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseEntityType(tt.in); got != tt.want {
				t.Errorf("ParseEntityType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderOrder_Sorted(t *testing.T) {
	if !(RenderOrderCorpse < RenderOrderItem && RenderOrderItem < RenderOrderActor && RenderOrderActor < RenderOrderStairs) {
		t.Fatal("render order must be corpse < item < actor < stairs")
	}
}

func TestParseAIKind(t *testing.T) {
	tests := []struct {
		in     string
		want   AIKind
		wantOK bool
	}{
		{"", AIKindAggressive, true},
		{"basic", AIKindAggressive, true},
		{"confused", AIKindConfused, true},
		{"smart", AIKindNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAIKind(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseAIKind(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseItemEffectAndSlot(t *testing.T) {
	if e, ok := ParseItemEffect("fireball"); !ok || e != ItemEffectFireball {
		t.Errorf("ParseItemEffect(fireball) = %v,%v", e, ok)
	}
	if _, ok := ParseItemEffect("teleport"); ok {
		t.Error("unknown effect must not parse")
	}
	if s, ok := ParseEquipmentSlot("off_hand"); !ok || s != SlotOffHand {
		t.Errorf("ParseEquipmentSlot(off_hand) = %v,%v", s, ok)
	}
	if SlotMainHand.String() != "MAIN_HAND" {
		t.Errorf("String() = %s", SlotMainHand)
	}
}

func TestGameState(t *testing.T) {
	menus := []GameState{StateTargeting, StateShowInventory, StateDropInventory, StateLevelUp}
	for _, s := range menus {
		if !s.IsMenu() {
			t.Errorf("%v must be a menu state", s)
		}
	}
	for _, s := range []GameState{StatePlayerTurn, StateEnemyTurn, StatePlayerDead} {
		if s.IsMenu() {
			t.Errorf("%v must not be a menu state", s)
		}
	}
	if StatePlayerDead.String() != "PLAYER_DEAD" || GameState(200).String() != "UNKNOWN" {
		t.Error("unexpected GameState names")
	}
}
