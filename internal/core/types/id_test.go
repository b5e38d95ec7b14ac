package types

import (
	"encoding/json"
	"testing"
)

func TestPackEntityID(t *testing.T) {
	tests := []struct {
		name  string
		depth uint8
		typ   uint8
		gen   uint16
		index uint32
	}{
		{"All zero", 0, 0, 0, 0},
		{"First level monster", 1, 2, 1, 7},
		{"Max values", maskDepth, maskType, maskGen, maskIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := PackEntityID(tt.depth, tt.typ, tt.gen, tt.index)

			if id.Depth() != tt.depth {
				t.Errorf("Depth() = %v, want %v", id.Depth(), tt.depth)
			}
			if id.Type() != tt.typ {
				t.Errorf("Type() = %v, want %v", id.Type(), tt.typ)
			}
			if id.Generation() != tt.gen {
				t.Errorf("Generation() = %v, want %v", id.Generation(), tt.gen)
			}
			if id.Index() != tt.index {
				t.Errorf("Index() = %v, want %v", id.Index(), tt.index)
			}
		})
	}
}

func TestEntityID_GenerationDistinguishesSlots(t *testing.T) {
	old := PackEntityID(1, 2, 1, 5)
	reused := PackEntityID(1, 2, 2, 5)

	if old == reused {
		t.Fatal("IDs of the same slot with different generations must differ")
	}
	if old.Index() != reused.Index() {
		t.Errorf("Index mismatch: %d vs %d", old.Index(), reused.Index())
	}
}

func TestEntityID_IsNil(t *testing.T) {
	tests := []struct {
		name string
		id   EntityID
		want bool
	}{
		{"Zero is Nil", 0, true},
		{"NilEntityID constant", NilEntityID, true},
		{"Non-zero is not Nil", PackEntityID(1, 1, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.IsNil(); got != tt.want {
				t.Errorf("IsNil() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntityID_String(t *testing.T) {
	if got := NilEntityID.String(); got != "<nil>" {
		t.Errorf("String() = %q, want <nil>", got)
	}
	if got := PackEntityID(1, 2, 3, 4).String(); got != "[depth=1 type=2 gen=3 idx=4]" {
		t.Errorf("String() = %q", got)
	}
}

func TestEntityID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    EntityID
		wantErr bool
	}{
		{name: "String ID", data: []byte(`"123"`), want: EntityID(123)},
		{name: "Number ID", data: []byte(`456`), want: EntityID(456)},
		{name: "Empty string", data: []byte(`""`), want: NilEntityID},
		{name: "Null", data: []byte(`null`), want: NilEntityID},
		{name: "Invalid format", data: []byte(`"abc"`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id EntityID
			err := id.UnmarshalJSON(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && id != tt.want {
				t.Errorf("UnmarshalJSON() = %v, want %v", id, tt.want)
			}
		})
	}
}

func TestEntityID_JSONRoundTrip(t *testing.T) {
	original := PackEntityID(3, 4, 5, 6)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if data[0] != '"' {
		t.Errorf("EntityID must be encoded as a string, got %s", data)
	}

	var decoded EntityID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if decoded != original {
		t.Errorf("JSON round-trip failed: got %v, want %v", decoded, original)
	}
}

// FuzzPackEntityID проверяет инвариант:
// PackEntityID → извлечение полей → равенство исходным значениям.
func FuzzPackEntityID(f *testing.F) {
	f.Add(uint8(0), uint8(0), uint16(0), uint32(0))
	f.Add(uint8(1), uint8(2), uint16(3), uint32(4))
	f.Add(uint8(255), uint8(255), uint16(65535), uint32(4294967295))

	f.Fuzz(func(t *testing.T, depth uint8, typ uint8, gen uint16, index uint32) {
		id := PackEntityID(depth, typ, gen, index)

		if id.Depth() != depth || id.Type() != typ || id.Generation() != gen || id.Index() != index {
			t.Fatalf("unpack mismatch for %v", id)
		}
	})
}
