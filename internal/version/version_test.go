package version

import (
	"strings"
	"testing"
)

func TestBuildIDFor(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2025-12-04", expected: 0},
		{name: "next day after epoch", date: "2025-12-05", expected: 1},
		{name: "one year later", date: "2026-12-04", expected: 365},
		{name: "leap years included", date: "2032-12-04", expected: 2557},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2025-12-03", wantError: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildIDFor(tt.date)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (id=%d)", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("buildIDFor(%q) = %d, want %d", tt.date, got, tt.expected)
			}
		})
	}
}

func TestInfoAndString(t *testing.T) {
	old := BuildDate
	t.Cleanup(func() { BuildDate = old })

	BuildDate = ""
	if info := Info(); info.Calculated || info.Error == "" {
		t.Errorf("Info() with empty date = %+v", info)
	}
	if s := String(); !strings.HasPrefix(s, "Build unknown") {
		t.Errorf("String() = %q", s)
	}

	BuildDate = "2025-12-14"
	info := Info()
	if !info.Calculated || info.BuildID != 10 {
		t.Errorf("Info() = %+v, want build 10", info)
	}
	if s := String(); !strings.Contains(s, "Build 10") || !strings.Contains(s, "ci[local]") {
		t.Errorf("String() = %q", s)
	}
}
