package querybind

import (
	"testing"

	"github.com/vango-dev/querybind/pkg/location"
)

// TestBoolParse tests the truthy/falsy raw sets.
func TestBoolParse(t *testing.T) {
	codec := boolCodec()

	tests := []struct {
		raw  string
		want bool
		ok   bool
	}{
		{"1", true, true},
		{"true", true, true},
		{"TRUE", true, true},
		{"t", true, true},
		{"yes", true, true},
		{"Y", true, true},
		{"0", false, true},
		{"false", false, true},
		{"False", false, true},
		{"f", false, true},
		{"no", false, true},
		{"N", false, true},
		{"", false, false},
		{"2", false, false},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := codec.Parse(tt.raw)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Parse(%q): got %v ok=%v, want %v ok=%v", tt.raw, got, ok, tt.want, tt.ok)
			}
		})
	}
}

// TestBoolFormat tests the 1/0 wire form.
func TestBoolFormat(t *testing.T) {
	codec := boolCodec()
	if got := codec.Format(true); got != "1" {
		t.Errorf("Format(true): got %q, want 1", got)
	}
	if got := codec.Format(false); got != "0" {
		t.Errorf("Format(false): got %q, want 0", got)
	}
}

// TestBoolBinding tests seeding and navigation for the bool type.
func TestBoolBinding(t *testing.T) {
	hist := location.NewHistory("")
	dark := Bool(hist, "dark", true)
	if hist.Raw() != "dark=1" {
		t.Errorf("Raw: got %q, want dark=1", hist.Raw())
	}

	dark.Set(false)
	if hist.Raw() != "dark=0" {
		t.Errorf("Raw: got %q, want dark=0", hist.Raw())
	}

	hist.Navigate("dark=yes")
	if !dark.Get() {
		t.Error("Get: got false, want true after navigating to dark=yes")
	}
}
