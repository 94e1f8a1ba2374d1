package querybind

import (
	"testing"

	"github.com/vango-dev/querybind/pkg/location"
)

// TestStringNormalize tests truncation and space padding.
func TestStringNormalize(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		in   string
		want string
	}{
		{"NoOptions", nil, "hello", "hello"},
		{"Truncate", []Option{MaxLen(3)}, "hello", "hel"},
		{"TruncateCountsRunes", []Option{MaxLen(2)}, "日本語", "日本"},
		{"PadShort", []Option{MinLen(5)}, "ab", "ab   "},
		{"PadExact", []Option{MinLen(2)}, "ab", "ab"},
		{"TruncateThenPad", []Option{MaxLen(4), MinLen(6)}, "hello", "hell  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := stringCodec(applyOptions(tt.opts))
			if got := codec.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestStringBinding tests end-to-end behavior, including the percent
// escaping the mapping layer applies.
func TestStringBinding(t *testing.T) {
	t.Run("RawValueAlwaysValid", func(t *testing.T) {
		hist := location.NewHistory("q=anything%20at%20all")
		q := String(hist, "q", "")
		if q.Get() != "anything at all" {
			t.Errorf("Get: got %q", q.Get())
		}
	})

	t.Run("SetEscapesOnWrite", func(t *testing.T) {
		hist := location.NewHistory("")
		q := String(hist, "q", "x")
		q.Set("a b&c")
		if hist.Raw() != "q=a+b%26c" {
			t.Errorf("Raw: got %q, want q=a+b%%26c", hist.Raw())
		}
		if q.Get() != "a b&c" {
			t.Errorf("Get: got %q, want a b&c", q.Get())
		}
	})

	t.Run("EmptyDefaultLeavesNoKey", func(t *testing.T) {
		hist := location.NewHistory("")
		String(hist, "q", "")
		if hist.Raw() != "" {
			t.Errorf("Raw: got %q, want empty", hist.Raw())
		}
	})
}

// TestOptionalString tests absent-state handling.
func TestOptionalString(t *testing.T) {
	hist := location.NewHistory("")
	q := OptionalString(hist, "q", nil)
	if q.Get() != nil {
		t.Fatalf("Get: got %v, want nil", q.Get())
	}

	q.Set(ptr("term"))
	if hist.Raw() != "q=term" {
		t.Errorf("Raw: got %q, want q=term", hist.Raw())
	}

	got := q.Get()
	if got == nil || *got != "term" {
		t.Errorf("Get: got %v, want term", got)
	}
}
