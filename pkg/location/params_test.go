package location

import (
	"reflect"
	"testing"
)

// TestParseQuery tests decoding of raw query strings.
func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
		keys []string
	}{
		{"Empty", "", map[string]string{}, []string{}},
		{"Single", "a=1", map[string]string{"a": "1"}, []string{"a"}},
		{"Multiple", "a=1&b=two&c=", map[string]string{"a": "1", "b": "two", "c": ""}, []string{"a", "b", "c"}},
		{"LeadingQuestionMark", "?a=1", map[string]string{"a": "1"}, []string{"a"}},
		{"Escaped", "q=hello+world&x=a%26b", map[string]string{"q": "hello world", "x": "a&b"}, []string{"q", "x"}},
		{"ValuelessKey", "flag", map[string]string{"flag": ""}, []string{"flag"}},
		{"EmptyPairsSkipped", "a=1&&b=2", map[string]string{"a": "1", "b": "2"}, []string{"a", "b"}},
		{"EmptyKeySkipped", "=v&a=1", map[string]string{"a": "1"}, []string{"a"}},
		{"BadEscapeSkipped", "a=%zz&b=2", map[string]string{"b": "2"}, []string{"b"}},
		{"DuplicateKeepsFirstPositionLastValue", "a=1&b=2&a=3", map[string]string{"a": "3", "b": "2"}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseQuery(tt.raw)
			if p.Len() != len(tt.keys) {
				t.Fatalf("Len: got %d, want %d", p.Len(), len(tt.keys))
			}
			if len(tt.keys) > 0 && !reflect.DeepEqual(p.Keys(), tt.keys) {
				t.Errorf("Keys: got %v, want %v", p.Keys(), tt.keys)
			}
			for k, want := range tt.want {
				got, ok := p.Get(k)
				if !ok || got != want {
					t.Errorf("Get(%q): got %q ok=%v, want %q", k, got, ok, want)
				}
			}
		})
	}
}

// TestParamsEncode tests serialization order and escaping.
func TestParamsEncode(t *testing.T) {
	p := NewParams()
	p.Set("b", "2")
	p.Set("a", "hello world")
	p.Set("c", "x&y")

	if got := p.Encode(); got != "b=2&a=hello+world&c=x%26y" {
		t.Errorf("Encode: got %q", got)
	}
}

// TestParamsOrderPreservedAcrossMutation tests that updating a key keeps
// its position and deleting removes it.
func TestParamsOrderPreservedAcrossMutation(t *testing.T) {
	p := ParseQuery("a=1&b=2&c=3")

	p.Set("b", "9")
	if got := p.Encode(); got != "a=1&b=9&c=3" {
		t.Errorf("after update: got %q", got)
	}

	p.Delete("a")
	if got := p.Encode(); got != "b=9&c=3" {
		t.Errorf("after delete: got %q", got)
	}

	p.Delete("missing") // no-op
	p.Set("d", "4")
	if got := p.Encode(); got != "b=9&c=3&d=4" {
		t.Errorf("after append: got %q", got)
	}
}

// TestParamsRoundTrip tests that parse and encode agree.
func TestParamsRoundTrip(t *testing.T) {
	raws := []string{
		"",
		"a=1",
		"a=1&b=two",
		"q=hello+world",
		"x=a%26b%3Dc",
	}
	for _, raw := range raws {
		p := ParseQuery(raw)
		again := ParseQuery(p.Encode())
		if !reflect.DeepEqual(p.Keys(), again.Keys()) {
			t.Errorf("%q: keys diverged: %v vs %v", raw, p.Keys(), again.Keys())
		}
		for _, k := range p.Keys() {
			v1, _ := p.Get(k)
			v2, _ := again.Get(k)
			if v1 != v2 {
				t.Errorf("%q: value for %q diverged: %q vs %q", raw, k, v1, v2)
			}
		}
	}
}

// TestParamsClone tests that clones are independent.
func TestParamsClone(t *testing.T) {
	p := ParseQuery("a=1&b=2")
	c := p.Clone()

	c.Set("a", "changed")
	c.Delete("b")
	c.Set("d", "new")

	if v, _ := p.Get("a"); v != "1" {
		t.Errorf("original a: got %q, want 1", v)
	}
	if !p.Has("b") {
		t.Error("original lost key b")
	}
	if p.Has("d") {
		t.Error("original gained key d")
	}
}

// TestParamsZeroValue tests that a zero Params behaves as empty.
func TestParamsZeroValue(t *testing.T) {
	var p Params
	if p.Len() != 0 || p.Has("x") {
		t.Error("zero Params should be empty")
	}
	if p.Encode() != "" {
		t.Errorf("Encode: got %q, want empty", p.Encode())
	}
	p.Set("a", "1")
	if v, _ := p.Get("a"); v != "1" {
		t.Errorf("Set on zero Params: got %q", v)
	}
}
