package querybind

import (
	"strings"

	"github.com/vango-dev/querybind/pkg/location"
)

// Truthy and falsy raw forms accepted by Bool bindings, matched
// case-insensitively.
var (
	boolTruthy = map[string]struct{}{"1": {}, "true": {}, "t": {}, "yes": {}, "y": {}}
	boolFalsy  = map[string]struct{}{"0": {}, "false": {}, "f": {}, "no": {}, "n": {}}
)

// Bool binds key to a bool value. Raw values are matched case-insensitively
// against {1, true, t, yes, y} and {0, false, f, no, n}; anything else is a
// parse failure. Values format as "1" and "0".
func Bool(env location.Environment, key string, def bool, opts ...Option) *Binding[bool] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, boolCodec(), false, cfg)
}

// OptionalBool is the nullable variant of Bool.
func OptionalBool(env location.Environment, key string, def *bool, opts ...Option) *Binding[*bool] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, PtrCodec(boolCodec()), true, cfg)
}

func boolCodec() Codec[bool] {
	return Codec[bool]{
		Parse: func(raw string) (bool, bool) {
			s := strings.ToLower(raw)
			if _, ok := boolTruthy[s]; ok {
				return true, true
			}
			if _, ok := boolFalsy[s]; ok {
				return false, true
			}
			return false, false
		},
		Format: func(v bool) string {
			if v {
				return "1"
			}
			return "0"
		},
	}
}
