package querybind

import (
	"strings"

	"github.com/vango-dev/querybind/pkg/location"
)

// String binds key to a string value. Every raw value is valid, so the only
// way a String binding falls back to its default is a missing key. MaxLen
// truncates to a rune count; MinLen then pads with trailing spaces.
func String(env location.Environment, key string, def string, opts ...Option) *Binding[string] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, stringCodec(cfg), false, cfg)
}

// OptionalString is the nullable variant of String.
func OptionalString(env location.Environment, key string, def *string, opts ...Option) *Binding[*string] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, PtrCodec(stringCodec(cfg)), true, cfg)
}

func stringCodec(cfg config) Codec[string] {
	return Codec[string]{
		Parse: func(raw string) (string, bool) {
			return raw, true
		},
		Format: func(v string) string {
			return v
		},
		Normalize: func(v string) string {
			if cfg.maxLen != nil {
				if r := []rune(v); len(r) > *cfg.maxLen {
					v = string(r[:*cfg.maxLen])
				}
			}
			if cfg.minLen != nil {
				if n := *cfg.minLen - len([]rune(v)); n > 0 {
					v += strings.Repeat(" ", n)
				}
			}
			return v
		},
	}
}
