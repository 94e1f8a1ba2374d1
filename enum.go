package querybind

import "github.com/vango-dev/querybind/pkg/location"

// Enum binds key to one of a fixed set of string values. A raw value that
// is not a member of allowed counts as a parse failure and falls back to
// def. Membership is case-sensitive; values travel as-is.
func Enum(env location.Environment, key string, allowed []string, def string, opts ...Option) *Binding[string] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, enumCodec(allowed), false, cfg)
}

// OptionalEnum is the nullable variant of Enum.
func OptionalEnum(env location.Environment, key string, allowed []string, def *string, opts ...Option) *Binding[*string] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, PtrCodec(enumCodec(allowed)), true, cfg)
}

func enumCodec(allowed []string) Codec[string] {
	members := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		members[v] = struct{}{}
	}
	return Codec[string]{
		Parse: func(raw string) (string, bool) {
			if _, ok := members[raw]; !ok {
				return "", false
			}
			return raw, true
		},
		Format: func(v string) string {
			return v
		},
	}
}
