package querybind

import (
	"encoding/json"

	"github.com/vango-dev/querybind/pkg/location"
)

// JSONOptions customizes how a JSON binding encodes, decodes, and validates
// values. The zero value uses encoding/json for both directions with no
// validation.
type JSONOptions[T any] struct {
	// Marshal replaces the default encoder. An error removes the key,
	// per the empty-string format rule.
	Marshal func(v T) ([]byte, error)

	// Unmarshal replaces the default decoder.
	Unmarshal func(data []byte) (T, error)

	// Validate vets a decoded value. Returning false counts as a parse
	// failure and falls back to the default.
	Validate func(v T) bool

	// IsEmpty reports whether v is the empty/default shape, which formats
	// to the empty string and removes the key from the URL.
	IsEmpty func(v T) bool
}

// JSON binds key to a structurally encoded value using encoding/json. The
// encoded document travels percent-escaped inside the query value.
func JSON[T any](env location.Environment, key string, def T, opts ...Option) *Binding[T] {
	return JSONWith(env, key, def, JSONOptions[T]{}, opts...)
}

// JSONWith is JSON with custom codec behavior.
func JSONWith[T any](env location.Environment, key string, def T, jo JSONOptions[T], opts ...Option) *Binding[T] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, jsonCodec(jo), false, cfg)
}

// OptionalJSON is the nullable variant of JSON.
func OptionalJSON[T any](env location.Environment, key string, def *T, opts ...Option) *Binding[*T] {
	return OptionalJSONWith(env, key, def, JSONOptions[T]{}, opts...)
}

// OptionalJSONWith is OptionalJSON with custom codec behavior.
func OptionalJSONWith[T any](env location.Environment, key string, def *T, jo JSONOptions[T], opts ...Option) *Binding[*T] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, PtrCodec(jsonCodec(jo)), true, cfg)
}

func jsonCodec[T any](jo JSONOptions[T]) Codec[T] {
	unmarshal := jo.Unmarshal
	if unmarshal == nil {
		unmarshal = func(data []byte) (T, error) {
			var v T
			err := json.Unmarshal(data, &v)
			return v, err
		}
	}
	marshal := jo.Marshal
	if marshal == nil {
		marshal = func(v T) ([]byte, error) {
			return json.Marshal(v)
		}
	}

	return Codec[T]{
		Parse: func(raw string) (T, bool) {
			v, err := unmarshal([]byte(raw))
			if err != nil {
				var zero T
				return zero, false
			}
			if jo.Validate != nil && !jo.Validate(v) {
				var zero T
				return zero, false
			}
			return v, true
		},
		Format: func(v T) string {
			if jo.IsEmpty != nil && jo.IsEmpty(v) {
				return ""
			}
			data, err := marshal(v)
			if err != nil {
				return ""
			}
			return string(data)
		},
	}
}
