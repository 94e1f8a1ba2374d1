package querybind

import "github.com/vango-dev/querybind/pkg/location"

// Custom binds key using a caller-supplied codec. The codec's Parse signals
// failure with ok=false; a panic inside Parse or Format is treated the same
// as a failure, so a custom codec can never surface an error to the
// application.
func Custom[T any](env location.Environment, key string, def T, codec Codec[T], opts ...Option) *Binding[T] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, codec, false, cfg)
}

// OptionalCustom is the nullable variant of Custom. The value codec is
// lifted with PtrCodec, so nil is the absent state and the caller's codec
// only ever sees concrete values.
func OptionalCustom[T any](env location.Environment, key string, def *T, codec Codec[T], opts ...Option) *Binding[*T] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, PtrCodec(codec), true, cfg)
}
