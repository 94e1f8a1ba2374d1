package querybind

// Codec converts between a query parameter's raw string form and its typed
// in-memory form. Typed builders hand a Codec to the generic engine; the
// engine itself never inspects T.
type Codec[T any] struct {
	// Parse converts a raw query value. ok=false marks a parse failure,
	// which the engine recovers by falling back to the binding's default.
	Parse func(raw string) (v T, ok bool)

	// Format renders a value for the URL. The empty string is the reserved
	// "no value" signal: the key is removed from the URL, never written as
	// "key=".
	Format func(v T) string

	// Normalize canonicalizes a value (clamping, rounding, padding).
	// Optional; nil means identity.
	Normalize func(v T) T

	// Absent reports whether v is the first-class "no value" state. Set
	// only by optional bindings; nil means no value is ever absent.
	Absent func(v T) bool
}

// normalize applies Normalize, skipping nil functions and absent values.
func (c Codec[T]) normalize(v T) T {
	if c.Normalize == nil {
		return v
	}
	if c.Absent != nil && c.Absent(v) {
		return v
	}
	return c.Normalize(v)
}

// parse runs Parse, converting a panic into a parse failure.
func (c Codec[T]) parse(raw string) (v T, ok bool) {
	defer func() {
		if recover() != nil {
			var zero T
			v, ok = zero, false
		}
	}()
	return c.Parse(raw)
}

// format runs Format, converting a panic into the empty string, which the
// engine interprets as "remove the key".
func (c Codec[T]) format(v T) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()
	return c.Format(v)
}

// PtrCodec lifts a value codec to a pointer codec whose nil is the absent
// state: nil formats to the empty string, Normalize applies only to non-nil
// values, and parse failures stay failures. Optional builders use it to
// reuse the non-optional codecs.
func PtrCodec[T any](c Codec[T]) Codec[*T] {
	return Codec[*T]{
		Parse: func(raw string) (*T, bool) {
			v, ok := c.parse(raw)
			if !ok {
				return nil, false
			}
			return &v, true
		},
		Format: func(v *T) string {
			if v == nil {
				return ""
			}
			return c.format(*v)
		},
		Normalize: func(v *T) *T {
			if v == nil || c.Normalize == nil {
				return v
			}
			n := c.Normalize(*v)
			return &n
		},
		Absent: func(v *T) bool { return v == nil },
	}
}
