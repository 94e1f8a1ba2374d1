package querybind

import (
	"math"
	"strconv"

	"github.com/vango-dev/querybind/pkg/location"
)

// Number binds key to a float64 value. Input that does not parse as a
// base-10 decimal, or parses to NaN or an infinity, counts as a parse
// failure and falls back to def. Min, Max, and Step clamp the value to
// [min, max] and then round it to the nearest multiple of step, ties
// rounding half away from zero.
func Number(env location.Environment, key string, def float64, opts ...Option) *Binding[float64] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, numberCodec(cfg), false, cfg)
}

// OptionalNumber is the nullable variant of Number. A nil default leaves
// the key out of the URL, and a navigation that removes the key keeps the
// current value instead of resetting.
func OptionalNumber(env location.Environment, key string, def *float64, opts ...Option) *Binding[*float64] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, PtrCodec(numberCodec(cfg)), true, cfg)
}

func numberCodec(cfg config) Codec[float64] {
	return Codec[float64]{
		Parse: func(raw string) (float64, bool) {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, false
			}
			return f, true
		},
		Format: func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		Normalize: func(v float64) float64 {
			if cfg.min != nil && v < *cfg.min {
				v = *cfg.min
			}
			if cfg.max != nil && v > *cfg.max {
				v = *cfg.max
			}
			if cfg.step > 0 {
				// math.Round is round half away from zero, the pinned
				// tie-breaking rule for step rounding.
				v = math.Round(v/cfg.step) * cfg.step
			}
			return v
		},
	}
}
