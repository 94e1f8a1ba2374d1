package querybind

import (
	"time"

	"github.com/vango-dev/querybind/pkg/location"
)

// dateLayout is the wire form of a Date binding: UTC calendar fields only.
const dateLayout = "2006-01-02"

// Date binds key to a calendar date carried as YYYY-MM-DD in UTC. Raw
// values that are not well-formed dates, including out-of-range calendar
// values like 2023-02-31, count as parse failures. Values normalize to UTC
// midnight, and MinDate/MaxDate clamp by UTC calendar date.
func Date(env location.Environment, key string, def time.Time, opts ...Option) *Binding[time.Time] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, dateCodec(cfg), false, cfg)
}

// OptionalDate is the nullable variant of Date.
func OptionalDate(env location.Environment, key string, def *time.Time, opts ...Option) *Binding[*time.Time] {
	cfg := applyOptions(opts)
	return newBinding(env, key, def, PtrCodec(dateCodec(cfg)), true, cfg)
}

func dateCodec(cfg config) Codec[time.Time] {
	return Codec[time.Time]{
		Parse: func(raw string) (time.Time, bool) {
			t, err := time.Parse(dateLayout, raw)
			if err != nil {
				return time.Time{}, false
			}
			return t, true
		},
		Format: func(v time.Time) string {
			return v.UTC().Format(dateLayout)
		},
		Normalize: func(v time.Time) time.Time {
			d := utcDate(v)
			if cfg.minDate != nil {
				if min := utcDate(*cfg.minDate); d.Before(min) {
					d = min
				}
			}
			if cfg.maxDate != nil {
				if max := utcDate(*cfg.maxDate); d.After(max) {
					d = max
				}
			}
			return d
		},
	}
}

// utcDate truncates t to its UTC calendar date.
func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
