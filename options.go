package querybind

import (
	"time"

	"github.com/vango-dev/querybind/pkg/location"
)

// Option configures a Binding at creation time. Options that only apply to
// one value type (Min, MaxLen, MinDate, ...) are ignored by the other
// builders.
type Option func(*config)

// config holds the configuration for one binding. One struct carries both
// the engine-level settings and the per-type normalization knobs.
type config struct {
	action location.Action
	bus    *Bus

	// Number
	min, max *float64
	step     float64

	// String
	minLen, maxLen *int

	// Date
	minDate, maxDate *time.Time
}

// applyOptions applies the given options and returns the resulting config.
func applyOptions(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// History sets how programmatic writes affect the navigation history.
// The default is location.ActionReplace.
func History(a location.Action) Option {
	return func(c *config) { c.action = a }
}

// Mode options as values, mirroring the two history actions.
var (
	// Replace updates the URL without creating a history entry. Use for
	// filters and search inputs.
	Replace Option = History(location.ActionReplace)

	// Append creates a new history entry on each write, so the back button
	// steps through prior values.
	Append Option = History(location.ActionAppend)
)

// WithBus routes the binding's ChangeEvents to bus.
func WithBus(bus *Bus) Option {
	return func(c *config) { c.bus = bus }
}

// Min sets the lower bound for Number bindings. Values below it clamp up.
func Min(v float64) Option {
	return func(c *config) { c.min = &v }
}

// Max sets the upper bound for Number bindings. Values above it clamp down.
func Max(v float64) Option {
	return func(c *config) { c.max = &v }
}

// Step rounds Number values to the nearest multiple of step after clamping.
// Ties round half away from zero. A step of zero disables rounding.
func Step(v float64) Option {
	return func(c *config) { c.step = v }
}

// MinLen pads String values shorter than n with trailing spaces.
//
// The padding changes the string's content; callers that treat padded and
// unpadded values as distinct should not set MinLen.
func MinLen(n int) Option {
	return func(c *config) { c.minLen = &n }
}

// MaxLen truncates String values longer than n runes.
func MaxLen(n int) Option {
	return func(c *config) { c.maxLen = &n }
}

// MinDate sets the lower bound for Date bindings, compared by UTC calendar
// date.
func MinDate(t time.Time) Option {
	return func(c *config) { c.minDate = &t }
}

// MaxDate sets the upper bound for Date bindings, compared by UTC calendar
// date.
func MaxDate(t time.Time) Option {
	return func(c *config) { c.maxDate = &t }
}
