// Package location provides environment-safe access to a URL's query
// component.
//
// It defines an ordered parameter mapping (Params), the Source/Notifier
// contract a host environment must satisfy for query synchronization, and
// two implementations: Unavailable, the degraded no-op environment for
// contexts that have no URL at all, and History, an in-memory navigable
// history stack for tests and headless hosts.
//
// No operation in this package ever returns an error. A context without a
// usable URL reads as unavailable and absorbs writes silently; a malformed
// query pair is skipped during parsing. Degradation, not failure, is the
// contract.
package location

// Action determines how a query write affects the navigation history.
type Action uint8

const (
	// ActionReplace overwrites the current history entry. The back button
	// skips the overwritten state. This is the default for query writes.
	ActionReplace Action = iota

	// ActionAppend pushes a new history entry. The back button lands on
	// the prior query state.
	ActionAppend
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionReplace:
		return "replace"
	case ActionAppend:
		return "append"
	default:
		return "unknown"
	}
}

// Source reads and writes the query component of the current location.
//
// ReadQuery returns ok=false when no navigable URL context exists (for
// example a non-interactive rendering context, or a session whose transport
// has closed). Callers must treat that state as "no parameters present".
// WriteQuery is a no-op in the unavailable state and never reports failure;
// internal write errors are swallowed by the implementation.
type Source interface {
	ReadQuery() (p Params, ok bool)
	WriteQuery(p Params, action Action)
}

// Notifier delivers external navigation notifications, the host equivalent
// of a browser's back/forward events. Subscribe registers fn to run on each
// navigation and returns a cancel func that releases the subscription.
// Cancel is idempotent.
type Notifier interface {
	Subscribe(fn func()) (cancel func())
}

// Environment is the full host contract query synchronization needs:
// a queryable, mutable query string plus navigation notifications.
type Environment interface {
	Source
	Notifier
}

// Unavailable is the Environment for contexts without a URL: every read
// reports unavailable, every write is a no-op, and navigation notifications
// never fire.
type Unavailable struct{}

// ReadQuery reports that no URL context exists.
func (Unavailable) ReadQuery() (Params, bool) { return Params{}, false }

// WriteQuery discards the write.
func (Unavailable) WriteQuery(Params, Action) {}

// Subscribe registers nothing; the returned cancel is a no-op.
func (Unavailable) Subscribe(func()) (cancel func()) { return func() {} }
