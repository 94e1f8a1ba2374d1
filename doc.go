// Package querybind keeps typed in-memory state synchronized, in both
// directions, with a URL's query-string parameters.
//
// A Binding ties one query key to one typed value. Reading the binding
// yields the typed value, setting it updates both the in-memory value and
// the URL, and external navigation (back/forward) flows back into the
// in-memory value. A malformed or absent query parameter behaves exactly
// like a missing value, never like an error.
//
// # Bindings
//
// Typed builders configure one generic engine:
//
//	hist := location.NewHistory("page=3")
//	page := querybind.Number(hist, "page", 1, querybind.Min(1))
//	page.Get()                               // 3
//	page.Set(7)                              // URL becomes page=7
//	page.Update(func(n float64) float64 { return n + 1 })
//
// Every type comes in a non-optional and an optional variant. A
// non-optional binding always holds a concrete value and resets to its
// default when a navigation removes the key. An optional binding uses a
// pointer whose nil is the first-class "absent" state and keeps its current
// value when a navigation removes the key.
//
// # Host environments
//
// Bindings run against a location.Environment: an ordered view of the query
// string plus navigation notifications. location.History is an in-memory
// environment for tests and headless hosts, live.Session mirrors a real
// browser's URL over a WebSocket, and a nil environment degrades every read
// to the default and every write to a no-op.
//
// # Observability
//
// Every realized value change emits a ChangeEvent on the binding's Bus, if
// one was attached with WithBus. Delivery is best-effort: a panicking
// subscriber can never interrupt the state update that produced the event.
package querybind
