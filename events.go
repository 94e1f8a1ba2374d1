package querybind

import (
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/querybind/pkg/location"
)

// Origin tags which trigger realized a value change.
type Origin uint8

const (
	// OriginProgrammatic marks a change made through Set or Update.
	OriginProgrammatic Origin = iota

	// OriginNavigation marks a change caused by an external navigation
	// (back/forward, address-bar edit).
	OriginNavigation
)

// String returns the string representation of the origin.
func (o Origin) String() string {
	switch o {
	case OriginProgrammatic:
		return "programmatic"
	case OriginNavigation:
		return "navigation"
	default:
		return "unknown"
	}
}

// ChangeEvent records one realized value change on a Binding. It is emitted
// for cross-cutting concerns (analytics, debugging) and carries no
// control-flow authority: losing an event cannot corrupt binding state.
type ChangeEvent struct {
	// Key is the query key of the binding that changed.
	Key string

	// Prev and Next are the binding's values before and after the change.
	Prev any
	Next any

	// Params is a snapshot of the full query mapping at the moment of the
	// change.
	Params location.Params

	// Origin tags the trigger that realized the change.
	Origin Origin

	// At is the time the change was applied.
	At time.Time
}

// Bus fans ChangeEvents out to subscribers. It is owned by whatever
// composition root wires up bindings, not by the package: attach one to a
// binding with WithBus.
//
// Delivery is best-effort. A panicking subscriber is logged and skipped and
// can never interrupt the state update that produced the event.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]func(ChangeEvent)
	logger *slog.Logger
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{
		subs:   make(map[uint64]func(ChangeEvent)),
		logger: slog.Default().With("component", "querybind.bus"),
	}
}

// SetLogger replaces the logger used to report subscriber panics.
func (b *Bus) SetLogger(logger *slog.Logger) {
	b.mu.Lock()
	b.logger = logger
	b.mu.Unlock()
}

// Subscribe registers fn for every published event. The returned cancel
// releases the subscription and is idempotent.
func (b *Bus) Subscribe(fn func(ChangeEvent)) (cancel func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers ev to all subscribers. Safe on a nil Bus.
func (b *Bus) Publish(ev ChangeEvent) {
	if b == nil {
		return
	}

	b.mu.Lock()
	fns := make([]func(ChangeEvent), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	logger := b.logger
	b.mu.Unlock()

	for _, fn := range fns {
		b.dispatch(fn, ev, logger)
	}
}

// dispatch invokes one subscriber with panic recovery.
func (b *Bus) dispatch(fn func(ChangeEvent), ev ChangeEvent, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Debug("change event subscriber panic",
				"key", ev.Key,
				"origin", ev.Origin.String(),
				"panic", r)
		}
	}()
	fn(ev)
}
