package querybind

import (
	"reflect"
	"sync"
	"time"

	"github.com/vango-dev/querybind/pkg/location"
)

// Binding ties one query key to one typed in-memory value and keeps the two
// synchronized. It is created by a typed builder (Number, String, Enum, ...)
// or by Custom, already activated against the current URL, and stays live
// until Close releases its navigation subscription.
//
// Each Binding is independent. Two bindings sharing a key are separate
// state that contend for the same URL key; the last writer wins and the
// engine does not coordinate between them.
type Binding[T any] struct {
	mu       sync.RWMutex
	key      string
	codec    Codec[T]
	def      T
	optional bool
	action   location.Action
	env      location.Environment
	bus      *Bus

	value     T
	closed    bool
	cancelNav func()

	watchMu  sync.Mutex
	watchID  uint64
	watchers map[uint64]func(prev, next T)
}

// newBinding constructs a Binding, runs activation against the current URL,
// and subscribes to navigation notifications. The Binding is not visible to
// callers until activation has completed.
func newBinding[T any](env location.Environment, key string, def T, codec Codec[T], optional bool, cfg config) *Binding[T] {
	if env == nil {
		env = location.Unavailable{}
	}
	b := &Binding[T]{
		key:      key,
		codec:    codec,
		def:      def,
		optional: optional,
		action:   cfg.action,
		env:      env,
		bus:      cfg.bus,
		watchers: make(map[uint64]func(prev, next T)),
	}
	b.activate()
	b.cancelNav = env.Subscribe(b.onNavigate)
	return b
}

// activate reads the URL once and establishes the initial in-memory value.
// A missing key with a concrete default seeds the URL with the formatted
// default; a missing key with an absent default, or an unparseable value,
// only initializes the in-memory side.
func (b *Binding[T]) activate() {
	params, ok := b.env.ReadQuery()
	if !ok {
		// No URL context: hold the default, skip seeding.
		b.value = b.codec.normalize(b.def)
		return
	}

	raw, present := params.Get(b.key)
	if !present {
		if b.optional && b.isAbsent(b.def) {
			params.Delete(b.key)
			b.value = b.def
			return
		}
		next := b.codec.normalize(b.def)
		s := b.codec.format(next)
		if s == "" {
			// Write-through even on removal so no stray empty-value key
			// survives activation.
			params.Delete(b.key)
		} else {
			params.Set(b.key, s)
		}
		// Seeding never grows the history, regardless of the configured
		// action.
		b.env.WriteQuery(params, location.ActionReplace)
		b.value = next
		return
	}

	v, ok := b.codec.parse(raw)
	if !ok {
		b.value = b.codec.normalize(b.def)
		return
	}
	b.value = b.codec.normalize(v)
}

// Get returns the current in-memory value.
func (b *Binding[T]) Get() T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Key returns the query key currently in use.
func (b *Binding[T]) Key() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.key
}

// SetKey changes the query key used by subsequent operations. The value is
// not re-read; the next set or navigation works against the new key.
func (b *Binding[T]) SetKey(key string) {
	b.mu.Lock()
	b.key = key
	b.mu.Unlock()
}

// Default returns the default value fixed at creation.
func (b *Binding[T]) Default() T {
	return b.def
}

// Set updates the value and synchronizes the URL.
func (b *Binding[T]) Set(value T) {
	b.apply(func(T) T { return value })
}

// Update computes the next value from the current one and synchronizes the
// URL. The previous value is resolved from the latest in-memory state at
// the moment of the call, never from a stale capture.
func (b *Binding[T]) Update(fn func(T) T) {
	b.apply(fn)
}

// Reset sets the value back to the default.
func (b *Binding[T]) Reset() {
	b.Set(b.def)
}

// apply runs the programmatic-set state machine: resolve, normalize,
// format, compare against a freshly read mapping, and write through only
// when the formatted string differs from what the URL already holds.
func (b *Binding[T]) apply(fn func(T) T) {
	b.mu.Lock()
	prev := b.value
	next := b.codec.normalize(fn(prev))
	s := b.codec.format(next)
	key := b.key

	params, ok := b.env.ReadQuery()
	if !ok {
		// No URL context: the in-memory value still advances.
		changed := !equals(prev, next)
		b.value = next
		b.mu.Unlock()
		if changed {
			b.emit(key, prev, next, params, OriginProgrammatic)
		}
		return
	}

	raw, present := params.Get(key)
	wrote := false
	switch {
	case s == "" && present:
		params.Delete(key)
		b.env.WriteQuery(params, b.action)
		wrote = true
	case s != "" && (!present || raw != s):
		params.Set(key, s)
		b.env.WriteQuery(params, b.action)
		wrote = true
	}
	// The equal case suppresses the write but the in-memory value still
	// takes the normalized next value.
	b.value = next
	b.mu.Unlock()

	if wrote {
		b.emit(key, prev, next, params, OriginProgrammatic)
	}
}

// onNavigate handles an external navigation notification: re-read the URL
// and reconcile the in-memory value with whatever the key now holds.
func (b *Binding[T]) onNavigate() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	params, ok := b.env.ReadQuery()
	if !ok {
		b.mu.Unlock()
		return
	}

	prev := b.value
	key := b.key
	raw, present := params.Get(key)

	var next T
	switch {
	case !present && b.optional:
		// Absent already has a first-class representation; the current
		// value is kept.
		b.mu.Unlock()
		return
	case !present:
		next = b.codec.normalize(b.def)
	default:
		v, ok := b.codec.parse(raw)
		if !ok && b.optional {
			// A bad navigation target does not reset an optional binding.
			b.mu.Unlock()
			return
		}
		if !ok {
			next = b.codec.normalize(b.def)
		} else {
			next = b.codec.normalize(v)
		}
	}

	changed := !equals(prev, next)
	// Non-optional bindings always reset on a missing key, even when the
	// computed value equals the current one.
	b.value = next
	b.mu.Unlock()

	if changed {
		b.emit(key, prev, next, params, OriginNavigation)
	}
}

// Watch registers fn to run after every realized value change, with the
// previous and next values. The returned cancel releases the registration
// and is idempotent. A panicking watcher is skipped.
func (b *Binding[T]) Watch(fn func(prev, next T)) (cancel func()) {
	b.watchMu.Lock()
	b.watchID++
	id := b.watchID
	b.watchers[id] = fn
	b.watchMu.Unlock()

	return func() {
		b.watchMu.Lock()
		delete(b.watchers, id)
		b.watchMu.Unlock()
	}
}

// Close releases the binding's navigation subscription. Further navigation
// notifications are ignored; Get, Set, and Update keep working against the
// in-memory value. Close is idempotent.
func (b *Binding[T]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	cancel := b.cancelNav
	b.cancelNav = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// emit publishes a ChangeEvent and runs the typed watchers. Both paths are
// best-effort and never propagate to the mutating caller.
func (b *Binding[T]) emit(key string, prev, next T, params location.Params, origin Origin) {
	b.bus.Publish(ChangeEvent{
		Key:    key,
		Prev:   prev,
		Next:   next,
		Params: params.Clone(),
		Origin: origin,
		At:     time.Now(),
	})

	b.watchMu.Lock()
	fns := make([]func(prev, next T), 0, len(b.watchers))
	for _, fn := range b.watchers {
		fns = append(fns, fn)
	}
	b.watchMu.Unlock()

	for _, fn := range fns {
		runWatcher(fn, prev, next)
	}
}

// runWatcher invokes one watcher with panic recovery.
func runWatcher[T any](fn func(prev, next T), prev, next T) {
	defer func() {
		_ = recover()
	}()
	fn(prev, next)
}

// isAbsent reports whether v is the codec's absent state.
func (b *Binding[T]) isAbsent(v T) bool {
	return b.codec.Absent != nil && b.codec.Absent(v)
}

// equals provides type-appropriate equality checking: == for the common
// comparable types, reflect.DeepEqual for everything else (which compares
// pointees, so two optional values pointing at equal data are equal).
func equals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	case int:
		return av == any(b).(int)
	case time.Time:
		return av.Equal(any(b).(time.Time))
	default:
		return reflect.DeepEqual(a, b)
	}
}
