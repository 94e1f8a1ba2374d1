package location

import (
	"strings"
	"sync"
)

// History is an in-memory navigable history of query states. It implements
// Environment and stands in for a browser's location and history stack in
// tests, CLI tools, and other headless hosts.
//
// Each entry is one raw query string. WriteQuery with ActionReplace
// overwrites the current entry; ActionAppend discards any forward entries
// and pushes a new one, exactly like a browser history after a push
// navigation. Back, Forward, and Navigate fire navigation subscribers;
// programmatic writes do not, matching the browser model where pushState
// and replaceState do not emit popstate.
type History struct {
	mu      sync.RWMutex
	entries []string
	idx     int

	subMu  sync.Mutex
	nextID uint64
	subs   map[uint64]func()
}

// NewHistory creates a History whose single initial entry holds rawQuery.
// A leading "?" is tolerated.
func NewHistory(rawQuery string) *History {
	return &History{
		entries: []string{strings.TrimPrefix(rawQuery, "?")},
		subs:    make(map[uint64]func()),
	}
}

// ReadQuery returns the current entry's parameters. A History is always
// available.
func (h *History) ReadQuery() (Params, bool) {
	h.mu.RLock()
	raw := h.entries[h.idx]
	h.mu.RUnlock()
	return ParseQuery(raw), true
}

// WriteQuery applies the mapping to the history per action.
func (h *History) WriteQuery(p Params, action Action) {
	raw := p.Encode()
	h.mu.Lock()
	if action == ActionAppend {
		h.entries = append(h.entries[:h.idx+1], raw)
		h.idx = len(h.entries) - 1
	} else {
		h.entries[h.idx] = raw
	}
	h.mu.Unlock()
}

// Subscribe registers fn to run on every navigation (Back, Forward,
// Navigate). The returned cancel releases the subscription and is
// idempotent.
func (h *History) Subscribe(fn func()) (cancel func()) {
	h.subMu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = fn
	h.subMu.Unlock()

	return func() {
		h.subMu.Lock()
		delete(h.subs, id)
		h.subMu.Unlock()
	}
}

// Back moves one entry toward the oldest state and notifies subscribers.
// It reports whether a move happened.
func (h *History) Back() bool {
	h.mu.Lock()
	if h.idx == 0 {
		h.mu.Unlock()
		return false
	}
	h.idx--
	h.mu.Unlock()
	h.notify()
	return true
}

// Forward moves one entry toward the newest state and notifies subscribers.
// It reports whether a move happened.
func (h *History) Forward() bool {
	h.mu.Lock()
	if h.idx >= len(h.entries)-1 {
		h.mu.Unlock()
		return false
	}
	h.idx++
	h.mu.Unlock()
	h.notify()
	return true
}

// Navigate simulates an address-bar navigation to rawQuery: forward entries
// are discarded, the new state is pushed, and subscribers are notified.
func (h *History) Navigate(rawQuery string) {
	raw := strings.TrimPrefix(rawQuery, "?")
	h.mu.Lock()
	h.entries = append(h.entries[:h.idx+1], raw)
	h.idx = len(h.entries) - 1
	h.mu.Unlock()
	h.notify()
}

// Raw returns the current entry's raw query string.
func (h *History) Raw() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[h.idx]
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// notify runs all subscribers. The list is copied before invocation so a
// subscriber may cancel itself or register others without deadlocking.
func (h *History) notify() {
	h.subMu.Lock()
	fns := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
