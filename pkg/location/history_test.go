package location

import "testing"

// TestHistoryReadWrite tests the replace and append write semantics.
func TestHistoryReadWrite(t *testing.T) {
	h := NewHistory("a=1")

	p, ok := h.ReadQuery()
	if !ok {
		t.Fatal("ReadQuery: unavailable")
	}
	if v, _ := p.Get("a"); v != "1" {
		t.Fatalf("Get: got %q, want 1", v)
	}

	p.Set("a", "2")
	h.WriteQuery(p, ActionReplace)
	if h.Len() != 1 || h.Raw() != "a=2" {
		t.Errorf("after replace: len=%d raw=%q", h.Len(), h.Raw())
	}

	p.Set("a", "3")
	h.WriteQuery(p, ActionAppend)
	if h.Len() != 2 || h.Raw() != "a=3" {
		t.Errorf("after append: len=%d raw=%q", h.Len(), h.Raw())
	}
}

// TestHistoryBackForward tests navigation and its notifications.
func TestHistoryBackForward(t *testing.T) {
	h := NewHistory("n=1")
	p, _ := h.ReadQuery()
	p.Set("n", "2")
	h.WriteQuery(p, ActionAppend)

	notified := 0
	h.Subscribe(func() { notified++ })

	if !h.Back() {
		t.Fatal("Back failed")
	}
	if h.Raw() != "n=1" {
		t.Errorf("Raw after back: got %q, want n=1", h.Raw())
	}
	if !h.Forward() {
		t.Fatal("Forward failed")
	}
	if h.Raw() != "n=2" {
		t.Errorf("Raw after forward: got %q, want n=2", h.Raw())
	}
	if notified != 2 {
		t.Errorf("notifications: got %d, want 2", notified)
	}

	if h.Forward() {
		t.Error("Forward at newest entry should fail")
	}
	h.Back()
	if h.Back() {
		t.Error("Back at oldest entry should fail")
	}
	if notified != 3 {
		t.Errorf("notifications: got %d, want 3", notified)
	}
}

// TestHistoryAppendTruncatesForward tests that writing after going back
// discards forward entries, like a browser.
func TestHistoryAppendTruncatesForward(t *testing.T) {
	h := NewHistory("n=1")
	p, _ := h.ReadQuery()
	p.Set("n", "2")
	h.WriteQuery(p, ActionAppend)
	p.Set("n", "3")
	h.WriteQuery(p, ActionAppend)

	h.Back() // at n=2
	p, _ = h.ReadQuery()
	p.Set("n", "9")
	h.WriteQuery(p, ActionAppend)

	if h.Len() != 3 {
		t.Errorf("Len: got %d, want 3", h.Len())
	}
	if h.Raw() != "n=9" {
		t.Errorf("Raw: got %q, want n=9", h.Raw())
	}
	if h.Forward() {
		t.Error("Forward should have nothing to land on")
	}
}

// TestHistoryNavigate tests simulated address-bar navigation.
func TestHistoryNavigate(t *testing.T) {
	h := NewHistory("a=1")
	notified := 0
	cancel := h.Subscribe(func() { notified++ })

	h.Navigate("?b=2")
	if h.Raw() != "b=2" {
		t.Errorf("Raw: got %q, want b=2", h.Raw())
	}
	if h.Len() != 2 {
		t.Errorf("Len: got %d, want 2", h.Len())
	}
	if notified != 1 {
		t.Errorf("notifications: got %d, want 1", notified)
	}

	cancel()
	cancel() // idempotent
	h.Navigate("c=3")
	if notified != 1 {
		t.Errorf("notifications after cancel: got %d, want 1", notified)
	}
}

// TestHistorySubscriberSelfCancel tests that a subscriber may cancel
// itself during notification.
func TestHistorySubscriberSelfCancel(t *testing.T) {
	h := NewHistory("")
	calls := 0
	var cancel func()
	cancel = h.Subscribe(func() {
		calls++
		cancel()
	})

	h.Navigate("a=1")
	h.Navigate("a=2")
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}

// TestUnavailable tests the degraded environment.
func TestUnavailable(t *testing.T) {
	var env Environment = Unavailable{}

	if _, ok := env.ReadQuery(); ok {
		t.Error("ReadQuery should report unavailable")
	}
	p := NewParams()
	p.Set("a", "1")
	env.WriteQuery(p, ActionAppend) // no-op, must not panic
	cancel := env.Subscribe(func() { t.Error("subscriber must never fire") })
	cancel()
}

// TestActionString tests the action labels.
func TestActionString(t *testing.T) {
	if ActionReplace.String() != "replace" {
		t.Errorf("got %q", ActionReplace.String())
	}
	if ActionAppend.String() != "append" {
		t.Errorf("got %q", ActionAppend.String())
	}
}
