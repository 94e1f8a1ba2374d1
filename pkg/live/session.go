package live

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/querybind/pkg/location"
)

// outboundBuffer is the per-session queue depth for server→client frames.
// A full buffer drops the frame rather than blocking the writer; the
// client's next navigate resynchronizes it.
const outboundBuffer = 32

// Session is one connected client. It implements location.Environment over
// a server-side mirror of the client's query string.
//
// A closed session reads as unavailable and absorbs writes, so bindings
// composed against it degrade silently when the client goes away.
type Session struct {
	id      uint64
	conn    *websocket.Conn
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	mu     sync.RWMutex
	query  string
	closed bool

	subMu  sync.Mutex
	nextID uint64
	subs   map[uint64]func()

	out       chan frame
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(id uint64, conn *websocket.Conn, initialQuery string, logger *slog.Logger, metrics *Metrics, tracer trace.Tracer) *Session {
	return &Session{
		id:      id,
		conn:    conn,
		logger:  logger.With("session", id),
		metrics: metrics,
		tracer:  tracer,
		query:   strings.TrimPrefix(initialQuery, "?"),
		subs:    make(map[uint64]func()),
		out:     make(chan frame, outboundBuffer),
		done:    make(chan struct{}),
	}
}

// ID returns the session's server-assigned identifier.
func (s *Session) ID() uint64 { return s.id }

// ReadQuery returns the mirrored query parameters. A closed session reports
// unavailable.
func (s *Session) ReadQuery() (location.Params, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return location.Params{}, false
	}
	return location.ParseQuery(s.query), true
}

// WriteQuery updates the mirror and queues a url frame for the client. The
// frame is dropped, with a metric, if the outbound buffer is full; the
// mirror is authoritative either way.
func (s *Session) WriteQuery(p location.Params, action location.Action) {
	raw := p.Encode()
	mode := modeReplace
	if action == location.ActionAppend {
		mode = modePush
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.query = raw
	s.mu.Unlock()

	select {
	case s.out <- frame{Type: frameURL, Query: raw, Mode: mode}:
		s.metrics.RecordFrameSent()
	default:
		s.metrics.RecordFrameDropped()
		s.logger.Warn("outbound frame dropped", "query", raw)
	}
}

// Subscribe registers fn to run on every inbound navigate frame. The
// returned cancel releases the subscription and is idempotent.
func (s *Session) Subscribe(fn func()) (cancel func()) {
	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Close tears the session down: the mirror becomes unavailable, the write
// loop stops, and the connection closes. Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.done)
		_ = s.conn.Close()
	})
}

// Done is closed when the session has shut down.
func (s *Session) Done() <-chan struct{} { return s.done }

// readLoop consumes client frames until the connection fails. It runs on
// the connection's handler goroutine; all navigation subscribers run here,
// serialized per session.
func (s *Session) readLoop() {
	for {
		var f frame
		if err := s.conn.ReadJSON(&f); err != nil {
			if !s.isClosed() {
				s.logger.Debug("read loop ended", "err", err)
			}
			return
		}
		switch f.Type {
		case frameNavigate:
			s.handleNavigate(f)
		default:
			s.logger.Debug("unknown frame type", "type", f.Type)
		}
	}
}

// handleNavigate applies an inbound navigation: update the mirror, then
// notify subscribers.
func (s *Session) handleNavigate(f frame) {
	s.metrics.RecordNavEvent()

	var span trace.Span
	if s.tracer != nil {
		_, span = s.tracer.Start(context.Background(), "querybind.navigate",
			trace.WithAttributes(
				attribute.Int64("session.id", int64(s.id)),
				attribute.String("query", f.Query),
			))
		defer span.End()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.query = strings.TrimPrefix(f.Query, "?")
	s.mu.Unlock()

	s.notify()
}

// notify runs all navigation subscribers, copy-before-notify so a
// subscriber may cancel itself without deadlocking.
func (s *Session) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// writeLoop drains the outbound queue onto the connection.
func (s *Session) writeLoop() {
	for {
		select {
		case f := <-s.out:
			if err := s.conn.WriteJSON(f); err != nil {
				s.metrics.RecordWriteError()
				if !s.isClosed() {
					s.logger.Debug("write loop ended", "err", err)
				}
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Session) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
