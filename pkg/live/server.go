package live

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Server accepts WebSocket connections and turns each into a Session. The
// OnSession callback is the composition root: it runs once per connection,
// after the client's hello frame has established the initial query, and is
// where the application creates its bindings.
type Server struct {
	onSession func(*Session)
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	upgrader  websocket.Upgrader
	nextID    atomic.Uint64
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics attaches Prometheus instruments to the server's sessions.
func WithMetrics(m *Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithTracing traces inbound navigation frames with the named otel tracer.
func WithTracing(name string) ServerOption {
	return func(s *Server) {
		s.tracer = otel.Tracer(name)
	}
}

// WithCheckOrigin sets the WebSocket origin check. The default accepts only
// same-origin requests.
func WithCheckOrigin(fn func(r *http.Request) bool) ServerOption {
	return func(s *Server) {
		s.upgrader.CheckOrigin = fn
	}
}

// NewServer creates a Server whose sessions are handed to onSession.
func NewServer(onSession func(*Session), opts ...ServerOption) *Server {
	s := &Server{
		onSession: onSession,
		logger:    slog.Default().With("component", "querybind.live"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the server's routes: the demo page at / and the session
// endpoint at /ws.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.serveIndex)
	r.Get("/ws", s.ServeWS)
	return r
}

// ServeWS upgrades the request and runs a session until the client goes
// away. It can be mounted directly on any router when the default Handler
// layout does not fit.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	var hello frame
	if err := conn.ReadJSON(&hello); err != nil || hello.Type != frameHello {
		s.logger.Warn("handshake failed", "err", err)
		_ = conn.Close()
		return
	}

	sess := newSession(s.nextID.Add(1), conn, hello.Query, s.logger, s.metrics, s.tracer)
	s.metrics.RecordSessionStart()
	s.logger.Info("session started", "session", sess.ID(), "query", hello.Query)

	go sess.writeLoop()

	if s.onSession != nil {
		s.runOnSession(sess)
	}

	sess.readLoop()
	sess.Close()
	s.metrics.RecordSessionEnd()
	s.logger.Info("session closed", "session", sess.ID())
}

// runOnSession invokes the composition callback with panic recovery, so a
// faulty root cannot take down the connection handler.
func (s *Server) runOnSession(sess *Session) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("session setup panic", "session", sess.ID(), "panic", r)
		}
	}()
	s.onSession(sess)
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

// indexHTML is the thin client: it reports the initial query on connect,
// applies url frames with pushState/replaceState, and reports popstate back
// as navigate frames.
const indexHTML = `<!doctype html>
<meta charset="utf-8">
<title>querybind live</title>
<pre id="log"></pre>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
const log = (line) => { document.getElementById("log").textContent += line + "\n"; };
ws.onopen = () => ws.send(JSON.stringify({type: "hello", query: location.search.slice(1)}));
ws.onmessage = (e) => {
  const f = JSON.parse(e.data);
  if (f.type !== "url") return;
  const url = f.query ? "?" + f.query : location.pathname;
  if (f.mode === "push") history.pushState(null, "", url);
  else history.replaceState(null, "", url);
  log("url " + f.mode + " " + (f.query || "(empty)"));
};
window.addEventListener("popstate", () => {
  ws.send(JSON.stringify({type: "navigate", query: location.search.slice(1)}));
});
</script>
`
