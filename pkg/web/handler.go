package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/melba-ui/melba/pkg/container"
	"github.com/melba-ui/melba/pkg/toast"
)

// Connection timing defaults. The heartbeat must stay comfortably
// below the read timeout so an idle but healthy client is never cut.
const (
	defaultReadTimeout  = 60 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultHeartbeat    = 30 * time.Second
)

type config struct {
	log          *slog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration
	heartbeat    time.Duration
	checkOrigin  func(*http.Request) bool
	middlewares  []Middleware
	allowShow    bool
}

func defaultConfig() config {
	return config{
		log:          slog.Default().With("component", "web"),
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
		heartbeat:    defaultHeartbeat,
		checkOrigin:  SameOriginCheck,
	}
}

// HandlerOption configures the bridge handler.
type HandlerOption func(*config)

// WithLogger sets the logger for connection lifecycle and frame
// errors.
func WithLogger(log *slog.Logger) HandlerOption {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithCheckOrigin replaces the WebSocket origin check. The default is
// SameOriginCheck.
func WithCheckOrigin(fn func(*http.Request) bool) HandlerOption {
	return func(c *config) {
		if fn != nil {
			c.checkOrigin = fn
		}
	}
}

// WithMiddleware appends middleware to the inbound event chain. The
// first middleware added runs outermost.
func WithMiddleware(mws ...Middleware) HandlerOption {
	return func(c *config) {
		c.middlewares = append(c.middlewares, mws...)
	}
}

// WithShowEnabled lets clients create toasts with show frames. Meant
// for demo pages; leave it off when toasts originate server-side.
func WithShowEnabled() HandlerOption {
	return func(c *config) { c.allowShow = true }
}

// WithHeartbeat sets the ping interval for idle connection keepalive.
func WithHeartbeat(d time.Duration) HandlerOption {
	return func(c *config) {
		if d > 0 {
			c.heartbeat = d
		}
	}
}

// SameOriginCheck accepts requests whose Origin host matches the
// request host, and requests without an Origin header. This is the
// default WebSocket origin policy.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}

	return originURL.Host == host
}

type handler struct {
	mgr      *toast.Manager
	cfg      config
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// Handler returns the HTTP surface of the bridge:
//
//	GET /ws      WebSocket endpoint (reducedMotion=1 opts in to reduced motion)
//	GET /toasts  JSON snapshot of the visible window, grouped by container
//	GET /healthz liveness probe
//
// Mount it wherever the host serves the page that renders the toasts.
func Handler(m *toast.Manager, opts ...HandlerOption) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &handler{
		mgr: m,
		cfg: cfg,
		log: cfg.log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     cfg.checkOrigin,
		},
	}

	r := chi.NewRouter()
	r.Get("/healthz", h.health)
	r.Get("/toasts", h.snapshot)
	r.Get("/ws", h.serveWS)
	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type snapshotResponse struct {
	Containers map[string][]toastJSON `json:"containers"`
}

func (h *handler) snapshot(w http.ResponseWriter, r *http.Request) {
	resp := snapshotResponse{
		Containers: encodeContainers(container.Split(h.mgr.Visible())),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("snapshot encode failed", "error", err)
	}
}

func (h *handler) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}

	reduced := r.URL.Query().Get("reducedMotion") == "1"
	s := newSession(conn, h.mgr, h.cfg, reduced)
	s.log.Debug("session started", "reduced_motion", reduced)
	s.run(r.Context())
	s.log.Debug("session ended")
}
