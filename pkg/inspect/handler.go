package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/vango-dev/modalhost/pkg/modal"
)

const (
	// DefaultWriteTimeout bounds a single websocket write.
	DefaultWriteTimeout = 10 * time.Second

	// sendQueue is the number of snapshots buffered per client. A client
	// that falls further behind is dropped.
	sendQueue = 16
)

// Handler serves a modal surface.
type Handler struct {
	surface      modal.Surface
	router       chi.Router
	logger       *slog.Logger
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
	queueSize    int

	mu          sync.RWMutex
	clients     map[*client]struct{}
	unsubscribe func()
}

// client is one websocket connection. Snapshots are queued and written by
// the client's own goroutine, so registry mutations never wait on a peer.
type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

// enqueue reports false when the client is closed or its queue is full.
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithWriteTimeout bounds each websocket write. Default: DefaultWriteTimeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// WithCheckOrigin sets the websocket origin check. The default accepts
// same-origin requests only.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = check
	}
}

// registrySource is implemented by surfaces that expose their registry,
// such as *modal.Controller. Only those can be streamed.
type registrySource interface {
	Registry() *modal.Registry
}

// NewHandler returns a handler serving s. Call Close to stop streaming.
func NewHandler(s modal.Surface, opts ...Option) *Handler {
	h := &Handler{
		surface: s,
		logger:  slog.Default().With("component", "modal-inspect"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		writeTimeout: DefaultWriteTimeout,
		queueSize:    sendQueue,
		clients:      make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	if src, ok := s.(registrySource); ok {
		h.unsubscribe = src.Registry().Subscribe(h.broadcast)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/modals", h.list)
	r.Post("/modals/{id}/hide", h.hide)
	r.Patch("/modals/{id}", h.update)
	r.Delete("/modals/{id}", h.destroy)
	r.Delete("/roots/{rootID}", h.destroyRoot)
	r.Get("/ws", h.stream)
	h.router = r
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// ClientCount returns the number of connected websocket clients.
func (h *Handler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close stops streaming and disconnects every websocket client.
func (h *Handler) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewSnapshot(h.surface.State()))
}

// lookup answers 404 and reports false when the modal does not exist.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, ok := h.surface.State()[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "modal not found"})
		return "", false
	}
	return id, true
}

func (h *Handler) hide(w http.ResponseWriter, r *http.Request) {
	id, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.surface.HideModal(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var partial modal.Props
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body must be a JSON object"})
		return
	}
	h.surface.UpdateModal(id, partial)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.surface.DestroyModal(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) destroyRoot(w http.ResponseWriter, r *http.Request) {
	h.surface.DestroyModalsByRootID(chi.URLParam(r, "rootID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	c := &client{
		conn: conn,
		send: make(chan []byte, h.queueSize),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	go h.write(c)

	if data, err := json.Marshal(NewSnapshot(h.surface.State())); err == nil {
		c.enqueue(data)
	}

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(c)
}

// write drains c's queue until the client is closed or a write fails.
func (h *Handler) write(c *client) {
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Debug("websocket write failed", "error", err)
				h.drop(c)
				return
			}
		}
	}
}

func (h *Handler) drop(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// broadcast sends a snapshot to all connected clients.
func (h *Handler) broadcast(state modal.State) {
	data, err := json.Marshal(NewSnapshot(state))
	if err != nil {
		h.logger.Warn("snapshot encoding failed", "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.enqueue(data) {
			h.logger.Debug("dropping slow websocket client")
			h.drop(c)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
