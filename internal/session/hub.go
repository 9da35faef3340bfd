package session

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/pressproof/pressproof/backend-go/internal/editor"
)

// Hub owns the session registry. Client attach/detach runs through its
// goroutine; session lookup is lock-protected for the HTTP handlers.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	register    chan *Client
	unregister  chan *Client
	quit        chan struct{}
	idleTimeout time.Duration
}

func NewHub(idleTimeout time.Duration) *Hub {
	return &Hub{
		sessions:    make(map[string]*Session),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		quit:        make(chan struct{}),
		idleTimeout: idleTimeout,
	}
}

// CreateSession starts a session with the given (unresolved) editor config.
func (h *Hub) CreateSession(cfg editor.Config) *Session {
	s := newSession(cfg)
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	slog.Info("session created", "session", s.ID)
	return s
}

// Get returns a live session by id.
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

func (h *Hub) Run() {
	sweep := time.NewTicker(time.Minute)
	defer sweep.Stop()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-sweep.C:
			h.sweepIdle()
		case <-h.quit:
			return
		}
	}
}

// Stop terminates the hub goroutine.
func (h *Hub) Stop() {
	close(h.quit)
}

// Register hands a freshly accepted client to the hub goroutine. After Stop
// the hub no longer drains the channel, so the client's send channel is
// closed instead, which lets its write pump exit.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.quit:
		close(client.send)
	}
}

// Unregister detaches a client. A no-op once the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.RLock()
	s, ok := h.sessions[client.SessionID]
	h.mu.RUnlock()
	if !ok {
		slog.Warn("client for unknown session", "session", client.SessionID)
		close(client.send)
		return
	}

	s.addClient(client)

	// A fresh attach gets the full current state immediately.
	payload, err := json.Marshal(s.Snapshot())
	if err == nil {
		client.Send(&Message{Type: TypeWelcome, SessionID: s.ID, Payload: payload})
	}

	slog.Info("client attached", "session", s.ID, "client", client.ClientID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.RLock()
	s, ok := h.sessions[client.SessionID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	s.removeClient(client)
	close(client.send)

	slog.Info("client detached", "session", s.ID, "client", client.ClientID)
}

// sweepIdle drops sessions without activity past the idle timeout. State is
// in-memory only, so an expired session is simply gone.
func (h *Hub) sweepIdle() {
	now := time.Now()

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.sessions {
		if s.IdleSince(now) > h.idleTimeout {
			delete(h.sessions, id)
			slog.Info("session expired", "session", id)
		}
	}
}
