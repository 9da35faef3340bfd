package session

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/pressproof/pressproof/backend-go/internal/editor"
	"github.com/pressproof/pressproof/backend-go/internal/typeid"
)

// Session binds one editor instance to its host connection. The editor is
// single-threaded; the session serializes every entry point (WebSocket
// messages and HTTP upload/export) so events are processed strictly in
// delivery order, one at a time.
type Session struct {
	ID string

	mu sync.Mutex // serializes editor access
	ed *editor.Editor

	clientsMu sync.RWMutex
	clients   map[string]*Client

	lastActive time.Time
}

func newSession(cfg editor.Config) *Session {
	s := &Session{
		ID:         typeid.NewSessionID(),
		ed:         editor.New(cfg),
		clients:    make(map[string]*Client),
		lastActive: time.Now(),
	}
	s.ed.SetOnChange(s.broadcastChange)
	return s
}

// Do runs fn with exclusive access to the session's editor. Change
// notifications triggered inside fn are broadcast before Do returns.
func (s *Session) Do(fn func(*editor.Editor)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	fn(s.ed)
}

// Snapshot returns the current combined editor state.
func (s *Session) Snapshot() editor.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ed.Snapshot()
}

// Config returns the session's resolved editor configuration.
func (s *Session) Config() editor.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ed.Config()
}

// IdleSince reports how long the session has been without activity.
func (s *Session) IdleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}

func (s *Session) addClient(c *Client) {
	s.clientsMu.Lock()
	s.clients[c.ClientID] = c
	s.clientsMu.Unlock()
}

func (s *Session) removeClient(c *Client) {
	s.clientsMu.Lock()
	delete(s.clients, c.ClientID)
	s.clientsMu.Unlock()
}

func (s *Session) broadcastChange(snap editor.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		slog.Error("marshal snapshot", "error", err)
		return
	}
	s.broadcast(&Message{Type: TypeChange, SessionID: s.ID, Payload: payload})
}

// SendError pushes a human-readable failure (upload, decode) to the host.
// Constraint clamping and no-op handling never route through here.
func (s *Session) SendError(msg string) {
	payload, _ := json.Marshal(ErrorPayload{Message: msg})
	s.broadcast(&Message{Type: TypeError, SessionID: s.ID, Payload: payload})
}

func (s *Session) broadcast(msg *Message) {
	s.clientsMu.RLock()
	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.clientsMu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

// handleMessage dispatches one inbound host message. Unknown types and
// malformed payloads are logged and dropped; nothing here surfaces an error
// back across the boundary.
func (s *Session) handleMessage(c *Client, msg *Message) {
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp, TypePointerCancel:
		var ev editor.PointerEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			slog.Warn("invalid pointer payload", "error", err, "session", s.ID)
			return
		}
		s.Do(func(ed *editor.Editor) {
			switch msg.Type {
			case TypePointerDown:
				ed.PointerDown(ev)
			case TypePointerMove:
				ed.PointerMove(ev)
			case TypePointerUp:
				ed.PointerUp(ev)
			case TypePointerCancel:
				ed.PointerCancel(ev)
			}
		})

	case TypeOpSelect:
		var p TargetPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.Do(func(ed *editor.Editor) { ed.Select(p.ID) })

	case TypeOpDelete:
		var p TargetPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.Do(func(ed *editor.Editor) { ed.Delete(p.ID) })

	case TypeOpDeleteSelected:
		s.Do(func(ed *editor.Editor) { ed.DeleteSelected() })

	case TypeOpBringToFront:
		var p TargetPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.Do(func(ed *editor.Editor) { ed.BringToFront(p.ID) })

	case TypeOpSendToBack:
		var p TargetPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.Do(func(ed *editor.Editor) { ed.SendToBack(p.ID) })

	case TypeOpReorder:
		var p ReorderPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.Do(func(ed *editor.Editor) { ed.Reorder(p.From, p.To) })

	case TypeOpUpdateTransform:
		var p UpdateTransformPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.Do(func(ed *editor.Editor) { ed.UpdateTransform(p.ID, p.Transform) })

	case TypeOpSetActiveView:
		var p SetActiveViewPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.Do(func(ed *editor.Editor) { ed.SetActiveView(p.View) })

	case TypeOpSetDisplayScale:
		var p SetDisplayScalePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.Do(func(ed *editor.Editor) { ed.SetDisplayScale(p.Scale) })

	case TypeOpAddImage:
		// Pre-decoded candidate: the host already knows the asset reference
		// and natural dimensions (uploads go through HTTP instead).
		var c editor.Candidate
		if err := json.Unmarshal(msg.Payload, &c); err != nil {
			return
		}
		s.Do(func(ed *editor.Editor) { ed.AddImage(c) })

	default:
		slog.Warn("unknown message type", "type", msg.Type, "session", s.ID)
	}
}
