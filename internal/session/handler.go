package session

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pressproof/pressproof/backend-go/internal/editor"
)

// Handler exposes session lifecycle over HTTP.
type Handler struct {
	hub    *Hub
	tokens *TokenIssuer
}

func NewHandler(hub *Hub, tokens *TokenIssuer) *Handler {
	return &Handler{hub: hub, tokens: tokens}
}

// CreateResponse is returned from POST /sessions.
type CreateResponse struct {
	SessionID string        `json:"sessionId"`
	Token     string        `json:"token"`
	Config    editor.Config `json:"config"`
}

// Create handles POST /sessions. The body is the host's editor config
// overrides as JSON; width and height are required, everything else
// resolves from defaults.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cfg editor.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid config: "+err.Error(), http.StatusBadRequest)
		return
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		http.Error(w, "canvas width and height must be positive", http.StatusBadRequest)
		return
	}

	s := h.hub.CreateSession(cfg)

	token, err := h.tokens.Issue(s.ID)
	if err != nil {
		slog.Error("issue session token", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CreateResponse{
		SessionID: s.ID,
		Token:     token,
		Config:    s.Config(),
	})
}

// Authorize resolves the session named in the request path and checks that
// the bearer token (query param or Authorization header) is scoped to it.
func (h *Handler) Authorize(r *http.Request, sessionID string) (*Session, bool) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.Header.Get("Authorization")
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}
	}
	if token == "" {
		return nil, false
	}

	sub, err := h.tokens.Validate(token)
	if err != nil || sub != sessionID {
		return nil, false
	}
	return h.sessionByID(sessionID)
}

func (h *Handler) sessionByID(id string) (*Session, bool) {
	return h.hub.Get(id)
}
