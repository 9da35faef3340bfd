package upload

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pressproof/pressproof/backend-go/internal/editor"
	"github.com/pressproof/pressproof/backend-go/internal/session"
)

// Handler accepts image uploads for a session and feeds accepted candidates
// into the session's active collection.
type Handler struct {
	store    *Store
	sessions *session.Handler
}

func NewHandler(store *Store, sessions *session.Handler) *Handler {
	return &Handler{store: store, sessions: sessions}
}

// UploadResponse is returned on a successful upload: the entity as placed.
type UploadResponse struct {
	Image editor.Image `json:"image"`
}

// Upload handles POST /sessions/{sessionId}/upload (multipart form with a
// "file" field). Validation failures leave the session's collections
// untouched and are additionally pushed to the host as an error message.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	sessionID := mux.Vars(r)["sessionId"]
	s, ok := h.sessions.Authorize(r, sessionID)
	if !ok {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	cfg := s.Config()
	r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxFileSize)

	if err := r.ParseMultipartForm(cfg.MaxFileSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.reject(w, s, "file too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.reject(w, s, "malformed multipart body", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}

	decoded, err := Decode(data, header.Header.Get("Content-Type"), cfg)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.reject(w, s, err.Error(), status)
		return
	}

	name, err := h.store.Save(data, decoded.Format)
	if err != nil {
		slog.Error("save asset", "error", err)
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}

	var placed *editor.Image
	s.Do(func(ed *editor.Editor) {
		placed = ed.AddImage(editor.Candidate{
			SourceRef:     "/assets/" + name,
			NaturalWidth:  float64(decoded.Width),
			NaturalHeight: float64(decoded.Height),
		})
	})
	if placed == nil {
		http.Error(w, "invalid image dimensions", http.StatusBadRequest)
		return
	}

	slog.Info("image uploaded", "session", s.ID, "image", placed.ID,
		"format", decoded.Format, "width", decoded.Width, "height", decoded.Height)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UploadResponse{Image: *placed})
}

// reject reports an upload failure both on the HTTP response and through the
// session's error channel, so the host's error callback fires either way.
func (h *Handler) reject(w http.ResponseWriter, s *session.Session, msg string, status int) {
	s.SendError(msg)
	http.Error(w, msg, status)
}

// Serve returns an http.Handler for stored asset files. Names are content
// hashes, so files are immutable and cache forever.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.store.Dir()))
	return http.StripPrefix("/assets/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}
