package compositor

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pressproof/pressproof/backend-go/internal/editor"
	"github.com/pressproof/pressproof/backend-go/internal/session"
	"github.com/pressproof/pressproof/backend-go/internal/upload"
)

// Handler rasterizes a session view on demand.
type Handler struct {
	store    *upload.Store
	sessions *session.Handler
}

func NewHandler(store *upload.Store, sessions *session.Handler) *Handler {
	return &Handler{store: store, sessions: sessions}
}

// Export handles GET /sessions/{sessionId}/export/{view}. The optional
// "background" query parameter names a stored asset to draw under the
// images; absent, the canvas stays transparent. Output is a single PNG.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]
	view := editor.View(vars["view"])

	s, ok := h.sessions.Authorize(r, sessionID)
	if !ok {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}
	if !view.Valid() {
		http.Error(w, "unknown view: "+string(view), http.StatusBadRequest)
		return
	}

	var background image.Image
	if name := r.URL.Query().Get("background"); name != "" {
		bg, err := h.store.Open(name)
		if err != nil {
			http.Error(w, "unknown background asset", http.StatusBadRequest)
			return
		}
		background = bg
	}

	snap := s.Snapshot()
	out, err := Render(s.Config(), snap.ViewImages[view], background, h.open)
	if err != nil {
		slog.Error("render export", "error", err, "session", s.ID, "view", view)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.png"`, s.ID, view))
	if err := png.Encode(w, out); err != nil {
		slog.Error("encode export", "error", err, "session", s.ID)
	}

	slog.Info("export complete", "session", s.ID, "view", view, "images", len(snap.ViewImages[view]))
}

// open maps an entity source reference ("/assets/<name>") back to the stored
// file.
func (h *Handler) open(sourceRef string) (image.Image, error) {
	return h.store.Open(sourceRef)
}
