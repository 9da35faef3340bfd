package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pressproof/pressproof/backend-go/internal/compositor"
	"github.com/pressproof/pressproof/backend-go/internal/config"
	mw "github.com/pressproof/pressproof/backend-go/internal/middleware"
	"github.com/pressproof/pressproof/backend-go/internal/session"
	"github.com/pressproof/pressproof/backend-go/internal/upload"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	origins := strings.Split(cfg.AllowedOrigins, ",")

	hub := session.NewHub(time.Duration(cfg.SessionIdleMins) * time.Minute)
	go hub.Run()

	tokens := session.NewTokenIssuer(cfg.JWTSecret)
	sessionHandler := session.NewHandler(hub, tokens)

	store := upload.NewStore(cfg.AssetDir)
	uploadHandler := upload.NewHandler(store, sessionHandler)
	exportHandler := compositor.NewHandler(store, sessionHandler)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(origins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Session lifecycle
	r.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")

	// Upload pipeline + stored assets
	r.HandleFunc("/sessions/{sessionId}/upload", uploadHandler.Upload).Methods("POST", "OPTIONS")
	r.PathPrefix("/assets/").Handler(uploadHandler.Serve()).Methods("GET")

	// Export
	r.HandleFunc("/sessions/{sessionId}/export/{view}", exportHandler.Export).Methods("GET")

	// WebSocket endpoint: the host attaches here to inject pointer events
	// and editor ops, and to receive change notifications.
	r.HandleFunc("/ws/session/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, sessionHandler, origins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, sessions *session.Handler, origins []string) {
	vars := mux.Vars(r)
	sessionID := vars["sessionId"]

	if _, ok := sessions.Authorize(r, sessionID); !ok {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		patterns = append(patterns, strings.TrimPrefix(strings.TrimPrefix(o, "http://"), "https://"))
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: patterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := session.NewClient(hub, conn, sessionID, uuid.New().String())
	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
