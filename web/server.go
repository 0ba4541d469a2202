package web

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"hotphrase/action"
	"hotphrase/config"
	"hotphrase/store"
)

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local dashboard only
	},
}

// EngineControl is the slice of the engine the dashboard may drive.
type EngineControl interface {
	RequestReload()
	Paused() bool
	SetPaused(paused bool)
	CancelReplay()
}

// Server is the dashboard web server.
type Server struct {
	db     *store.DB
	config *config.Config
	engine EngineControl
	port   int
	hub    *Hub
	mu     sync.RWMutex
}

// NewServer creates a new dashboard server.
func NewServer(db *store.DB, cfg *config.Config, engine EngineControl, port int) *Server {
	hub := NewHub()
	go hub.Run()

	return &Server{
		db:     db,
		config: cfg,
		engine: engine,
		port:   port,
		hub:    hub,
	}
}

// Start runs the web server; it blocks.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shortcuts", s.handleShortcuts)
	mux.HandleFunc("/api/shortcuts/", s.handleShortcutByName)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/reload", s.handleReload)
	mux.HandleFunc("/api/replay/cancel", s.handleCancelReplay)
	mux.HandleFunc("/ws", s.handleWebSocket)

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(staticFS)))

	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("Starting dashboard", "port", s.port, "url", fmt.Sprintf("http://localhost:%d", s.port))

	return http.ListenAndServe(addr, mux)
}

// GetConfig returns the current configuration (thread-safe).
func (s *Server) GetConfig() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// BroadcastStatus pushes an engine status change to all clients.
func (s *Server) BroadcastStatus(status string) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeStatus,
		Data: map[string]string{"status": status},
	})
}

// BroadcastTrigger pushes one fired trigger to all clients.
func (s *Server) BroadcastTrigger(r *store.TriggerRecord) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeTrigger,
		Data: r,
	})
}

// BroadcastMenu hands a dynamic-menu request to the dashboard for
// rendering at the captured pointer position.
func (s *Server) BroadcastMenu(req action.MenuRequest) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeMenu,
		Data: req,
	})
}

// handleWebSocket upgrades a dashboard connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
