package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pokerduel/pokerduel/internal/engine"
	"github.com/pokerduel/pokerduel/internal/registry"
)

// Directory is the player registry surface the API needs.
type Directory interface {
	Register(ctx context.Context, phone, name string) error
	ResolvePhone(ctx context.Context, identifier string) (string, error)
	Name(ctx context.Context, phone string) string
	ToggleAvailability(ctx context.Context, phone string) (bool, error)
	Available(ctx context.Context, phone string) (bool, error)
	SetSchedule(ctx context.Context, phone, schedule string) (*registry.Schedule, error)
	GetSchedule(ctx context.Context, phone string) (*registry.Schedule, error)
}

// Inviter manages pending match invitations.
type Inviter interface {
	Send(ctx context.Context, matchID string, phones []string) error
	Accept(ctx context.Context, matchID, phone string) error
}

// Server exposes the duel engine over an HTTP JSON API plus a websocket
// event feed per match.
type Server struct {
	engine      *engine.Engine
	directory   Directory
	invites     Inviter
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	httpSrv     *http.Server
	promReg     *prometheus.Registry
}

// NewServer wires the API around an engine, directory and invite store.
// promReg may be nil to disable the /metrics endpoint.
func NewServer(eng *engine.Engine, directory Directory, invites Inviter, promReg *prometheus.Registry, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		engine:    eng,
		directory: directory,
		invites:   invites,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
		promReg:     promReg,
	}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/availability", s.handleToggleAvailability)
	mux.HandleFunc("GET /api/availability", s.handleGetAvailability)
	mux.HandleFunc("POST /api/schedule", s.handleSetSchedule)
	mux.HandleFunc("GET /api/schedule", s.handleGetSchedule)
	mux.HandleFunc("POST /api/matches", s.handleStartMatch)
	mux.HandleFunc("GET /api/matches/{id}", s.handleStatus)
	mux.HandleFunc("GET /api/matches/{id}/hand", s.handleHand)
	mux.HandleFunc("POST /api/matches/{id}/bet", s.handleBet)
	mux.HandleFunc("POST /api/matches/{id}/discard", s.handleDiscard)
	mux.HandleFunc("POST /api/matches/{id}/accept", s.handleAcceptInvite)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)

	if s.promReg != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.promReg, promhttp.HandlerOpts{}))
	}

	return mux
}

// Start runs the connection registry and serves HTTP until Shutdown.
func (s *Server) Start(addr string) error {
	go s.run()

	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	s.logger.Info("Starting server", "addr", addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP listener and closes all watcher connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.httpSrv != nil {
		return s.httpSrv.Shutdown(ctx)
	}
	return nil
}

// run handles watcher connection lifecycle.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Watcher connected", "match", conn.MatchID(), "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Watcher disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// Broadcast sends a message to every watcher of a match.
func (s *Server) Broadcast(matchID string, msg *Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		if conn.MatchID() == matchID {
			_ = conn.Send(msg)
		}
	}
}

// broadcastEvents fans a reducer's events out to the match's watchers.
func (s *Server) broadcastEvents(matchID string, snap *engine.Snapshot) {
	if snap == nil || len(snap.Events) == 0 {
		return
	}
	for _, msg := range messagesFromEvents(matchID, snap.Events) {
		s.Broadcast(matchID, msg)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("match")
	if matchID == "" {
		http.Error(w, "match query parameter required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, matchID, s.logger)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
