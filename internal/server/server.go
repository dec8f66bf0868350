package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/lox/solitaire/internal/rules"
	"github.com/lox/solitaire/internal/shuffle"
	"github.com/lox/solitaire/internal/view"
)

// Server represents the WebSocket server
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	sessions    map[*Session]bool
	register    chan *Session
	unregister  chan *Session
	registry    *rules.Registry
	defaultGame string
	geom        view.Geometry
	clock       quartz.Clock
	newRand     func() shuffle.Source
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	runOnce     sync.Once
	router      chi.Router
	httpServer  *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithDefaultGame deals the named game as soon as a client connects.
func WithDefaultGame(name string) Option {
	return func(s *Server) { s.defaultGame = name }
}

// WithGeometry sets the board geometry handed to every session.
func WithGeometry(g view.Geometry) Option {
	return func(s *Server) { s.geom = g }
}

// WithClock sets the clock used for timers and message timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithRandFactory sets how each new game gets its shuffle randomness.
func WithRandFactory(fn func() shuffle.Source) Option {
	return func(s *Server) { s.newRand = fn }
}

// NewServer creates a new WebSocket server
func NewServer(addr string, registry *rules.Registry, logger *log.Logger, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions:   make(map[*Session]bool),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		registry:   registry,
		geom:       view.DefaultGeometry(),
		clock:      quartz.NewReal(),
		logger:     logger.WithPrefix("server"),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/health", s.handleHealth)
	r.Get("/api/games", s.handleGames)
	s.router = r

	return s
}

// Handler returns the HTTP handler serving every route. The session loop
// is started on first use.
func (s *Server) Handler() http.Handler {
	s.runOnce.Do(func() { go s.run() })
	return s.router
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		return nil
	}
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and closes every session.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.httpServer
	s.mu.RUnlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}
	s.Stop()
	return err
}

// Stop closes every session and ends the session loop.
func (s *Server) Stop() {
	s.cancel()

	s.mu.Lock()
	for sess := range s.sessions {
		_ = sess.Close()
	}
	s.mu.Unlock()
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// run handles session lifecycle
func (s *Server) run() {
	for {
		select {
		case sess := <-s.register:
			s.mu.Lock()
			s.sessions[sess] = true
			total := len(s.sessions)
			s.mu.Unlock()
			s.logger.Info("Client connected", "session", sess.ID(), "total", total)

		case sess := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.sessions[sess]; ok {
				delete(s.sessions, sess)
				_ = sess.Close()
			}
			total := len(s.sessions)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "session", sess.ID(), "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	sess := NewSession(conn, s)
	select {
	case s.register <- sess:
	case <-s.ctx.Done():
		_ = conn.Close()
		return
	}
	sess.Start()

	go func() {
		<-sess.Done()
		select {
		case s.unregister <- sess:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// handleGames lists the registered games as JSON.
func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(GameListData{
		Games:   s.registry.List(),
		Default: s.defaultGame,
	})
}
