package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lox/solitaire/internal/controller"
	"github.com/lox/solitaire/internal/drag"
	"github.com/lox/solitaire/internal/rules"
	"github.com/lox/solitaire/internal/shuffle"
	"github.com/lox/solitaire/internal/view"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// ErrConnectionClosed is returned when a message cannot be queued.
var ErrConnectionClosed = errors.New("session closed")

// Session is one browser connection playing one game at a time. Messages
// are handled in arrival order on the read goroutine, which is the only
// goroutine that touches the controller.
type Session struct {
	id        string
	conn      *websocket.Conn
	send      chan *Message
	registry  *rules.Registry
	geom      view.Geometry
	clock     quartz.Clock
	newRand   func() shuffle.Source
	autoStart string
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu   sync.Mutex
	ctrl *controller.Controller
}

// NewSession wraps conn. autoStart names a game to deal as soon as the
// session starts; empty leaves the client to ask for one.
func NewSession(conn *websocket.Conn, s *Server) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()

	return &Session{
		id:        id,
		conn:      conn,
		send:      make(chan *Message, 256),
		registry:  s.registry,
		geom:      s.geom,
		clock:     s.clock,
		newRand:   s.newRand,
		autoStart: s.defaultGame,
		logger:    s.logger.WithPrefix("session").With("session", id),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

// Start begins handling the connection
func (s *Session) Start() {
	go s.writePump()
	go s.readPump()
}

// Done is closed once the session has shut down.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Close closes the connection
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.send)
		err = s.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (s *Session) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed during shutdown
			s.logger.Debug("Attempted to send message on closed session", "error", r)
		}
	}()

	select {
	case s.send <- msg:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		s.logger.Warn("Session send buffer full, closing connection")
		_ = s.Close()
		return ErrConnectionClosed
	}
}

func (s *Session) controller() *controller.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl
}

func (s *Session) setController(c *controller.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl != nil {
		s.ctrl.Abort()
	}
	s.ctrl = c
}

// readPump handles incoming messages from the client
func (s *Session) readPump() {
	defer func() {
		if c := s.controller(); c != nil {
			if effects := c.Abort(); len(effects) > 0 {
				s.logger.Info("Aborted drag on disconnect", "source", effects[0].Source)
			}
		}
		_ = s.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	if s.autoStart != "" {
		s.handleStartGame(StartGameData{Game: s.autoStart})
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		var msg Message
		err := s.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		s.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (s *Session) writePump() {
	ticker := s.clock.NewTicker(pingPeriod, "session", "ping")
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.conn.WriteJSON(message); err != nil {
				s.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (s *Session) handleMessage(msg *Message) {
	s.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeListGames:
		s.handleListGames()

	case MessageTypeStartGame:
		var data StartGameData
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				s.sendError("invalid_message", "Failed to parse start game data")
				return
			}
		}
		s.handleStartGame(data)

	case MessageTypeRestartGame:
		s.handleRestart()

	case MessageTypeNewGame:
		s.handleNewGame()

	case MessageTypePointer:
		var data PointerData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			s.sendError("invalid_message", "Failed to parse pointer data")
			return
		}
		ev, err := data.Event()
		if err != nil {
			s.sendError("invalid_message", err.Error())
			return
		}
		s.handleEvent(ev)

	case MessageTypeClick:
		var data ClickData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			s.sendError("invalid_message", "Failed to parse click data")
			return
		}
		ev := drag.At(drag.Click, 0, 0)
		ev.CardID = data.CardID
		s.handleEvent(ev)

	default:
		s.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (s *Session) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	}, s.clock.Now())
	if err != nil {
		s.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = s.SendMessage(errorMsg)
}

func (s *Session) reply(messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data, s.clock.Now())
	if err != nil {
		s.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	_ = s.SendMessage(msg)
}

func (s *Session) handleListGames() {
	s.reply(MessageTypeGameList, GameListData{
		Games:   s.registry.List(),
		Default: s.autoStart,
	})
}

func (s *Session) handleStartGame(data StartGameData) {
	name := data.Game
	if name == "" {
		name = s.autoStart
	}
	s.logger.Info("Start game request", "game", name)

	game, err := s.registry.Lookup(name)
	if err != nil {
		if errors.Is(err, rules.ErrGameNotFound) {
			s.sendError("game_not_found", err.Error())
			return
		}
		s.sendError("game_unavailable", err.Error())
		return
	}

	opts := []controller.Option{
		controller.WithLogger(s.logger),
		controller.WithClock(s.clock),
		controller.WithGeometry(s.geom),
	}
	if s.newRand != nil {
		opts = append(opts, controller.WithRand(s.newRand()))
	}
	c, err := controller.New(game, opts...)
	if err != nil {
		s.sendError("game_unavailable", err.Error())
		return
	}
	if err := c.BeginGamePlay(true); err != nil {
		s.sendError("deal_failed", err.Error())
		return
	}

	s.setController(c)
	s.sendBoard()
}

func (s *Session) handleRestart() {
	c := s.controller()
	if c == nil {
		s.sendError("no_game", "No game in progress")
		return
	}
	if err := c.Restart(); err != nil {
		s.sendError("restart_failed", err.Error())
		return
	}
	s.sendBoard()
}

func (s *Session) handleNewGame() {
	c := s.controller()
	if c == nil {
		s.sendError("no_game", "No game in progress")
		return
	}
	if err := c.NewGame(); err != nil {
		s.sendError("deal_failed", err.Error())
		return
	}
	s.sendBoard()
}

func (s *Session) handleEvent(ev drag.Event) {
	c := s.controller()
	if c == nil {
		s.sendError("no_game", "No game in progress")
		return
	}

	effects, err := c.Dispatch(ev)
	if err != nil {
		if errors.Is(err, drag.ErrUnknownCard) {
			s.sendError("unknown_card", err.Error())
			return
		}
		s.sendError("dispatch_failed", err.Error())
		return
	}
	if len(effects) == 0 {
		return
	}

	s.reply(MessageTypeDrag, DragData{State: c.DragState().String(), Effects: effects})

	for _, e := range effects {
		if e.Kind == drag.DropCommitted || e.Kind == drag.DropReverted {
			s.sendBoard()
			return
		}
	}
}

func (s *Session) sendBoard() {
	c := s.controller()
	if c == nil {
		return
	}
	game := c.Game()
	s.reply(MessageTypeBoard, BoardData{
		SessionID: s.id,
		Game:      game.Name(),
		Title:     game.Title(),
		UseTimer:  game.UseTimer(),
		ElapsedMS: c.Elapsed().Milliseconds(),
		State:     c.DragState().String(),
		Snapshot:  c.Board().Render(),
	})
}
