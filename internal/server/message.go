package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/solitaire/internal/drag"
	"github.com/lox/solitaire/internal/rules"
	"github.com/lox/solitaire/internal/view"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message stamped with now.
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Client → Server Messages

type StartGameData struct {
	Game string `json:"game,omitempty"`
}

// PointerData is a pointer or touch event in page coordinates. CardID names
// the card the client hit when it knows it.
type PointerData struct {
	Phase  string  `json:"phase"`
	Device string  `json:"device,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	CardID *int    `json:"cardId,omitempty"`
}

// Event converts the message into a drag event.
func (p PointerData) Event() (drag.Event, error) {
	kind, ok := drag.ParseEventKind(p.Phase)
	if !ok {
		return drag.Event{}, fmt.Errorf("unknown pointer phase %q", p.Phase)
	}
	ev := drag.At(kind, p.X, p.Y)
	switch p.Device {
	case "", "mouse":
	case "touch":
		ev.Device = drag.Touch
	default:
		return drag.Event{}, fmt.Errorf("unknown pointer device %q", p.Device)
	}
	if p.CardID != nil {
		ev.CardID = *p.CardID
	}
	return ev, nil
}

type ClickData struct {
	CardID int `json:"cardId"`
}

// Server → Client Messages

type GameListData struct {
	Games   []rules.Info `json:"games"`
	Default string       `json:"default,omitempty"`
}

// BoardData is the full board of the session's current game.
type BoardData struct {
	SessionID string `json:"sessionId"`
	Game      string `json:"game"`
	Title     string `json:"title"`
	UseTimer  bool   `json:"useTimer"`
	ElapsedMS int64  `json:"elapsedMs"`
	State     string `json:"state"`
	view.Snapshot
}

// DragData carries the effects of one pointer event.
type DragData struct {
	State   string        `json:"state"`
	Effects []drag.Effect `json:"effects"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
