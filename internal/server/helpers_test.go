package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/lox/solitaire/internal/cards"
	"github.com/lox/solitaire/internal/randutil"
	"github.com/lox/solitaire/internal/rules"
	"github.com/lox/solitaire/internal/shuffle"
	"github.com/lox/solitaire/internal/view"
)

// testLogger creates a logger that discards output for tests
func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()

	registry, err := rules.DefaultRegistry(testLogger())
	require.NoError(t, err)

	opts = append([]Option{
		WithClock(quartz.NewMock(t)),
		WithRandFactory(func() shuffle.Source { return randutil.New(7) }),
	}, opts...)
	srv := NewServer("", registry, testLogger(), opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(srv.Stop)
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err, "failed to dial %s", url)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, messageType MessageType, data any) {
	t.Helper()

	msg, err := NewMessage(messageType, data, time.Now())
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func readMessage(t *testing.T, conn *websocket.Conn) *Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return &msg
}

// expect reads the next message, requires its type and decodes its data.
func expect[T any](t *testing.T, conn *websocket.Conn, messageType MessageType) T {
	t.Helper()

	msg := readMessage(t, conn)
	require.Equal(t, messageType, msg.Type, "payload: %s", msg.Data)
	var data T
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	return data
}

func stackByID(t *testing.T, board BoardData, id string) view.StackElement {
	t.Helper()

	for _, s := range board.Stacks {
		if s.ID == id {
			return s
		}
	}
	require.Failf(t, "stack not found", "no stack %s on board", id)
	return view.StackElement{}
}

func cardIDs(s view.StackElement) []int {
	ids := make([]int, len(s.Cards))
	for i, c := range s.Cards {
		ids[i] = c.ID
	}
	return ids
}

func stackIDs(cs []*cards.Card) []int {
	ids := make([]int, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}
