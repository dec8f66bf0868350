package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeListGames   MessageType = "list_games"
	MessageTypeStartGame   MessageType = "start_game"
	MessageTypeRestartGame MessageType = "restart_game"
	MessageTypeNewGame     MessageType = "new_game"
	MessageTypePointer     MessageType = "pointer"
	MessageTypeClick       MessageType = "click"

	// Server to client messages
	MessageTypeGameList MessageType = "game_list"
	MessageTypeBoard    MessageType = "board"
	MessageTypeDrag     MessageType = "drag"
	MessageTypeError    MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
