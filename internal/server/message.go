package server

import (
	"encoding/json"

	"github.com/lox/holdem-table/internal/game"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// Client to server events.
	MessageTypeJoin             MessageType = "join"
	MessageTypeSetStartingStack MessageType = "setStartingStack"
	MessageTypeStartGame        MessageType = "startGame"
	MessageTypeAction           MessageType = "action"

	// Server to client events.
	MessageTypeState        MessageType = "state"
	MessageTypeErrorMessage MessageType = "errorMessage"
)

// Message is the wire envelope. Data carries the event-specific payload.
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage wraps a payload in an envelope.
func NewMessage(messageType MessageType, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: messageType, Data: data}, nil
}

// Client to server payloads.

// JoinData carries the requested display name.
type JoinData struct {
	Name string `json:"name"`
}

// SetStartingStackData carries the new starting stack.
type SetStartingStackData struct {
	Amount int `json:"amount"`
}

// ActionData is re-exported from the engine so clients and server share one
// shape for betting actions.
type ActionData = game.ActionRequest

// Server to client payloads.

// ErrorMessageData carries a human error string for the offending viewer.
type ErrorMessageData struct {
	Message string `json:"message"`
}

// StateData is the per-viewer projection; see game.State for the fields.
type StateData = game.State
