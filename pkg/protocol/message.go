// Package protocol defines the WebSocket message types spoken between the
// face daemon, the dashboard and remote control clients.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Face → client messages
	TypeFrame MessageType = "frame" // Rendered frame preview
	TypeState MessageType = "state" // Face state snapshot

	// Client → face messages
	TypeExpression MessageType = "expression" // Expression command

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// Face → Client Message Types
// =============================================================================

// FrameData contains one rendered frame of the face
type FrameData struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Format  string `json:"format"` // "png"
	Data    string `json:"data"`   // base64 encoded
	FrameID uint64 `json:"frame_id,omitempty"`
}

// StateData is the face state snapshot, pushed on expression changes and
// available on request
type StateData struct {
	Expression   string `json:"expression"`
	Code         int    `json:"code"`
	InTransition bool   `json:"in_transition"`
	DemoActive   bool   `json:"demo_active"`
	AutoBlink    bool   `json:"auto_blink"`
	Ticks        uint64 `json:"ticks,omitempty"`
}

// =============================================================================
// Client → Face Message Types
// =============================================================================

// ExpressionCommand requests an expression by numeric code. Name is
// informative only; the face validates and acts on the code.
type ExpressionCommand struct {
	Code int    `json:"code"`
	Name string `json:"name,omitempty"`
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}
