// message.go - Message and status types shared across storage, transport, and display.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Status is the delivery state of a user-authored message.
// Bot messages never carry a status.
type Status string

const (
	StatusSending   Status = "sending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
	StatusFailed    Status = "failed"
)

// MaxTextLen caps the length of user input, in runes.
const MaxTextLen = 1000

// Message represents a single chat message.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp int64  `json:"timestamp"` // milliseconds since epoch
	Status    Status `json:"status,omitempty"`
}

// NewUserMessage builds a user message in the initial sending state.
func NewUserMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: time.Now().UnixMilli(),
		Status:    StatusSending,
	}
}

// NewBotMessage builds a bot reply.
func NewBotMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    SenderBot,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ValidateText rejects blank and over-length input. Callers are expected to
// trim before submitting; validation trims again so whitespace-only input
// can never slip through.
func ValidateText(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &ValidationError{Message: "message text is empty"}
	}
	if len([]rune(trimmed)) > MaxTextLen {
		return &ValidationError{Message: "message text exceeds the length cap"}
	}
	return nil
}
