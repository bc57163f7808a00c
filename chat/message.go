package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ErrEmptyMessage is returned when a message body is empty or whitespace-only.
var ErrEmptyMessage = errors.New("message content is empty")

// Message is a single chat message. Immutable once created.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage validates the content and stamps the message with a fresh ID
// and the current wall-clock time.
func NewMessage(content string, sender Sender) (Message, error) {
	if strings.TrimSpace(content) == "" {
		return Message{}, ErrEmptyMessage
	}
	return Message{
		ID:        uuid.New().String(),
		Content:   content,
		Sender:    sender,
		CreatedAt: time.Now(),
	}, nil
}
