// Package chat holds the conversation domain types: messages, the
// append-only conversation log, title derivation, and time filtering.
// It is pure state manipulation; persistence lives in the storage package.
package chat

import (
	"strings"
	"time"
)

// DefaultTitle is shown for conversations without a user message yet.
const DefaultTitle = "New Chat"

// Conversation is an ordered, append-only message log. ID stays empty while
// the conversation is live; it is assigned exactly once, when the
// conversation is archived into history.
type Conversation struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

// NewConversation returns an empty, unarchived conversation.
func NewConversation() *Conversation {
	return &Conversation{Title: DefaultTitle}
}

// Append validates content and appends a new message at the end of the log.
// CreatedAt is set from the first message appended.
func (c *Conversation) Append(content string, sender Sender) (Message, error) {
	msg, err := NewMessage(content, sender)
	if err != nil {
		return Message{}, err
	}
	if len(c.Messages) == 0 {
		c.CreatedAt = msg.CreatedAt
	}
	c.Messages = append(c.Messages, msg)
	return msg, nil
}

// Archived reports whether the conversation has been assigned a storage
// identity.
func (c *Conversation) Archived() bool {
	return c.ID != ""
}

// Empty reports whether the conversation has no messages.
func (c *Conversation) Empty() bool {
	return len(c.Messages) == 0
}

// Clone returns a deep copy. Snapshots handed to storage or to the UI must
// not alias the live message slice.
func (c *Conversation) Clone() *Conversation {
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return &out
}

const (
	titleWordLimit = 6
	titleCharLimit = 40
)

// DeriveTitle computes the display title from the first user message:
// messages of six words or more keep their first six words plus an
// ellipsis, shorter messages are truncated to 40 characters with an
// ellipsis only when truncation happened. Pure: recomputed at every
// archive, never cached.
func DeriveTitle(c *Conversation) string {
	for _, msg := range c.Messages {
		if msg.Sender != SenderUser {
			continue
		}
		words := strings.Fields(msg.Content)
		if len(words) >= titleWordLimit {
			return strings.Join(words[:titleWordLimit], " ") + "..."
		}
		if runes := []rune(msg.Content); len(runes) > titleCharLimit {
			return string(runes[:titleCharLimit]) + "..."
		}
		return msg.Content
	}
	return DefaultTitle
}
