package chat

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAppendPreservesOrderAndIdentity(t *testing.T) {
	c := NewConversation()

	contents := []string{"first", "second", "third"}
	for i, content := range contents {
		sender := SenderUser
		if i%2 == 1 {
			sender = SenderAssistant
		}
		before := len(c.Messages)
		msg, err := c.Append(content, sender)
		if err != nil {
			t.Fatalf("append %q: unexpected error: %v", content, err)
		}
		if len(c.Messages) != before+1 {
			t.Fatalf("append %q: length %d, want %d", content, len(c.Messages), before+1)
		}
		if msg.ID == "" {
			t.Errorf("append %q: message has no ID", content)
		}
		if msg.CreatedAt.IsZero() {
			t.Errorf("append %q: message has no timestamp", content)
		}
	}

	for i, content := range contents {
		if c.Messages[i].Content != content {
			t.Errorf("message[%d] = %q, want %q", i, c.Messages[i].Content, content)
		}
	}

	seen := map[string]bool{}
	for _, msg := range c.Messages {
		if seen[msg.ID] {
			t.Errorf("duplicate message ID %s", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestAppendRejectsEmptyContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty string", ""},
		{"spaces only", "   "},
		{"whitespace mix", " \t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConversation()
			_, err := c.Append(tt.content, SenderUser)
			if !errors.Is(err, ErrEmptyMessage) {
				t.Errorf("error = %v, want ErrEmptyMessage", err)
			}
			if len(c.Messages) != 0 {
				t.Errorf("rejected append mutated the log: %d messages", len(c.Messages))
			}
			if !c.CreatedAt.IsZero() {
				t.Error("rejected append set CreatedAt")
			}
		})
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		messages []Message
		want     string
	}{
		{
			name: "six or more words keeps first six with ellipsis",
			messages: []Message{
				{Content: "How can I optimize drilling parameters for better penetration rates in the field", Sender: SenderUser},
			},
			want: "How can I optimize drilling parameters...",
		},
		{
			name: "short message kept verbatim",
			messages: []Message{
				{Content: "Hi", Sender: SenderUser},
			},
			want: "Hi",
		},
		{
			name: "exactly six words",
			messages: []Message{
				{Content: "one two three four five six", Sender: SenderUser},
			},
			want: "one two three four five six...",
		},
		{
			name: "few long words truncated to forty characters",
			messages: []Message{
				{Content: strings.Repeat("a", 30) + " " + strings.Repeat("b", 30), Sender: SenderUser},
			},
			want: strings.Repeat("a", 30) + " " + strings.Repeat("b", 9) + "...",
		},
		{
			name: "multibyte content truncated on rune boundaries",
			messages: []Message{
				{Content: strings.Repeat("é", 45), Sender: SenderUser},
			},
			want: strings.Repeat("é", 40) + "...",
		},
		{
			name:     "no messages",
			messages: nil,
			want:     DefaultTitle,
		},
		{
			name: "assistant messages are skipped",
			messages: []Message{
				{Content: "hello there, how can I help you today?", Sender: SenderAssistant},
				{Content: "Hi", Sender: SenderUser},
			},
			want: "Hi",
		},
		{
			name: "only assistant messages",
			messages: []Message{
				{Content: "welcome", Sender: SenderAssistant},
			},
			want: DefaultTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Conversation{Messages: tt.messages}
			if got := DeriveTitle(c); got != tt.want {
				t.Errorf("DeriveTitle() = %q, want %q", got, tt.want)
			}
			// Pure: a second call must return the same title.
			if again := DeriveTitle(c); again != tt.want {
				t.Errorf("second DeriveTitle() = %q, want %q", again, tt.want)
			}
			if !utf8.ValidString(DeriveTitle(c)) {
				t.Error("title is not valid UTF-8")
			}
		})
	}
}

func TestCloneDoesNotAliasMessages(t *testing.T) {
	c := NewConversation()
	if _, err := c.Append("hello", SenderUser); err != nil {
		t.Fatalf("append: %v", err)
	}

	snap := c.Clone()
	if _, err := c.Append("more", SenderUser); err != nil {
		t.Fatalf("append: %v", err)
	}

	if len(snap.Messages) != 1 {
		t.Fatalf("snapshot grew with the live log: %d messages", len(snap.Messages))
	}
	snap.Messages[0].Content = "mutated"
	if c.Messages[0].Content != "hello" {
		t.Error("mutating the snapshot leaked into the live log")
	}
}
