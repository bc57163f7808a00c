package storage

import (
	"strings"
	"time"
)

// MessageMatch is one search hit inside an archived conversation.
type MessageMatch struct {
	ConversationID string
	Title          string
	MessageIndex   int
	Sender         string
	Content        string
	Preview        string
	Timestamp      time.Time
}

const previewLimit = 100

// Search scans message bodies across every archived conversation for a
// case-insensitive substring match.
func (h *HistoryStore) Search(query string) []MessageMatch {
	if query == "" {
		return []MessageMatch{}
	}

	queryLower := strings.ToLower(query)
	var matches []MessageMatch

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, entry := range h.entries {
		for i, msg := range entry.Messages {
			if !strings.Contains(strings.ToLower(msg.Content), queryLower) {
				continue
			}

			preview := msg.Content
			if len(preview) > previewLimit {
				preview = preview[:previewLimit] + "..."
			}

			matches = append(matches, MessageMatch{
				ConversationID: entry.ID,
				Title:          entry.Title,
				MessageIndex:   i,
				Sender:         string(msg.Sender),
				Content:        msg.Content,
				Preview:        preview,
				Timestamp:      msg.CreatedAt,
			})
		}
	}

	return matches
}
