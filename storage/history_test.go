package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"domatui/chat"
)

func newTestConversation(t *testing.T, content string) *chat.Conversation {
	t.Helper()
	c := chat.NewConversation()
	if _, err := c.Append(content, chat.SenderUser); err != nil {
		t.Fatalf("append: %v", err)
	}
	return c
}

func TestArchiveAssignsIdentityOnce(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	h := NewHistoryStore(store)

	live := newTestConversation(t, "How can I optimize drilling parameters for better penetration rates?")
	snap, err := h.Archive(live)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if snap.ID == "" {
		t.Fatal("archived conversation has no ID")
	}
	if snap.Title != "How can I optimize drilling parameters..." {
		t.Errorf("title = %q", snap.Title)
	}
	// The live log was snapshotted, not adopted.
	if live.ID != "" {
		t.Error("Archive mutated the live conversation's ID")
	}

	// Re-archiving the snapshot must update in place, never duplicate.
	if _, err := snap.Append("follow-up question about mud weight", chat.SenderUser); err != nil {
		t.Fatalf("append: %v", err)
	}
	again, err := h.Archive(snap)
	if err != nil {
		t.Fatalf("re-archive: %v", err)
	}
	if again.ID != snap.ID {
		t.Errorf("re-archive changed ID: %s -> %s", snap.ID, again.ID)
	}
	if h.Len() != 1 {
		t.Errorf("history has %d entries, want 1", h.Len())
	}
}

func TestArchiveRejectsEmptyConversation(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	h := NewHistoryStore(store)

	if _, err := h.Archive(chat.NewConversation()); err == nil {
		t.Fatal("expected error archiving empty conversation")
	}
	if h.Len() != 0 {
		t.Errorf("empty conversation was stored")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, kind := range []string{"file", "sqlite"} {
		t.Run(kind, func(t *testing.T) {
			dir := t.TempDir()
			open := func() BlobStore {
				t.Helper()
				var store BlobStore
				var err error
				if kind == "file" {
					store, err = NewFileStore(dir)
				} else {
					store, err = NewSQLiteStore(dir)
				}
				if err != nil {
					t.Fatalf("open %s store: %v", kind, err)
				}
				return store
			}

			first := open()
			h := NewHistoryStore(first)
			snap, err := h.Archive(newTestConversation(t, "What safety protocols should be followed during offshore operations?"))
			if err != nil {
				t.Fatalf("Archive: %v", err)
			}
			if err := first.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			// Fresh store over the same directory simulates a restart.
			second := open()
			defer second.Close()
			reloaded := NewHistoryStore(second)
			if err := reloaded.Load(); err != nil {
				t.Fatalf("Load: %v", err)
			}

			got, err := reloaded.Get(snap.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Title != snap.Title {
				t.Errorf("title = %q, want %q", got.Title, snap.Title)
			}
			if len(got.Messages) != len(snap.Messages) {
				t.Fatalf("message count = %d, want %d", len(got.Messages), len(snap.Messages))
			}
			for i := range got.Messages {
				if got.Messages[i].ID != snap.Messages[i].ID {
					t.Errorf("message[%d] ID changed across reload", i)
				}
				// RFC 3339 keeps sub-second precision; instants must survive.
				if !got.Messages[i].CreatedAt.Equal(snap.Messages[i].CreatedAt) {
					t.Errorf("message[%d] timestamp %v != %v", i,
						got.Messages[i].CreatedAt, snap.Messages[i].CreatedAt)
				}
			}
		})
	}
}

func TestLoadCorruptBlobFailsSoft(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "history.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("write corrupt blob: %v", err)
	}

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	h := NewHistoryStore(store)

	err = h.Load()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load error = %v, want ErrCorrupt", err)
	}
	if h.Len() != 0 {
		t.Errorf("corrupt load left %d entries", h.Len())
	}

	// The store must stay usable after recovery.
	if _, err := h.Archive(newTestConversation(t, "hello after corruption")); err != nil {
		t.Fatalf("Archive after corrupt load: %v", err)
	}
}

func TestLoadMissingBlobIsEmpty(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	h := NewHistoryStore(store)
	if err := h.Load(); err != nil {
		t.Fatalf("Load on fresh store: %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("fresh store has %d entries", h.Len())
	}
}

func TestListNewestFirst(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	h := NewHistoryStore(store)

	for _, content := range []string{"oldest", "middle", "newest"} {
		if _, err := h.Archive(newTestConversation(t, content)); err != nil {
			t.Fatalf("Archive %q: %v", content, err)
		}
	}

	entries := h.List()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	want := []string{"newest", "middle", "oldest"}
	for i, title := range want {
		if entries[i].Title != title {
			t.Errorf("entries[%d].Title = %q, want %q", i, entries[i].Title, title)
		}
	}
}

func TestFilteredBoundary(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	h := NewHistoryStore(store)

	now := time.Now()
	ages := map[string]time.Duration{
		"recent":      time.Hour,
		"on boundary": 24 * time.Hour,
		"too old":     24*time.Hour + time.Minute,
	}
	for content, age := range ages {
		c := newTestConversation(t, content)
		c.CreatedAt = now.Add(-age)
		if _, err := h.Archive(c); err != nil {
			t.Fatalf("Archive %q: %v", content, err)
		}
	}

	got := h.Filtered(chat.FilterDay, now)
	if len(got) != 2 {
		t.Fatalf("filtered %d entries, want 2", len(got))
	}
	for _, e := range got {
		if e.Messages[0].Content == "too old" {
			t.Error("entry beyond the cutoff was included")
		}
	}

	if all := h.Filtered(chat.FilterAll, now); len(all) != 3 {
		t.Errorf("FilterAll returned %d entries, want 3", len(all))
	}
	// Filtering never mutates the collection.
	if h.Len() != 3 {
		t.Errorf("filter mutated the store: %d entries", h.Len())
	}
}

func TestSearch(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	h := NewHistoryStore(store)

	c := chat.NewConversation()
	if _, err := c.Append("What is the recommended maintenance schedule for rotating equipment?", chat.SenderUser); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := c.Append("Quarterly vibration analysis is a good baseline.", chat.SenderAssistant); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := h.Archive(c); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	matches := h.Search("VIBRATION")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].MessageIndex != 1 || matches[0].Sender != "assistant" {
		t.Errorf("unexpected match: %+v", matches[0])
	}

	if got := h.Search(""); len(got) != 0 {
		t.Errorf("empty query returned %d matches", len(got))
	}
}
