// Package storage persists archived conversations. The whole collection
// lives in memory, ordered newest-first, and is mirrored to a BlobStore as
// one JSON blob on every mutation.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"domatui/chat"
)

// ErrCorrupt marks a persisted history blob that could not be decoded. The
// store recovers by starting empty; the caller should log the error, not
// surface it to the user.
var ErrCorrupt = errors.New("persisted history is corrupt")

// HistoryStore holds archived conversation snapshots keyed by ID.
type HistoryStore struct {
	store BlobStore

	mu      sync.Mutex
	entries []*chat.Conversation // newest-first
}

// NewHistoryStore wraps a blob store. Call Load before first use.
func NewHistoryStore(store BlobStore) *HistoryStore {
	return &HistoryStore{store: store}
}

// Load reads the persisted collection. A store that was never written
// yields an empty history. A blob that cannot be decoded also yields an
// empty history and returns an error wrapping ErrCorrupt; the session
// continues either way.
func (h *HistoryStore) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil

	data, err := h.store.Read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var entries []*chat.Conversation
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	// Drop entries that lost their identity; an ID appears at most once.
	seen := make(map[string]bool, len(entries))
	kept := entries[:0]
	for _, e := range entries {
		if e == nil || e.ID == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		kept = append(kept, e)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].CreatedAt.After(kept[j].CreatedAt)
	})
	h.entries = kept
	return nil
}

// Archive assigns the conversation its storage identity and derived title,
// prepends it to the collection, and re-persists. The input is snapshotted;
// later mutation of the live log does not touch the stored entry. A
// conversation that already carries an ID is updated in place instead.
func (h *HistoryStore) Archive(c *chat.Conversation) (*chat.Conversation, error) {
	if c.Empty() {
		return nil, errors.New("refusing to archive an empty conversation")
	}

	snap := c.Clone()
	snap.Title = chat.DeriveTitle(snap)

	h.mu.Lock()
	defer h.mu.Unlock()

	if snap.ID != "" {
		for i, e := range h.entries {
			if e.ID == snap.ID {
				h.entries[i] = snap
				return snap, h.save()
			}
		}
		// Unknown ID (entry was pruned from the blob); fall through and
		// keep the existing identity.
	} else {
		snap.ID = uuid.New().String()
	}

	h.entries = append([]*chat.Conversation{snap}, h.entries...)
	return snap, h.save()
}

// Get returns a copy of the stored conversation with the given ID.
func (h *HistoryStore) Get(id string) (*chat.Conversation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, e := range h.entries {
		if e.ID == id {
			return e.Clone(), nil
		}
	}
	return nil, fmt.Errorf("no archived conversation with id %s", id)
}

// List returns copies of all entries, newest-first.
func (h *HistoryStore) List() []*chat.Conversation {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*chat.Conversation, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Clone()
	}
	return out
}

// Filtered returns copies of the entries whose creation time falls inside
// the window. Read-only projection, recomputed on every call.
func (h *HistoryStore) Filtered(f chat.TimeFilter, now time.Time) []*chat.Conversation {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []*chat.Conversation
	for _, e := range h.entries {
		if f.Matches(e.CreatedAt, now) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// Len reports the number of archived conversations.
func (h *HistoryStore) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// save marshals the whole collection and overwrites the blob. Caller holds
// the lock.
func (h *HistoryStore) save() error {
	data, err := json.MarshalIndent(h.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return h.store.Write(data)
}
