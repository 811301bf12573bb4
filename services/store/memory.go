package store

import (
	"context"
	"sync"
	"time"

	redis_models "Recluta/models/redis"
)

// MemoryStore is a PanelStore backed by a plain map. It exists for tests and
// for running the backend without a Redis instance; expiry is checked lazily
// on access instead of by the store engine.
type MemoryStore struct {
	mu         sync.Mutex
	ttl        time.Duration // zero means no expiry
	rosters    map[string]*memoryEntry
	entryPanel string
}

type memoryEntry struct {
	roster   *redis_models.Roster
	expireAt time.Time
}

// NewMemoryStore builds an empty store. A zero ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		rosters: make(map[string]*memoryEntry),
	}
}

// lookup returns the live entry for a key, reaping it when expired.
// Callers must hold ms.mu.
func (ms *MemoryStore) lookup(panelID string) (*memoryEntry, bool) {
	entry, ok := ms.rosters[panelID]
	if !ok {
		return nil, false
	}
	if !entry.expireAt.IsZero() && time.Now().After(entry.expireAt) {
		delete(ms.rosters, panelID)
		return nil, false
	}
	return entry, true
}

func (ms *MemoryStore) SaveRoster(ctx context.Context, roster *redis_models.Roster) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	entry := &memoryEntry{roster: roster.Clone()}
	if ms.ttl > 0 {
		entry.expireAt = time.Now().Add(ms.ttl)
	}
	ms.rosters[roster.PanelID] = entry
	return nil
}

func (ms *MemoryStore) GetRoster(ctx context.Context, panelID string) (*redis_models.Roster, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	entry, ok := ms.lookup(panelID)
	if !ok {
		return nil, ErrRosterNotFound
	}
	return entry.roster.Clone(), nil
}

func (ms *MemoryStore) DeleteRoster(ctx context.Context, panelID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.lookup(panelID); !ok {
		return ErrRosterNotFound
	}
	delete(ms.rosters, panelID)
	return nil
}

func (ms *MemoryStore) UpdateJoined(ctx context.Context, panelID string, mutate MutateJoined) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	entry, ok := ms.lookup(panelID)
	if !ok {
		return ErrRosterNotFound
	}
	// The mutate callback sees a snapshot; the write only lands when it
	// returns cleanly. Expiry is NOT refreshed on membership changes.
	snapshot := entry.roster.Clone()
	joined, err := mutate(snapshot)
	if err != nil {
		return err
	}
	entry.roster.Joined = joined
	return nil
}

func (ms *MemoryStore) SetEntryPanel(ctx context.Context, messageID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entryPanel = messageID
	return nil
}

func (ms *MemoryStore) GetEntryPanel(ctx context.Context) (string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.entryPanel == "" {
		return "", ErrEntryPanelNotFound
	}
	return ms.entryPanel, nil
}

func (ms *MemoryStore) DeleteEntryPanel(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.entryPanel == "" {
		return ErrEntryPanelNotFound
	}
	ms.entryPanel = ""
	return nil
}
