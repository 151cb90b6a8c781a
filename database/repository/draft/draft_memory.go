package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"autosave/models"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryDraftRepo keeps drafts in process memory. Values are stored
// serialized so callers never share state with the store.
type MemoryDraftRepo struct {
	mu      sync.Mutex
	drafts  map[string]memoryEntry
	locks   map[string]time.Time
	ttl     time.Duration
	lockTTL time.Duration
	now     func() time.Time
}

func NewMemoryDraftRepo(ttl, lockTTL time.Duration) *MemoryDraftRepo {
	return &MemoryDraftRepo{
		drafts:  make(map[string]memoryEntry),
		locks:   make(map[string]time.Time),
		ttl:     ttl,
		lockTTL: lockTTL,
		now:     time.Now,
	}
}

var _ DraftRepository = (*MemoryDraftRepo)(nil)

func (r *MemoryDraftRepo) Save(_ context.Context, session *models.DraftSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal draft session: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[session.ID] = memoryEntry{data: data, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *MemoryDraftRepo) Get(_ context.Context, id string) (*models.DraftSession, error) {
	r.mu.Lock()
	entry, ok := r.drafts[id]
	if ok && !r.now().Before(entry.expiresAt) {
		delete(r.drafts, id)
		ok = false
	}
	r.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	var session models.DraftSession
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse draft session: %w", err)
	}
	return &session, nil
}

func (r *MemoryDraftRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
	delete(r.locks, id)
	return nil
}

func (r *MemoryDraftRepo) AcquireSubmitLock(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if until, held := r.locks[id]; held && now.Before(until) {
		return false, nil
	}
	r.locks[id] = now.Add(r.lockTTL)
	return true, nil
}

func (r *MemoryDraftRepo) ReleaseSubmitLock(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, id)
	return nil
}

// Sweep drops expired drafts and locks.
func (r *MemoryDraftRepo) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	removed := 0
	for id, entry := range r.drafts {
		if !now.Before(entry.expiresAt) {
			delete(r.drafts, id)
			removed++
		}
	}
	for id, until := range r.locks {
		if !now.Before(until) {
			delete(r.locks, id)
		}
	}
	return removed
}
