package categories

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joefazee/neo-admin/internal/cache"
	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/models"
)

// SnapshotKey is the cache key the store persists its list under.
const SnapshotKey = "categories:snapshot"

// Ticket orders refreshes. A higher ticket was begun later.
type Ticket uint64

// Store holds the client-side category list. It is only ever replaced as a
// whole and never fetches on its own.
type Store struct {
	mu      sync.RWMutex
	items   []models.Category
	applied Ticket
	issued  atomic.Uint64

	cache  cache.Cache[[]models.Category]
	ttl    time.Duration
	logger logger.Logger
}

// NewStore creates an empty store. snapshots may be nil.
func NewStore(snapshots cache.Cache[[]models.Category], ttl time.Duration, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &Store{cache: snapshots, ttl: ttl, logger: log}
}

// Read returns a copy of the current list.
func (s *Store) Read() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of held categories.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Begin issues the ticket for a refresh that is about to start.
func (s *Store) Begin() Ticket {
	return Ticket(s.issued.Add(1))
}

// Apply replaces the list with the result of the refresh identified by t,
// unless a refresh begun later has already been applied. The returned error
// comes from the snapshot write only; the list is replaced regardless.
func (s *Store) Apply(ctx context.Context, t Ticket, items []models.Category) (bool, error) {
	s.mu.Lock()
	if t <= s.applied {
		applied := s.applied
		s.mu.Unlock()
		s.logger.Debug("discarding stale category list", logger.Fields{"ticket": uint64(t), "applied": uint64(applied)})
		return false, nil
	}
	s.applied = t
	s.items = s.dedupe(items)
	snapshot := s.items
	s.mu.Unlock()

	return true, s.snapshot(ctx, snapshot)
}

// ReplaceAll unconditionally overwrites the list. Refreshes begun earlier
// become stale.
func (s *Store) ReplaceAll(ctx context.Context, items []models.Category) error {
	_, err := s.Apply(ctx, s.Begin(), items)
	return err
}

// Restore loads the last snapshot from the cache. A missing snapshot leaves
// the store as it is.
func (s *Store) Restore(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	t := s.Begin()
	items, err := s.cache.Get(ctx, SnapshotKey)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t <= s.applied {
		return nil
	}
	s.applied = t
	s.items = s.dedupe(items)
	return nil
}

func (s *Store) snapshot(ctx context.Context, items []models.Category) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, SnapshotKey, items, s.ttl)
}

// dedupe keeps server order and the first occurrence of every id. Entries
// without an id or a name are dropped.
func (s *Store) dedupe(items []models.Category) []models.Category {
	seen := make(map[string]struct{}, len(items))
	out := make([]models.Category, 0, len(items))
	for _, c := range items {
		if err := c.Validate(); err != nil {
			s.logger.Warn("invalid category dropped", logger.Fields{"id": c.ID, "error": err.Error()})
			continue
		}
		if _, dup := seen[c.ID]; dup {
			s.logger.Warn("duplicate category id dropped", logger.Fields{"id": c.ID, "name": c.Name})
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
