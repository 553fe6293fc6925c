package service

import (
	"context"
	"sync"
	"time"

	"github.com/lentera-edu/timetable-api/internal/models"
)

// TimetableRun is one finished allocation kept for later download.
type TimetableRun struct {
	ID        string                 `json:"id"`
	Entries   []models.ScheduleEntry `json:"entries"`
	Failures  []models.FailureRecord `json:"failures"`
	Stats     models.RunStats        `json:"stats"`
	CreatedAt time.Time              `json:"createdAt"`
}

// RunStore holds finished runs with a bounded lifetime.
type RunStore interface {
	Save(ctx context.Context, run TimetableRun) error
	Get(ctx context.Context, id string) (TimetableRun, bool, error)
	Delete(ctx context.Context, id string) error
}

type memoryRunStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]TimetableRun
}

// NewMemoryRunStore builds the in-process TTL store.
func NewMemoryRunStore(ttl time.Duration) RunStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &memoryRunStore{ttl: ttl, items: make(map[string]TimetableRun)}
}

func (s *memoryRunStore) Save(_ context.Context, run TimetableRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[run.ID] = run
	return nil
}

func (s *memoryRunStore) Get(ctx context.Context, id string) (TimetableRun, bool, error) {
	s.mu.RLock()
	run, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return TimetableRun{}, false, nil
	}
	if time.Since(run.CreatedAt) > s.ttl {
		_ = s.Delete(ctx, id)
		return TimetableRun{}, false, nil
	}
	return run, true, nil
}

func (s *memoryRunStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}
