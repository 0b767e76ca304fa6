package cache

import (
	"context"
	"sync"

	"rating-dashboard/domain/dto"
	"rating-dashboard/domain/repository"
)

// MemorySequencer keeps per-view sequences in process.
type MemorySequencer struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

var _ repository.ISequencer = (*MemorySequencer)(nil)

func NewMemorySequencer() *MemorySequencer {
	return &MemorySequencer{seqs: make(map[string]uint64)}
}

func (s *MemorySequencer) Next(_ context.Context, view string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[view]++
	return s.seqs[view], nil
}

func (s *MemorySequencer) Latest(_ context.Context, view string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seqs[view], nil
}

// MemoryDashboardStore keeps the rendered table in process.
type MemoryDashboardStore struct {
	mu    sync.RWMutex
	state *dto.TableState
}

var _ repository.IDashboardStore = (*MemoryDashboardStore)(nil)

func NewMemoryDashboardStore() *MemoryDashboardStore {
	return &MemoryDashboardStore{}
}

func (s *MemoryDashboardStore) Save(_ context.Context, state *dto.TableState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == nil {
		s.state = nil
		return nil
	}
	cp := *state
	cp.Rows = append([]dto.RatingRow(nil), state.Rows...)
	s.state = &cp
	return nil
}

func (s *MemoryDashboardStore) Load(_ context.Context) (*dto.TableState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, nil
	}
	cp := *s.state
	cp.Rows = append([]dto.RatingRow(nil), s.state.Rows...)
	return &cp, nil
}
