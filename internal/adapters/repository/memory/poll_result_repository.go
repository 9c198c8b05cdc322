package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

// pollResultRepository has nothing to reconcile: this store keeps no
// materialised counters.
type pollResultRepository struct {
	s *Store
}

func (r *pollResultRepository) FindDrift(_ context.Context, pollID uuid.UUID) ([]domain.CounterDrift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if _, ok := r.s.polls[pollID]; !ok {
		return nil, domain.ErrPollNotFound
	}
	return nil, nil
}

func (r *pollResultRepository) SummarizeVotes(_ context.Context, _ uuid.UUID) error {
	return nil
}
