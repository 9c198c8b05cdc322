package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

type pollRepository struct {
	s *Store
}

func (r *pollRepository) Save(_ context.Context, poll *domain.Poll) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.polls[poll.ID]; exists {
		return fmt.Errorf("poll %s already exists", poll.ID)
	}
	r.s.polls[poll.ID] = copyPoll(poll)
	return nil
}

func (r *pollRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Poll, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	poll, ok := r.s.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return copyPoll(poll), nil
}

func (r *pollRepository) List(_ context.Context) ([]*domain.Poll, error) {
	r.s.mu.RLock()
	polls := make([]*domain.Poll, 0, len(r.s.polls))
	for _, p := range r.s.polls {
		polls = append(polls, copyPoll(p))
	}
	r.s.mu.RUnlock()

	sort.Slice(polls, func(i, j int) bool {
		if !polls[i].CreatedAt.Equal(polls[j].CreatedAt) {
			return polls[i].CreatedAt.After(polls[j].CreatedAt)
		}
		return polls[i].ID.String() > polls[j].ID.String()
	})
	return polls, nil
}
