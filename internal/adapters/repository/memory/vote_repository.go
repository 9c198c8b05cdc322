package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

type voteRepository struct {
	s *Store
}

func (r *voteRepository) SaveVote(_ context.Context, vote *domain.Vote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.polls[vote.PollID]; !ok {
		return domain.ErrPollNotFound
	}

	byUser, ok := r.s.votes[vote.PollID]
	if !ok {
		byUser = make(map[uuid.UUID]*domain.Vote)
		r.s.votes[vote.PollID] = byUser
	}
	if _, voted := byUser[vote.UserID]; voted {
		return domain.ErrAlreadyVoted
	}

	cp := *vote
	byUser[vote.UserID] = &cp
	return nil
}

func (r *voteRepository) GetVote(_ context.Context, pollID, userID uuid.UUID) (*domain.Vote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	vote, ok := r.s.votes[pollID][userID]
	if !ok {
		return nil, nil
	}
	cp := *vote
	return &cp, nil
}

func (r *voteRepository) Tally(_ context.Context, pollID uuid.UUID) (domain.Tally, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tally := make(domain.Tally)
	for _, v := range r.s.votes[pollID] {
		tally[v.Option]++
	}
	return tally, nil
}
