package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

type VoteRepository interface {
	// SaveVote records the vote and its tally increment as one atomic unit.
	// It returns domain.ErrAlreadyVoted when the (poll, user) pair already
	// holds a vote.
	SaveVote(ctx context.Context, vote *domain.Vote) error
	GetVote(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error)
	Tally(ctx context.Context, pollID uuid.UUID) (domain.Tally, error)
}

type VoteInput struct {
	PollID uuid.UUID
	UserID uuid.UUID
	Option string
}

type VoteService interface {
	Vote(ctx context.Context, input VoteInput) (*domain.VoteResult, error)
	Status(ctx context.Context, pollID, userID uuid.UUID) (*domain.VoteStatus, error)
	Results(ctx context.Context, pollID uuid.UUID) (*domain.PollResults, error)
}

// ResultCache holds recently computed poll results for polling clients.
type ResultCache interface {
	Get(ctx context.Context, pollID uuid.UUID) (*domain.PollResults, bool, error)
	Set(ctx context.Context, results *domain.PollResults) error
	Invalidate(ctx context.Context, pollID uuid.UUID) error
}
