package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	// List returns every poll, newest first, read as a single snapshot.
	List(ctx context.Context) ([]*domain.Poll, error)
}

type CreatePollInput struct {
	CreatorID uuid.UUID
	Question  string
	Options   []string
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.PollView, error)
	GetPoll(ctx context.Context, id uuid.UUID) (*domain.PollView, error)
	ListPolls(ctx context.Context) ([]*domain.PollView, error)
}
