package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

// PollResultRepository inspects and rebuilds the counters that are
// materialised alongside the vote and like ledgers.
type PollResultRepository interface {
	FindDrift(ctx context.Context, pollID uuid.UUID) ([]domain.CounterDrift, error)
	SummarizeVotes(ctx context.Context, pollID uuid.UUID) error
}

type SummaryService interface {
	Reconcile(ctx context.Context, repair bool) ([]domain.CounterDrift, error)
}
