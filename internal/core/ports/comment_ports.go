package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

type CommentRepository interface {
	Save(ctx context.Context, comment *domain.Comment) error
	// ListByPoll returns comments by created_at ascending, ties by id, with
	// usernames resolved.
	ListByPoll(ctx context.Context, pollID uuid.UUID) ([]*domain.Comment, error)
}

type AddCommentInput struct {
	PollID  uuid.UUID
	UserID  uuid.UUID
	Content string
}

type CommentService interface {
	Add(ctx context.Context, input AddCommentInput) (*domain.Comment, error)
	List(ctx context.Context, pollID uuid.UUID) ([]*domain.Comment, error)
}
