package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

type LikeRepository interface {
	// Add inserts the membership if absent and reports whether it did.
	Add(ctx context.Context, like *domain.Like) (bool, error)
	// Remove deletes the membership if present and reports whether it did.
	Remove(ctx context.Context, pollID, userID uuid.UUID) (bool, error)
	Exists(ctx context.Context, pollID, userID uuid.UUID) (bool, error)
	Count(ctx context.Context, pollID uuid.UUID) (int64, error)
	CountByPolls(ctx context.Context, pollIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	// ListLikers returns likers oldest like first.
	ListLikers(ctx context.Context, pollID uuid.UUID) ([]domain.Liker, error)
}

type LikeService interface {
	Like(ctx context.Context, pollID, userID uuid.UUID) (*domain.LikeResult, error)
	Unlike(ctx context.Context, pollID, userID uuid.UUID) (*domain.LikeResult, error)
	Status(ctx context.Context, pollID, userID uuid.UUID) (*domain.LikeStatus, error)
	Count(ctx context.Context, pollID uuid.UUID) (int64, error)
	Likers(ctx context.Context, pollID uuid.UUID) ([]domain.Liker, error)
}
