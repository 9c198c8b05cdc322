package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"go.uber.org/zap"
)

type likeService struct {
	pollRepo ports.PollRepository
	likeRepo ports.LikeRepository
	cache    ports.ResultCache
	clock    clockwork.Clock
	l        *zap.Logger
}

// NewLikeService builds the like façade. Like and Unlike are separate
// idempotent operations; neither toggles.
func NewLikeService(pollRepo ports.PollRepository, likeRepo ports.LikeRepository, cache ports.ResultCache, clock clockwork.Clock, l *zap.Logger) ports.LikeService {
	return &likeService{
		pollRepo: pollRepo,
		likeRepo: likeRepo,
		cache:    cache,
		clock:    clock,
		l:        l,
	}
}

func (s *likeService) Like(ctx context.Context, pollID, userID uuid.UUID) (*domain.LikeResult, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	added, err := s.likeRepo.Add(ctx, &domain.Like{PollID: pollID, UserID: userID, LikedAt: now(s.clock)})
	if err != nil {
		s.l.Error("failed to add like", zap.String("poll_id", pollID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to like poll: %w", err)
	}
	if added {
		invalidateResults(ctx, s.cache, s.l, pollID)
	} else {
		s.l.Debug("like already present", zap.String("poll_id", pollID.String()), zap.String("user_id", userID.String()))
	}

	return s.result(ctx, pollID, true)
}

func (s *likeService) Unlike(ctx context.Context, pollID, userID uuid.UUID) (*domain.LikeResult, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	removed, err := s.likeRepo.Remove(ctx, pollID, userID)
	if err != nil {
		s.l.Error("failed to remove like", zap.String("poll_id", pollID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to unlike poll: %w", err)
	}
	if removed {
		invalidateResults(ctx, s.cache, s.l, pollID)
	}

	return s.result(ctx, pollID, false)
}

func (s *likeService) Status(ctx context.Context, pollID, userID uuid.UUID) (*domain.LikeStatus, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.Exists(ctx, pollID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check like: %w", err)
	}
	return &domain.LikeStatus{HasLiked: liked}, nil
}

func (s *likeService) Count(ctx context.Context, pollID uuid.UUID) (int64, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return 0, err
	}

	count, err := s.likeRepo.Count(ctx, pollID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (s *likeService) Likers(ctx context.Context, pollID uuid.UUID) ([]domain.Liker, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	likers, err := s.likeRepo.ListLikers(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likers: %w", err)
	}
	if likers == nil {
		likers = []domain.Liker{}
	}
	return likers, nil
}

func (s *likeService) result(ctx context.Context, pollID uuid.UUID, liked bool) (*domain.LikeResult, error) {
	count, err := s.likeRepo.Count(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	return &domain.LikeResult{HasLiked: liked, Likes: count}, nil
}
