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

type commentService struct {
	pollRepo    ports.PollRepository
	commentRepo ports.CommentRepository
	userRepo    ports.UserRepository
	clock       clockwork.Clock
	l           *zap.Logger
}

func NewCommentService(pollRepo ports.PollRepository, commentRepo ports.CommentRepository, userRepo ports.UserRepository, clock clockwork.Clock, l *zap.Logger) ports.CommentService {
	return &commentService{
		pollRepo:    pollRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		clock:       clock,
		l:           l,
	}
}

func (s *commentService) Add(ctx context.Context, input ports.AddCommentInput) (*domain.Comment, error) {
	content, err := normalizeComment(input.Content)
	if err != nil {
		return nil, err
	}

	if _, err := s.pollRepo.GetByID(ctx, input.PollID); err != nil {
		return nil, err
	}

	// v7 ids sort by creation time, which keeps the created_at tie-break
	// close to arrival order.
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment id: %w", err)
	}

	comment := &domain.Comment{
		ID:        id,
		PollID:    input.PollID,
		UserID:    input.UserID,
		Content:   content,
		CreatedAt: now(s.clock),
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		s.l.Error("failed to save comment", zap.String("poll_id", input.PollID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	comment.Username = unknownUsername
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		s.l.Warn("failed to resolve comment author", zap.Error(err))
	} else if user != nil {
		comment.Username = user.Username
	}
	return comment, nil
}

func (s *commentService) List(ctx context.Context, pollID uuid.UUID) ([]*domain.Comment, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPoll(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	return comments, nil
}
