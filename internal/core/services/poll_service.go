package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"go.uber.org/zap"
)

type pollService struct {
	pollRepo ports.PollRepository
	userRepo ports.UserRepository
	likeRepo ports.LikeRepository
	clock    clockwork.Clock
	l        *zap.Logger
}

func NewPollService(pollRepo ports.PollRepository, userRepo ports.UserRepository, likeRepo ports.LikeRepository, clock clockwork.Clock, l *zap.Logger) ports.PollService {
	return &pollService{
		pollRepo: pollRepo,
		userRepo: userRepo,
		likeRepo: likeRepo,
		clock:    clock,
		l:        l,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.PollView, error) {
	question, err := normalizeQuestion(input.Question)
	if err != nil {
		return nil, err
	}
	options, err := normalizeOptions(input.Options)
	if err != nil {
		return nil, err
	}

	poll := &domain.Poll{
		ID:        uuid.New(),
		Question:  question,
		Options:   options,
		CreatorID: input.CreatorID,
		CreatedAt: now(s.clock),
	}

	s.l.Debug("creating poll", zap.String("poll_id", poll.ID.String()), zap.Strings("options", options))
	if err := s.pollRepo.Save(ctx, poll); err != nil {
		s.l.Error("failed to save poll", zap.Error(err))
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	views, err := s.views(ctx, []*domain.Poll{poll})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *pollService) GetPoll(ctx context.Context, id uuid.UUID) (*domain.PollView, error) {
	poll, err := s.pollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.views(ctx, []*domain.Poll{poll})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *pollService) ListPolls(ctx context.Context) ([]*domain.PollView, error) {
	polls, err := s.pollRepo.List(ctx)
	if err != nil {
		s.l.Error("failed to list polls", zap.Error(err))
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	return s.views(ctx, polls)
}

// views decorates polls with creator usernames and like counts. Usernames
// are looked up rather than stored with the poll so renames never go stale.
func (s *pollService) views(ctx context.Context, polls []*domain.Poll) ([]*domain.PollView, error) {
	pollIDs := make([]uuid.UUID, 0, len(polls))
	creatorIDs := make([]uuid.UUID, 0, len(polls))
	seen := make(map[uuid.UUID]struct{}, len(polls))
	for _, p := range polls {
		pollIDs = append(pollIDs, p.ID)
		if _, ok := seen[p.CreatorID]; !ok {
			seen[p.CreatorID] = struct{}{}
			creatorIDs = append(creatorIDs, p.CreatorID)
		}
	}

	usernames, err := s.userRepo.Usernames(ctx, creatorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve creators: %w", err)
	}
	likes, err := s.likeRepo.CountByPolls(ctx, pollIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	views := make([]*domain.PollView, 0, len(polls))
	for _, p := range polls {
		username, ok := usernames[p.CreatorID]
		if !ok {
			username = unknownUsername
		}
		views = append(views, &domain.PollView{
			Poll:     *p,
			Username: username,
			Likes:    likes[p.ID],
		})
	}
	return views, nil
}

// now truncates to the storage precision so values returned to callers
// equal what a later read returns.
func now(clock clockwork.Clock) time.Time {
	return clock.Now().UTC().Truncate(time.Microsecond)
}
