package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"go.uber.org/zap"
)

type voteService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
	likeRepo ports.LikeRepository
	cache    ports.ResultCache
	clock    clockwork.Clock
	l        *zap.Logger
}

// NewVoteService builds the vote façade. cache may be nil.
func NewVoteService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository, likeRepo ports.LikeRepository, cache ports.ResultCache, clock clockwork.Clock, l *zap.Logger) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		likeRepo: likeRepo,
		cache:    cache,
		clock:    clock,
		l:        l,
	}
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) (*domain.VoteResult, error) {
	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, err
	}

	if !poll.HasOption(input.Option) {
		return nil, validationErr("%q is not an option of this poll", input.Option)
	}

	vote := &domain.Vote{
		PollID: input.PollID,
		UserID: input.UserID,
		Option: input.Option,
		CastAt: now(s.clock),
	}

	if err := s.voteRepo.SaveVote(ctx, vote); err != nil {
		if errors.Is(err, domain.ErrAlreadyVoted) {
			s.l.Debug("duplicate vote rejected",
				zap.String("poll_id", input.PollID.String()),
				zap.String("user_id", input.UserID.String()))
			return nil, err
		}
		s.l.Error("failed to save vote", zap.String("poll_id", input.PollID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}

	invalidateResults(ctx, s.cache, s.l, poll.ID)

	return &domain.VoteResult{
		Message: "Vote recorded successfully",
		PollID:  poll.ID,
		Option:  vote.Option,
	}, nil
}

func (s *voteService) Status(ctx context.Context, pollID, userID uuid.UUID) (*domain.VoteStatus, error) {
	if _, err := s.pollRepo.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	vote, err := s.voteRepo.GetVote(ctx, pollID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	if vote == nil {
		return &domain.VoteStatus{HasVoted: false}, nil
	}

	option := vote.Option
	return &domain.VoteStatus{HasVoted: true, SelectedOption: &option}, nil
}

func (s *voteService) Results(ctx context.Context, pollID uuid.UUID) (*domain.PollResults, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, pollID)
		if err != nil {
			s.l.Warn("results cache read failed", zap.String("poll_id", pollID.String()), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	tally, err := s.voteRepo.Tally(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to tally votes: %w", err)
	}
	likes, err := s.likeRepo.Count(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	results := make(domain.Tally, len(poll.Options))
	for _, opt := range poll.Options {
		results[opt] = tally[opt]
	}

	res := &domain.PollResults{
		PollID:     poll.ID,
		Question:   poll.Question,
		Results:    results,
		TotalVotes: results.Total(),
		Likes:      likes,
	}

	if s.cache != nil {
		// A vote landing between the reads above and this write leaves a
		// stale entry, bounded by the cache TTL.
		if err := s.cache.Set(ctx, res); err != nil {
			s.l.Warn("results cache write failed", zap.String("poll_id", pollID.String()), zap.Error(err))
		}
	}
	return res, nil
}

// invalidateResults drops cached results after a ledger write. A failure
// only delays visibility until the cache entry expires.
func invalidateResults(ctx context.Context, cache ports.ResultCache, l *zap.Logger, pollID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, pollID); err != nil {
		l.Warn("results cache invalidation failed", zap.String("poll_id", pollID.String()), zap.Error(err))
	}
}
