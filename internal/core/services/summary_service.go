package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"go.uber.org/zap"
)

type summaryService struct {
	pollRepo       ports.PollRepository
	pollResultRepo ports.PollResultRepository
	l              *zap.Logger
}

func NewSummaryService(pollRepo ports.PollRepository, pollResultRepo ports.PollResultRepository, l *zap.Logger) ports.SummaryService {
	return &summaryService{
		pollRepo:       pollRepo,
		pollResultRepo: pollResultRepo,
		l:              l,
	}
}

// Reconcile compares every poll's materialised counters with its ledgers.
// With repair set, drifted polls have their counters rebuilt. The returned
// drift is what was found before any repair.
func (s *summaryService) Reconcile(ctx context.Context, repair bool) ([]domain.CounterDrift, error) {
	polls, err := s.pollRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all polls: %w", err)
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		drifts []domain.CounterDrift
	)
	errChan := make(chan error, len(polls))

	for _, poll := range polls {
		wg.Add(1)
		go func(pID uuid.UUID) {
			defer wg.Done()

			found, err := s.pollResultRepo.FindDrift(ctx, pID)
			if err != nil {
				errChan <- fmt.Errorf("failed to inspect poll %s: %w", pID, err)
				return
			}
			if len(found) == 0 {
				return
			}

			mu.Lock()
			drifts = append(drifts, found...)
			mu.Unlock()

			s.l.Warn("counter drift detected", zap.String("poll_id", pID.String()), zap.Int("counters", len(found)))
			if !repair {
				return
			}
			if err := s.pollResultRepo.SummarizeVotes(ctx, pID); err != nil {
				errChan <- fmt.Errorf("failed to summarize poll %s: %w", pID, err)
			}
		}(poll.ID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return drifts, err
		}
	}

	sort.Slice(drifts, func(i, j int) bool {
		if drifts[i].PollID != drifts[j].PollID {
			return drifts[i].PollID.String() < drifts[j].PollID.String()
		}
		if drifts[i].Kind != drifts[j].Kind {
			return drifts[i].Kind < drifts[j].Kind
		}
		return drifts[i].Option < drifts[j].Option
	})
	return drifts, nil
}
