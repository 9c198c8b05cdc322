package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

type likeRepository struct {
	s *Store
}

func (r *likeRepository) Add(_ context.Context, like *domain.Like) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.polls[like.PollID]; !ok {
		return false, domain.ErrPollNotFound
	}
	if indexOfLiker(r.s.likes[like.PollID], like.UserID) >= 0 {
		return false, nil
	}

	cp := *like
	r.s.likes[like.PollID] = append(r.s.likes[like.PollID], &cp)
	return true, nil
}

func (r *likeRepository) Remove(_ context.Context, pollID, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	likes := r.s.likes[pollID]
	i := indexOfLiker(likes, userID)
	if i < 0 {
		return false, nil
	}

	// Rebuild rather than reslice so earlier snapshots handed out by
	// ListLikers are never mutated.
	kept := make([]*domain.Like, 0, len(likes)-1)
	kept = append(kept, likes[:i]...)
	kept = append(kept, likes[i+1:]...)
	r.s.likes[pollID] = kept
	return true, nil
}

func (r *likeRepository) Exists(_ context.Context, pollID, userID uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return indexOfLiker(r.s.likes[pollID], userID) >= 0, nil
}

func (r *likeRepository) Count(_ context.Context, pollID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.likes[pollID])), nil
}

func (r *likeRepository) CountByPolls(_ context.Context, pollIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[uuid.UUID]int64, len(pollIDs))
	for _, id := range pollIDs {
		counts[id] = int64(len(r.s.likes[id]))
	}
	return counts, nil
}

func (r *likeRepository) ListLikers(_ context.Context, pollID uuid.UUID) ([]domain.Liker, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	likes := r.s.likes[pollID]
	likers := make([]domain.Liker, 0, len(likes))
	for _, l := range likes {
		likers = append(likers, domain.Liker{UserID: l.UserID, Username: r.s.usernameLocked(l.UserID)})
	}
	return likers, nil
}

func indexOfLiker(likes []*domain.Like, userID uuid.UUID) int {
	for i, l := range likes {
		if l.UserID == userID {
			return i
		}
	}
	return -1
}
