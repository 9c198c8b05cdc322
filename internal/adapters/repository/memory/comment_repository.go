package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

type commentRepository struct {
	s *Store
}

func (r *commentRepository) Save(_ context.Context, comment *domain.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.polls[comment.PollID]; !ok {
		return domain.ErrPollNotFound
	}

	cp := *comment
	cp.Username = ""
	r.s.comments[comment.PollID] = append(r.s.comments[comment.PollID], &cp)
	return nil
}

func (r *commentRepository) ListByPoll(_ context.Context, pollID uuid.UUID) ([]*domain.Comment, error) {
	r.s.mu.RLock()
	stored := r.s.comments[pollID]
	comments := make([]*domain.Comment, 0, len(stored))
	for _, c := range stored {
		cp := *c
		cp.Username = r.s.usernameLocked(c.UserID)
		comments = append(comments, &cp)
	}
	r.s.mu.RUnlock()

	sort.SliceStable(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID.String() < comments[j].ID.String()
	})
	return comments, nil
}
