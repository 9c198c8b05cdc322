package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.usersByName[user.Username]; taken {
		return domain.ErrUsernameTaken
	}

	cp := *user
	r.s.users[user.ID] = &cp
	r.s.usersByName[user.Username] = user.ID
	return nil
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.usersByName[username]
	if !ok {
		return nil, nil
	}
	cp := *r.s.users[id]
	return &cp, nil
}

func (r *userRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (r *userRepository) Usernames(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	names := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			names[id] = u.Username
		}
	}
	return names, nil
}
