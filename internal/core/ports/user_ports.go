package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

type UserRepository interface {
	// Create returns domain.ErrUsernameTaken when the username exists.
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Usernames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error) // returns user, access_token, error
	Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error)
}
