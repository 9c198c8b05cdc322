package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

func TestAuthService_RegisterLoginAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	user, err := f.auth.Register(ctx, " alice ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", user.PasswordHash)

	loggedIn, token, err := f.auth.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)

	userID, err := f.auth.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthService_TokenClaims(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	user := f.user(t, "alice")

	_, token, err := f.auth.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, float64(epoch.Unix()), claims["iat"])
	assert.Equal(t, float64(epoch.Add(testTokenTTL).Unix()), claims["exp"])
}

func TestAuthService_Register_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.user(t, "alice")

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "taken", username: "alice", password: "password123", wantErr: domain.ErrUsernameTaken},
		{name: "taken after trim", username: "  alice", password: "password123", wantErr: domain.ErrUsernameTaken},
		{name: "short username", username: "al", password: "password123", wantErr: domain.ErrValidation},
		{name: "short password", username: "bob", password: "12345", wantErr: domain.ErrValidation},
		{name: "long password", username: "bob", password: string(make([]byte, 73)), wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Register(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.user(t, "alice")

	_, _, err := f.auth.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = f.auth.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Authenticate_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	user := f.user(t, "alice")

	sign := func(method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	validClaims := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub": user.ID.String(),
			"iat": epoch.Unix(),
			"exp": epoch.Add(time.Minute).Unix(),
		}
	}

	noExp := validClaims()
	delete(noExp, "exp")
	badSub := validClaims()
	badSub["sub"] = "not-a-uuid"
	unknownSub := validClaims()
	unknownSub["sub"] = uuid.New().String()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "other secret", token: sign(jwt.SigningMethodHS256, []byte("other-secret"), validClaims())},
		{name: "none algorithm", token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims())},
		{name: "missing exp", token: sign(jwt.SigningMethodHS256, []byte(testSecret), noExp)},
		{name: "malformed subject", token: sign(jwt.SigningMethodHS256, []byte(testSecret), badSub)},
		{name: "unknown subject", token: sign(jwt.SigningMethodHS256, []byte(testSecret), unknownSub)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := f.auth.Authenticate(ctx, tt.token)
			assert.ErrorIs(t, err, domain.ErrUnauthenticated)
			assert.Equal(t, uuid.Nil, userID)
		})
	}
}

func TestAuthService_Authenticate_Expired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.user(t, "alice")

	_, token, err := f.auth.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	f.clock.Advance(testTokenTTL - time.Second)
	_, err = f.auth.Authenticate(ctx, token)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Second)
	_, err = f.auth.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
