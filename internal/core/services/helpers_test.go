package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollify/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"github.com/vncsmyrnk/pollify/internal/core/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "test-secret"
	testTokenTTL = 30 * time.Minute
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memory.Store
	clock    *clockwork.FakeClock
	auth     *services.AuthService
	polls    ports.PollService
	votes    ports.VoteService
	likes    ports.LikeService
	comments ports.CommentService
}

func newFixture(t *testing.T, cache ports.ResultCache) *fixture {
	t.Helper()

	store := memory.NewStore()
	clock := clockwork.NewFakeClockAt(epoch)
	l := zap.NewNop()

	return &fixture{
		store:    store,
		clock:    clock,
		auth:     services.NewAuthService(store.Users(), []byte(testSecret), testTokenTTL, clock, l).WithHashCost(bcrypt.MinCost),
		polls:    services.NewPollService(store.Polls(), store.Users(), store.Likes(), clock, l),
		votes:    services.NewVoteService(store.Polls(), store.Votes(), store.Likes(), cache, clock, l),
		likes:    services.NewLikeService(store.Polls(), store.Likes(), cache, clock, l),
		comments: services.NewCommentService(store.Polls(), store.Comments(), store.Users(), clock, l),
	}
}

func (f *fixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), username, "password123")
	require.NoError(t, err)
	return u
}

func (f *fixture) poll(t *testing.T, creator uuid.UUID, question string, options ...string) *domain.PollView {
	t.Helper()
	p, err := f.polls.Create(context.Background(), ports.CreatePollInput{
		CreatorID: creator,
		Question:  question,
		Options:   options,
	})
	require.NoError(t, err)
	return p
}

// recordingCache is an in-process ports.ResultCache that records calls.
type recordingCache struct {
	mu           sync.Mutex
	entries      map[uuid.UUID]domain.PollResults
	hits, misses int
	invalidated  []uuid.UUID
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[uuid.UUID]domain.PollResults)}
}

func (c *recordingCache) Get(_ context.Context, pollID uuid.UUID) (*domain.PollResults, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[pollID]
	if !ok {
		c.misses++
		return nil, false, nil
	}
	c.hits++
	return &r, true, nil
}

func (c *recordingCache) Set(_ context.Context, results *domain.PollResults) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[results.PollID] = *results
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, pollID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, pollID)
	c.invalidated = append(c.invalidated, pollID)
	return nil
}

func (c *recordingCache) cached(pollID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[pollID]
	return ok
}
