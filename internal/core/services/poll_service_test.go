package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
)

func TestPollService_Create(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.user(t, "alice")

	poll, err := f.polls.Create(context.Background(), ports.CreatePollInput{
		CreatorID: alice.ID,
		Question:  "  Coffee or tea?  ",
		Options:   []string{" Coffee", "Tea "},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, poll.ID)
	assert.Equal(t, "Coffee or tea?", poll.Question)
	assert.Equal(t, []string{"Coffee", "Tea"}, poll.Options)
	assert.Equal(t, alice.ID, poll.CreatorID)
	assert.Equal(t, "alice", poll.Username)
	assert.Equal(t, int64(0), poll.Likes)
	assert.Equal(t, epoch, poll.CreatedAt)
}

func TestPollService_Create_Validation(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.user(t, "alice")

	tests := []struct {
		name     string
		question string
		options  []string
	}{
		{name: "empty question", question: "   ", options: []string{"A", "B"}},
		{name: "no options", question: "Q?", options: nil},
		{name: "single option", question: "Q?", options: []string{"A"}},
		{name: "blank option", question: "Q?", options: []string{"A", "  "}},
		{name: "duplicate option", question: "Q?", options: []string{"A", "B", "A"}},
		{name: "duplicate after trim", question: "Q?", options: []string{"A", " A "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.polls.Create(context.Background(), ports.CreatePollInput{
				CreatorID: alice.ID,
				Question:  tt.question,
				Options:   tt.options,
			})
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	polls, err := f.polls.ListPolls(context.Background())
	require.NoError(t, err)
	assert.Empty(t, polls)
}

func TestPollService_Create_OptionsAreCaseSensitive(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.user(t, "alice")

	poll := f.poll(t, alice.ID, "Which?", "Yes", "yes")
	assert.Equal(t, []string{"Yes", "yes"}, poll.Options)
}

func TestPollService_GetPoll(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	created := f.poll(t, alice.ID, "Best season?", "Summer", "Winter")

	_, err := f.likes.Like(context.Background(), created.ID, bob.ID)
	require.NoError(t, err)

	got, err := f.polls.GetPoll(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Poll, got.Poll)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, int64(1), got.Likes)

	_, err = f.polls.GetPoll(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestPollService_ListPolls_NewestFirst(t *testing.T) {
	f := newFixture(t, nil)
	alice := f.user(t, "alice")

	first := f.poll(t, alice.ID, "First?", "A", "B")
	f.clock.Advance(time.Second)
	second := f.poll(t, alice.ID, "Second?", "A", "B")
	f.clock.Advance(time.Second)
	third := f.poll(t, alice.ID, "Third?", "A", "B")

	polls, err := f.polls.ListPolls(context.Background())
	require.NoError(t, err)
	require.Len(t, polls, 3)
	assert.Equal(t, third.ID, polls[0].ID)
	assert.Equal(t, second.ID, polls[1].ID)
	assert.Equal(t, first.ID, polls[2].ID)
}

func TestPollService_UnknownCreator(t *testing.T) {
	f := newFixture(t, nil)

	poll := f.poll(t, uuid.New(), "Orphan?", "A", "B")
	assert.Equal(t, "Unknown", poll.Username)
}
