package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
)

func TestCommentService_Add(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	alice := f.user(t, "alice")
	poll := f.poll(t, alice.ID, "Coffee or tea?", "Coffee", "Tea")

	comment, err := f.comments.Add(ctx, ports.AddCommentInput{PollID: poll.ID, UserID: alice.ID, Content: "  Coffee, obviously  "})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, comment.ID)
	assert.Equal(t, poll.ID, comment.PollID)
	assert.Equal(t, alice.ID, comment.UserID)
	assert.Equal(t, "alice", comment.Username)
	assert.Equal(t, "Coffee, obviously", comment.Content)
	assert.Equal(t, epoch, comment.CreatedAt)
}

func TestCommentService_Add_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	alice := f.user(t, "alice")
	poll := f.poll(t, alice.ID, "Coffee or tea?", "Coffee", "Tea")

	tests := []struct {
		name    string
		pollID  uuid.UUID
		content string
		wantErr error
	}{
		{name: "empty", pollID: poll.ID, content: "", wantErr: domain.ErrValidation},
		{name: "whitespace", pollID: poll.ID, content: " \n\t ", wantErr: domain.ErrValidation},
		{name: "too long", pollID: poll.ID, content: strings.Repeat("é", 2001), wantErr: domain.ErrValidation},
		{name: "unknown poll", pollID: uuid.New(), content: "hello", wantErr: domain.ErrPollNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.comments.Add(ctx, ports.AddCommentInput{PollID: tt.pollID, UserID: alice.ID, Content: tt.content})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := f.comments.Add(ctx, ports.AddCommentInput{PollID: poll.ID, UserID: alice.ID, Content: strings.Repeat("é", 2000)})
	assert.NoError(t, err)
}

func TestCommentService_List_Ordered(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	poll := f.poll(t, alice.ID, "Coffee or tea?", "Coffee", "Tea")

	comments, err := f.comments.List(ctx, poll.ID)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)

	var want []string
	for i, u := range []*domain.User{alice, bob, alice} {
		content := []string{"first", "second", "third"}[i]
		_, err := f.comments.Add(ctx, ports.AddCommentInput{PollID: poll.ID, UserID: u.ID, Content: content})
		require.NoError(t, err)
		want = append(want, content)
		f.clock.Advance(time.Millisecond)
	}

	comments, err = f.comments.List(ctx, poll.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)

	var got []string
	for _, c := range comments {
		got = append(got, c.Content)
	}
	assert.Equal(t, want, got)
	assert.Equal(t, "bob", comments[1].Username)
	assert.True(t, comments[0].CreatedAt.Before(comments[2].CreatedAt))
}

func TestCommentService_List_UnknownPoll(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.comments.List(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}
