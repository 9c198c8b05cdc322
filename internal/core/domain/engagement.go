package domain

import (
	"time"

	"github.com/google/uuid"
)

type Like struct {
	PollID  uuid.UUID `json:"poll_id"`
	UserID  uuid.UUID `json:"user_id"`
	LikedAt time.Time `json:"liked_at"`
}

type LikeStatus struct {
	HasLiked bool `json:"has_liked"`
}

type LikeResult struct {
	HasLiked bool  `json:"has_liked"`
	Likes    int64 `json:"likes"`
}

type Liker struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// Comment is append-only. Username is resolved at read time and never
// persisted with the comment.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"poll_id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
