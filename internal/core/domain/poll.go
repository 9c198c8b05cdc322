package domain

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Options   []string  `json:"options"`
	CreatorID uuid.UUID `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

// HasOption reports whether option is one of the poll's declared options.
// Matching is exact and case-sensitive.
func (p *Poll) HasOption(option string) bool {
	for _, o := range p.Options {
		if o == option {
			return true
		}
	}
	return false
}

// PollView is a poll as the client renders it: the definition plus the
// creator's current username and the current like count.
type PollView struct {
	Poll
	Username string `json:"username"`
	Likes    int64  `json:"likes"`
}

// Tally maps each option to the number of votes referencing it.
type Tally map[string]int64

func (t Tally) Total() int64 {
	var total int64
	for _, c := range t {
		total += c
	}
	return total
}

type PollResults struct {
	PollID     uuid.UUID `json:"poll_id"`
	Question   string    `json:"question"`
	Results    Tally     `json:"results"`
	TotalVotes int64     `json:"total_votes"`
	Likes      int64     `json:"likes"`
}

type DriftKind string

const (
	DriftVotes DriftKind = "votes"
	DriftLikes DriftKind = "likes"
)

// CounterDrift describes a materialised counter that disagrees with the
// ledger it is derived from.
type CounterDrift struct {
	PollID uuid.UUID `json:"poll_id"`
	Kind   DriftKind `json:"kind"`
	Option string    `json:"option,omitempty"`
	Stored int64     `json:"stored"`
	Actual int64     `json:"actual"`
}
