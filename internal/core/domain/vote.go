package domain

import (
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	PollID uuid.UUID `json:"poll_id"`
	UserID uuid.UUID `json:"user_id"`
	Option string    `json:"option"`
	CastAt time.Time `json:"cast_at"`
}

type VoteResult struct {
	Message string    `json:"message"`
	PollID  uuid.UUID `json:"poll_id"`
	Option  string    `json:"option"`
}

type VoteStatus struct {
	HasVoted       bool    `json:"has_voted"`
	SelectedOption *string `json:"selected_option"`
}
