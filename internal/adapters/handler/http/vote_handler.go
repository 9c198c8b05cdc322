package http

import (
	"errors"
	"net/http"

	"github.com/vncsmyrnk/pollify/internal/adapters/metrics"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"go.uber.org/zap"
)

type VoteHandler struct {
	service ports.VoteService
	metrics *metrics.Metrics
	l       *zap.Logger
}

func NewVoteHandler(service ports.VoteService, m *metrics.Metrics, l *zap.Logger) *VoteHandler {
	return &VoteHandler{
		service: service,
		metrics: m,
		l:       l,
	}
}

type voteRequest struct {
	Option string `json:"option"`
}

// VoteOnPoll godoc
// @Summary      Casts the caller's single vote on a poll
// @Tags         votes
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400,401,404
// @Failure      409 "already voted"
// @Router       /polls/{id}/vote [post]
func (h *VoteHandler) VoteOnPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}
	userID, err := userIDFromContext(r)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}

	var req voteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.l, err)
		return
	}

	result, err := h.service.Vote(r.Context(), ports.VoteInput{
		PollID: pollID,
		UserID: userID,
		Option: req.Option,
	})
	if err != nil {
		h.metrics.ObserveVote(voteOutcome(err))
		writeError(w, r, h.l, err)
		return
	}

	h.metrics.ObserveVote("accepted")
	writeJSON(w, http.StatusCreated, result)
}

func (h *VoteHandler) VoteStatus(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}
	userID, err := userIDFromContext(r)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}

	status, err := h.service.Status(r.Context(), pollID, userID)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Results godoc
// @Summary      Current tally and like count of a poll
// @Description  Clients poll this endpoint on a fixed interval.
// @Tags         votes
// @Produce      json
// @Success      200
// @Failure      400,404
// @Router       /polls/{id}/results [get]
func (h *VoteHandler) Results(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}

	results, err := h.service.Results(r.Context(), pollID)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func voteOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyVoted):
		return "duplicate"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrPollNotFound):
		return "not_found"
	}
	return "error"
}
