package http

import (
	"net/http"

	"github.com/vncsmyrnk/pollify/internal/adapters/metrics"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"go.uber.org/zap"
)

type PollHandler struct {
	service ports.PollService
	metrics *metrics.Metrics
	l       *zap.Logger
}

func NewPollHandler(service ports.PollService, m *metrics.Metrics, l *zap.Logger) *PollHandler {
	return &PollHandler{
		service: service,
		metrics: m,
		l:       l,
	}
}

type createPollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// CreatePoll godoc
// @Summary      Creates a poll
// @Tags         polls
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400,401
// @Router       /polls/ [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}

	var req createPollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.l, err)
		return
	}

	poll, err := h.service.Create(r.Context(), ports.CreatePollInput{
		CreatorID: userID,
		Question:  req.Question,
		Options:   req.Options,
	})
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}

	h.metrics.ObservePollCreated()
	writeJSON(w, http.StatusCreated, poll)
}

// ListPolls godoc
// @Summary      Lists every poll, newest first
// @Tags         polls
// @Produce      json
// @Success      200
// @Router       /polls/ [get]
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.ListPolls(r.Context())
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, polls)
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}

	poll, err := h.service.GetPoll(r.Context(), pollID)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, poll)
}
