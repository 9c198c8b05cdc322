package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/adapters/metrics"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"go.uber.org/zap"
)

type LikeHandler struct {
	service ports.LikeService
	metrics *metrics.Metrics
	l       *zap.Logger
}

func NewLikeHandler(service ports.LikeService, m *metrics.Metrics, l *zap.Logger) *LikeHandler {
	return &LikeHandler{
		service: service,
		metrics: m,
		l:       l,
	}
}

type likeCountResponse struct {
	PollID uuid.UUID `json:"poll_id"`
	Likes  int64     `json:"likes"`
}

// Like godoc
// @Summary      Likes a poll
// @Description  Idempotent. Liking an already liked poll returns the unchanged state.
// @Tags         likes
// @Produce      json
// @Success      200
// @Failure      401,404
// @Router       /polls/{id}/like [post]
func (h *LikeHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "like", h.service.Like)
}

// Unlike godoc
// @Summary      Removes the caller's like
// @Description  Idempotent. Unliking a poll that is not liked is a no-op.
// @Tags         likes
// @Produce      json
// @Success      200
// @Failure      401,404
// @Router       /polls/{id}/like [delete]
func (h *LikeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, "unlike", h.service.Unlike)
}

func (h *LikeHandler) apply(w http.ResponseWriter, r *http.Request, action string, op func(ctx context.Context, pollID, userID uuid.UUID) (*domain.LikeResult, error)) {
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

	result, err := op(r.Context(), pollID, userID)
	if err != nil {
		h.metrics.ObserveLike(action, "error")
		writeError(w, r, h.l, err)
		return
	}

	h.metrics.ObserveLike(action, "ok")
	writeJSON(w, http.StatusOK, result)
}

func (h *LikeHandler) LikeStatus(w http.ResponseWriter, r *http.Request) {
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

func (h *LikeHandler) LikeCount(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}

	count, err := h.service.Count(r.Context(), pollID)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, likeCountResponse{PollID: pollID, Likes: count})
}

func (h *LikeHandler) Likers(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}

	likers, err := h.service.Likers(r.Context(), pollID)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, likers)
}
