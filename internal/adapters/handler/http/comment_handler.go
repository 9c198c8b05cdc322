package http

import (
	"net/http"

	"github.com/vncsmyrnk/pollify/internal/adapters/metrics"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service ports.CommentService
	metrics *metrics.Metrics
	l       *zap.Logger
}

func NewCommentHandler(service ports.CommentService, m *metrics.Metrics, l *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		metrics: m,
		l:       l,
	}
}

type addCommentRequest struct {
	Content string `json:"content"`
}

// AddComment godoc
// @Summary      Appends a comment to a poll
// @Tags         comments
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400,401,404
// @Router       /polls/{id}/comments [post]
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
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

	var req addCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.l, err)
		return
	}

	comment, err := h.service.Add(r.Context(), ports.AddCommentInput{
		PollID:  pollID,
		UserID:  userID,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}

	h.metrics.ObserveComment()
	writeJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}

	comments, err := h.service.List(r.Context(), pollID)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
