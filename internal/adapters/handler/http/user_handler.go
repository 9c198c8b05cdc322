package http

import (
	"net/http"

	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"go.uber.org/zap"
)

type UserHandler struct {
	service ports.UserService
	l       *zap.Logger
}

func NewUserHandler(service ports.UserService, l *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		l:       l,
	}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.l, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}
