package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vncsmyrnk/pollify/internal/adapters/metrics"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Auth           *AuthHandler
	User           *UserHandler
	Poll           *PollHandler
	Vote           *VoteHandler
	Like           *LikeHandler
	Comment        *CommentHandler
	AuthService    ports.AuthService
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	Logger         *zap.Logger
}

func NewHandler(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(cfg.Logger))
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	requireAuth := RequireAuth(cfg.AuthService, cfg.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(cfg.Gatherer))
	}

	r.Post("/register", cfg.Auth.Register)
	r.Post("/login", cfg.Auth.Login)
	r.With(requireAuth).Get("/me", cfg.User.GetMe)

	r.Route("/polls", func(r chi.Router) {
		r.Get("/", cfg.Poll.ListPolls)
		r.With(requireAuth).Post("/", cfg.Poll.CreatePoll)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", cfg.Poll.GetPoll)
			r.Get("/results", cfg.Vote.Results)
			r.Get("/comments", cfg.Comment.ListComments)
			r.Get("/likes", cfg.Like.Likers)
			r.Get("/like-count", cfg.Like.LikeCount)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/vote-status", cfg.Vote.VoteStatus)
				r.Post("/vote", cfg.Vote.VoteOnPoll)
				r.Post("/comments", cfg.Comment.AddComment)
				r.Get("/like-status", cfg.Like.LikeStatus)
				r.Post("/like", cfg.Like.Like)
				r.Delete("/like", cfg.Like.Unlike)
			})
		})
	})

	return r
}
