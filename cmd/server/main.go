package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vncsmyrnk/pollify/internal/adapters/cache/redis"
	"github.com/vncsmyrnk/pollify/internal/adapters/handler/http"
	"github.com/vncsmyrnk/pollify/internal/adapters/metrics"
	"github.com/vncsmyrnk/pollify/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollify/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollify/internal/config"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
	"github.com/vncsmyrnk/pollify/internal/core/services"
	"github.com/vncsmyrnk/pollify/internal/platform/logger"
	"go.uber.org/zap"
)

type repositories struct {
	polls    ports.PollRepository
	votes    ports.VoteRepository
	likes    ports.LikeRepository
	comments ports.CommentRepository
	users    ports.UserRepository
}

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l); err != nil {
		l.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, l *zap.Logger) error {
	repos, closeStorage, err := openStorage(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer closeStorage()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var cache ports.ResultCache
	if cfg.Redis.Enabled() {
		rdb, err := redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = redis.NewResultCache(rdb, cfg.Redis.ResultsCacheTTL, m)
		l.Info("results cache enabled", zap.Duration("ttl", cfg.Redis.ResultsCacheTTL))
	}

	clock := clockwork.NewRealClock()

	authSvc := services.NewAuthService(repos.users, []byte(cfg.JWTSecret), cfg.TokenTTL, clock, l)
	userSvc := services.NewUserService(repos.users)
	pollSvc := services.NewPollService(repos.polls, repos.users, repos.likes, clock, l)
	voteSvc := services.NewVoteService(repos.polls, repos.votes, repos.likes, cache, clock, l)
	likeSvc := services.NewLikeService(repos.polls, repos.likes, cache, clock, l)
	commentSvc := services.NewCommentService(repos.polls, repos.comments, repos.users, clock, l)

	router := http.NewHandler(http.RouterConfig{
		Auth:           http.NewAuthHandler(authSvc, cfg.TokenTTL, l),
		User:           http.NewUserHandler(userSvc, l),
		Poll:           http.NewPollHandler(pollSvc, m, l),
		Vote:           http.NewVoteHandler(voteSvc, m, l),
		Like:           http.NewLikeHandler(likeSvc, m, l),
		Comment:        http.NewCommentHandler(commentSvc, m, l),
		AuthService:    authSvc,
		Metrics:        m,
		Gatherer:       reg,
		AllowedOrigins: cfg.CORSOrigins,
		Logger:         l,
	})

	server := &stdhttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		l.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("storage", cfg.Storage))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	l.Info("gracefully shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config, l *zap.Logger) (repositories, func(), error) {
	if cfg.Storage == config.StorageMemory {
		l.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			polls:    store.Polls(),
			votes:    store.Votes(),
			likes:    store.Likes(),
			comments: store.Comments(),
			users:    store.Users(),
		}, func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.Postgres.DSN())
	if err != nil {
		return repositories{}, nil, err
	}
	return postgresRepositories(db), func() { db.Close() }, nil
}

func postgresRepositories(db *sql.DB) repositories {
	return repositories{
		polls:    postgres.NewPollRepository(db),
		votes:    postgres.NewVoteRepository(db),
		likes:    postgres.NewLikeRepository(db),
		comments: postgres.NewCommentRepository(db),
		users:    postgres.NewUserRepository(db),
	}
}
