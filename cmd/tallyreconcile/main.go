package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/vncsmyrnk/pollify/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollify/internal/config"
	"github.com/vncsmyrnk/pollify/internal/core/services"
	"github.com/vncsmyrnk/pollify/internal/platform/logger"
	"go.uber.org/zap"
)

// tallyreconcile compares the materialised vote tallies and like counts with
// the vote and like ledgers. In report mode it exits 1 when any counter has
// drifted; with -repair it rebuilds drifted counters and exits 0.
func main() {
	repair := flag.Bool("repair", false, "rebuild drifted counters from the ledgers")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall time limit")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer l.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.Postgres.DSN())
	if err != nil {
		l.Fatal("failed to connect", zap.Error(err))
	}
	defer db.Close()

	summarySvc := services.NewSummaryService(
		postgres.NewPollRepository(db),
		postgres.NewPollResultRepository(db),
		l,
	)

	l.Info("starting tally reconciliation", zap.Bool("repair", *repair))
	drifts, err := summarySvc.Reconcile(ctx, *repair)
	if err != nil {
		l.Fatal("reconciliation failed", zap.Error(err))
	}

	for _, d := range drifts {
		l.Info("drift",
			zap.String("poll_id", d.PollID.String()),
			zap.String("kind", string(d.Kind)),
			zap.String("option", d.Option),
			zap.Int64("stored", d.Stored),
			zap.Int64("actual", d.Actual))
	}
	l.Info("tally reconciliation completed", zap.Int("drifted_counters", len(drifts)), zap.Bool("repaired", *repair && len(drifts) > 0))

	if len(drifts) > 0 && !*repair {
		l.Sync()
		os.Exit(1)
	}
}
