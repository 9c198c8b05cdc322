package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/vncsmyrnk/pollify/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollify/internal/config"
	"github.com/vncsmyrnk/pollify/internal/platform/logger"
	"go.uber.org/zap"
)

// Usage: migrations [name]
//
// Without a name every *.up.sql file is applied in order. With a name only
// the migration file containing it is applied, e.g. "0001_init.down".
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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.Postgres.DSN())
	if err != nil {
		l.Fatal("failed to connect", zap.Error(err))
	}
	defer db.Close()

	if len(os.Args) < 2 {
		if err := postgres.Migrate(ctx, db); err != nil {
			l.Fatal("migration failed", zap.Error(err))
		}
		l.Info("all migrations applied")
		return
	}

	migrationName := os.Args[1]
	if err := postgres.MigrateOne(ctx, db, migrationName); err != nil {
		l.Fatal("migration failed", zap.String("name", migrationName), zap.Error(err))
	}
	l.Info("migration file executed successfully", zap.String("name", migrationName))
}
