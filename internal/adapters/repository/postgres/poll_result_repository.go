package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
)

type pollResultRepository struct {
	db *sql.DB
}

func NewPollResultRepository(db *sql.DB) ports.PollResultRepository {
	return &pollResultRepository{
		db: db,
	}
}

// FindDrift compares poll_results and polls.like_count with the ledgers.
// Each comparison is a single statement, so a vote committed concurrently
// is either fully visible or not at all and never shows up as drift.
func (r *pollResultRepository) FindDrift(ctx context.Context, pollID uuid.UUID) ([]domain.CounterDrift, error) {
	var drifts []domain.CounterDrift

	var storedLikes, actualLikes int64
	queryLikes := `
		SELECT p.like_count, COUNT(l.user_id)
		FROM polls p
		LEFT JOIN likes l ON l.poll_id = p.id
		WHERE p.id = $1
		GROUP BY p.id
	`
	err := r.db.QueryRowContext(ctx, queryLikes, pollID).Scan(&storedLikes, &actualLikes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to compare like count: %w", err)
	}
	if storedLikes != actualLikes {
		drifts = append(drifts, domain.CounterDrift{PollID: pollID, Kind: domain.DriftLikes, Stored: storedLikes, Actual: actualLikes})
	}

	queryVotes := `
		SELECT o.text, COALESCE(pr.vote_count, 0), COUNT(v.user_id)
		FROM poll_options o
		LEFT JOIN poll_results pr ON pr.poll_id = o.poll_id AND pr.option_text = o.text
		LEFT JOIN votes v ON v.poll_id = o.poll_id AND v.option_text = o.text
		WHERE o.poll_id = $1
		GROUP BY o.text, pr.vote_count
		HAVING COALESCE(pr.vote_count, 0) <> COUNT(v.user_id)
	`
	rows, err := r.db.QueryContext(ctx, queryVotes, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to compare tally: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		d := domain.CounterDrift{PollID: pollID, Kind: domain.DriftVotes}
		if err := rows.Scan(&d.Option, &d.Stored, &d.Actual); err != nil {
			return nil, fmt.Errorf("failed to scan tally drift: %w", err)
		}
		drifts = append(drifts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tally drift: %w", err)
	}
	return drifts, nil
}

// SummarizeVotes rebuilds both counters of a poll from its ledgers. It runs
// serializable so a vote or like committed meanwhile forces a retry instead
// of being overwritten.
func (r *pollResultRepository) SummarizeVotes(ctx context.Context, pollID uuid.UUID) error {
	return withRetry(ctx, func() error {
		return r.summarize(ctx, pollID)
	})
}

func (r *pollResultRepository) summarize(ctx context.Context, pollID uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryVotes := `
		INSERT INTO poll_results (poll_id, option_text, vote_count, last_updated_at)
		SELECT o.poll_id, o.text, COUNT(v.user_id), NOW()
		FROM poll_options o
		LEFT JOIN votes v ON v.poll_id = o.poll_id AND v.option_text = o.text
		WHERE o.poll_id = $1
		GROUP BY o.poll_id, o.text
		ON CONFLICT (poll_id, option_text) DO UPDATE
		SET vote_count = EXCLUDED.vote_count,
		    last_updated_at = NOW()
	`
	if _, err := tx.ExecContext(ctx, queryVotes, pollID); err != nil {
		return fmt.Errorf("failed to summarize votes for poll %s: %w", pollID, err)
	}

	queryLikes := `
		UPDATE polls
		SET like_count = (SELECT COUNT(*) FROM likes WHERE poll_id = $1)
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, queryLikes, pollID); err != nil {
		return fmt.Errorf("failed to summarize likes for poll %s: %w", pollID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit summary for poll %s: %w", pollID, err)
	}
	return nil
}
