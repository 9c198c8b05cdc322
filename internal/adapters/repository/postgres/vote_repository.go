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

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// SaveVote relies on the (poll_id, user_id) primary key: of two concurrent
// inserts for the same pair, the second waits for the first to commit and
// then inserts nothing.
func (r *voteRepository) SaveVote(ctx context.Context, vote *domain.Vote) error {
	return withRetry(ctx, func() error {
		return r.saveVote(ctx, vote)
	})
}

func (r *voteRepository) saveVote(ctx context.Context, vote *domain.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryVote := `
		INSERT INTO votes (poll_id, user_id, option_text, cast_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (poll_id, user_id) DO NOTHING
	`
	res, err := tx.ExecContext(ctx, queryVote, vote.PollID, vote.UserID, vote.Option, vote.CastAt)
	if err != nil {
		if violatesUserKey(err) {
			return domain.ErrUserNotFound
		}
		if hasCode(err, codeForeignKeyViolation) {
			return fmt.Errorf("%w: vote references an unknown option", domain.ErrValidation)
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if inserted == 0 {
		return domain.ErrAlreadyVoted
	}

	queryResult := `
		INSERT INTO poll_results (poll_id, option_text, vote_count, last_updated_at)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (poll_id, option_text) DO UPDATE
		SET vote_count = poll_results.vote_count + 1,
		    last_updated_at = EXCLUDED.last_updated_at
	`
	if _, err := tx.ExecContext(ctx, queryResult, vote.PollID, vote.Option, vote.CastAt); err != nil {
		return fmt.Errorf("failed to update poll results: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

func (r *voteRepository) GetVote(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error) {
	query := `
		SELECT poll_id, user_id, option_text, cast_at
		FROM votes
		WHERE poll_id = $1 AND user_id = $2
	`
	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, pollID, userID).Scan(&vote.PollID, &vote.UserID, &vote.Option, &vote.CastAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}
	vote.CastAt = scanTime(vote.CastAt)
	return &vote, nil
}

// Tally reads the counters maintained by SaveVote. Options nobody voted for
// have no row and are absent from the map.
func (r *voteRepository) Tally(ctx context.Context, pollID uuid.UUID) (domain.Tally, error) {
	query := `
		SELECT option_text, vote_count
		FROM poll_results
		WHERE poll_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tally: %w", err)
	}
	defer rows.Close()

	tally := make(domain.Tally)
	for rows.Next() {
		var (
			option string
			count  int64
		)
		if err := rows.Scan(&option, &count); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		tally[option] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tally: %w", err)
	}
	return tally, nil
}
