package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
)

type likeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) ports.LikeRepository {
	return &likeRepository{
		db: db,
	}
}

func (r *likeRepository) Add(ctx context.Context, like *domain.Like) (bool, error) {
	var added bool
	err := withRetry(ctx, func() error {
		var err error
		added, err = r.apply(ctx, like.PollID, `
			INSERT INTO likes (poll_id, user_id, liked_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (poll_id, user_id) DO NOTHING
		`, `UPDATE polls SET like_count = like_count + 1 WHERE id = $1`,
			like.PollID, like.UserID, like.LikedAt)
		return err
	})
	return added, err
}

func (r *likeRepository) Remove(ctx context.Context, pollID, userID uuid.UUID) (bool, error) {
	var removed bool
	err := withRetry(ctx, func() error {
		var err error
		removed, err = r.apply(ctx, pollID, `
			DELETE FROM likes
			WHERE poll_id = $1 AND user_id = $2
		`, `UPDATE polls SET like_count = like_count - 1 WHERE id = $1`,
			pollID, userID)
		return err
	})
	return removed, err
}

// apply runs a membership change and, only when it touched a row, the
// matching counter update in the same transaction.
func (r *likeRepository) apply(ctx context.Context, pollID uuid.UUID, membership, counter string, args ...any) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, membership, args...)
	if err != nil {
		if violatesUserKey(err) {
			return false, domain.ErrUserNotFound
		}
		if hasCode(err, codeForeignKeyViolation) {
			return false, domain.ErrPollNotFound
		}
		return false, fmt.Errorf("failed to change like: %w", err)
	}
	changed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if changed == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, counter, pollID); err != nil {
		return false, fmt.Errorf("failed to update like count: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit like: %w", err)
	}
	return true, nil
}

func (r *likeRepository) Exists(ctx context.Context, pollID, userID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM likes WHERE poll_id = $1 AND user_id = $2`
	var exists int
	err := r.db.QueryRowContext(ctx, query, pollID, userID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing like: %w", err)
	}
	return true, nil
}

func (r *likeRepository) Count(ctx context.Context, pollID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT like_count FROM polls WHERE id = $1`, pollID).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrPollNotFound
		}
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (r *likeRepository) CountByPolls(ctx context.Context, pollIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(pollIDs))
	if len(pollIDs) == 0 {
		return counts, nil
	}

	query := `SELECT id, like_count FROM polls WHERE id = ANY($1::uuid[])`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(uuidStrings(pollIDs)))
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    uuid.UUID
			count int64
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan like count: %w", err)
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating like counts: %w", err)
	}
	return counts, nil
}

func (r *likeRepository) ListLikers(ctx context.Context, pollID uuid.UUID) ([]domain.Liker, error) {
	query := `
		SELECT l.user_id, u.username
		FROM likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.poll_id = $1
		ORDER BY l.seq ASC
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likers: %w", err)
	}
	defer rows.Close()

	likers := []domain.Liker{}
	for rows.Next() {
		var liker domain.Liker
		if err := rows.Scan(&liker.UserID, &liker.Username); err != nil {
			return nil, fmt.Errorf("failed to scan liker: %w", err)
		}
		likers = append(likers, liker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating likers: %w", err)
	}
	return likers, nil
}
