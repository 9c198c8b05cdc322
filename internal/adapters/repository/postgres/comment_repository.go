package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) ports.CommentRepository {
	return &commentRepository{
		db: db,
	}
}

func (r *commentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, poll_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, comment.ID, comment.PollID, comment.UserID, comment.Content, comment.CreatedAt)
	if err != nil {
		if violatesUserKey(err) {
			return domain.ErrUserNotFound
		}
		if hasCode(err, codeForeignKeyViolation) {
			return domain.ErrPollNotFound
		}
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

func (r *commentRepository) ListByPoll(ctx context.Context, pollID uuid.UUID) ([]*domain.Comment, error) {
	query := `
		SELECT c.id, c.poll_id, c.user_id, u.username, c.content, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.poll_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PollID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.CreatedAt = scanTime(c.CreatedAt)
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}
