package postgres

import (
	"context"
	"fmt"
)

// maxAttempts is one try plus one retry. Contention on the (poll, user)
// keys resolves within a single retry: the second attempt either succeeds
// or observes the committed row.
const maxAttempts = 2

func isTransient(err error) bool {
	return hasCode(err, codeSerializationFailure) ||
		hasCode(err, codeDeadlockDetected) ||
		hasCode(err, codeUniqueViolation)
}

// withRetry runs op again once when it fails with a transient conflict.
// Business outcomes (already voted, not found) are returned untouched.
func withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = op()
		if err == nil || !isTransient(err) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("context cancelled during retry: %w", ctxErr)
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", maxAttempts, err)
}
