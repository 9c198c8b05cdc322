package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vncsmyrnk/pollify/internal/core/domain"
)

const (
	maxCommentLength = 2000
	minUsernameLen   = 3
	maxUsernameLen   = 50
	minPasswordLen   = 6
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
	unknownUsername  = "Unknown"
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}

func normalizeQuestion(question string) (string, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return "", validationErr("question is required")
	}
	return q, nil
}

// normalizeOptions trims every option and rejects lists that are too short,
// contain an empty entry or repeat an entry (exact, case-sensitive match).
func normalizeOptions(raw []string) ([]string, error) {
	if len(raw) < 2 {
		return nil, validationErr("at least two options are required")
	}

	seen := make(map[string]struct{}, len(raw))
	options := make([]string, 0, len(raw))
	for i, opt := range raw {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return nil, validationErr("option %d is empty", i+1)
		}
		if _, dup := seen[opt]; dup {
			return nil, validationErr("duplicate option %q", opt)
		}
		seen[opt] = struct{}{}
		options = append(options, opt)
	}
	return options, nil
}

func normalizeComment(content string) (string, error) {
	c := strings.TrimSpace(content)
	if c == "" {
		return "", validationErr("comment content is required")
	}
	if utf8.RuneCountInString(c) > maxCommentLength {
		return "", validationErr("comment must be at most %d characters", maxCommentLength)
	}
	return c, nil
}

func normalizeCredentials(username, password string) (string, error) {
	u := strings.TrimSpace(username)
	if n := utf8.RuneCountInString(u); n < minUsernameLen || n > maxUsernameLen {
		return "", validationErr("username must be between %d and %d characters", minUsernameLen, maxUsernameLen)
	}
	if len(password) < minPasswordLen {
		return "", validationErr("password must be at least %d characters", minPasswordLen)
	}
	if len(password) > maxPasswordBytes {
		return "", validationErr("password must be at most %d bytes", maxPasswordBytes)
	}
	return u, nil
}
