package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrPollNotFound       = errors.New("poll not found")
	ErrInvalidPollID      = errors.New("invalid poll id")
	ErrAlreadyVoted       = errors.New("user has already voted")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInternal           = errors.New("internal server error")
)
