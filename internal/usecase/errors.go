package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDeadlinePassed        = errors.New("transfer deadline passed")
	ErrPersistence           = errors.New("persistence failure")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
