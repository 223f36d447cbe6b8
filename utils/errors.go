package utils

import "errors"

var (
	ErrPixelNotFound      = errors.New("pixel not found")
	ErrEmptyName          = errors.New("pixel name cannot be empty")
	ErrInvalidPage        = errors.New("page must be a positive number")
	ErrInvalidPageSize    = errors.New("pageSize must be a positive number")
	ErrMaxRetriesExceeded = errors.New("failed to generate unique track code after maximum retries")
)
