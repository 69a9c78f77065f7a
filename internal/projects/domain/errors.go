package domain

import "errors"

var (
	ErrNotFound    = errors.New("project not found")
	ErrInvalidPage = errors.New("page must be >= 1")
)
