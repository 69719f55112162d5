package domain

import (
	"errors"
	"fmt"
)

// Authentication errors.
var (
	ErrUnauthorized       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// Both refine ErrUnauthorized; errors.Is matches either.
	ErrNotAuthenticated    = fmt.Errorf("%w: not authenticated", ErrUnauthorized)
	ErrInvalidTokenPayload = fmt.Errorf("%w: invalid token payload", ErrUnauthorized)
)

// Content errors.
var (
	ErrEmptyUpdate         = errors.New("no fields to update")
	ErrProjectNotFound     = errors.New("project not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrSlugConflict        = errors.New("slug already exists")
	ErrProjectCreateFailed = errors.New("failed to create project")
	ErrPostCreateFailed    = errors.New("failed to create post")
)
