package service

import (
	"errors"

	"datasync/internal/stats"
	"datasync/internal/store"
)

var (
	ErrNotFound            = store.ErrNotFound
	ErrMalformedRecord     = stats.ErrMalformedRecord
	ErrMissingCredential   = errors.New("credential not configured")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrInvalidInput        = errors.New("invalid input")
	ErrConflict            = errors.New("conflict")
	ErrUnauthorized        = errors.New("incorrect username or password")
)
