package models

import "errors"

// Custom errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateKey      = errors.New("duplicate key violation")
	ErrInvalidID         = errors.New("invalid ID format")
	ErrMissingPrice      = errors.New("market side has no explicit price")
	ErrInvalidPrice      = errors.New("american price outside quotable range")
	ErrIncompleteRatings = errors.New("ratings snapshot has missing fields")
	ErrStaleOdds         = errors.New("odds record exceeds freshness limit")
	ErrResolutionRate    = errors.New("team resolution rate below threshold")
)
