package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery signals a blank or oversized query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUnknownKind signals a source kind outside the supported set.
	ErrUnknownKind = errors.New("unknown source kind")
	// ErrTooManyCandidates signals a domain list above the configured cap.
	ErrTooManyCandidates = errors.New("too many candidates")
	// ErrAliasNotFound signals that no aliases are stored for a token.
	ErrAliasNotFound = errors.New("alias not found")
	// ErrAliasStoreUnavailable signals an alias store failure.
	ErrAliasStoreUnavailable = errors.New("alias store unavailable")
)

// CandidateLimitError wraps ErrTooManyCandidates with the offending domain.
type CandidateLimitError struct {
	Kind  string
	Count int
	Max   int
}

func (e *CandidateLimitError) Error() string {
	return fmt.Sprintf("%s: %s has %d, max %d", ErrTooManyCandidates.Error(), e.Kind, e.Count, e.Max)
}

func (e *CandidateLimitError) Unwrap() error { return ErrTooManyCandidates }

// NewCandidateLimit creates a candidate limit error.
func NewCandidateLimit(kind string, count, limit int) error {
	return &CandidateLimitError{Kind: kind, Count: count, Max: limit}
}
