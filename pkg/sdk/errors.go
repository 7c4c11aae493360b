package tierank

import "github.com/kailas-cloud/tierank/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery          = domain.ErrInvalidQuery
	ErrUnknownKind           = domain.ErrUnknownKind
	ErrTooManyCandidates     = domain.ErrTooManyCandidates
	ErrAliasNotFound         = domain.ErrAliasNotFound
	ErrAliasStoreUnavailable = domain.ErrAliasStoreUnavailable
)

// CandidateLimitError carries the domain that exceeded WithMaxCandidates.
// Use errors.As() to extract it.
type CandidateLimitError = domain.CandidateLimitError
