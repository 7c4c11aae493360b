package chi

import "github.com/kailas-cloud/tierank/internal/domain/rank"

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized       ErrorResponseCode = "unauthorized"
	ErrorResponseCodeInvalidQuery       ErrorResponseCode = "invalid_query"
	ErrorResponseCodeUnknownKind        ErrorResponseCode = "unknown_kind"
	ErrorResponseCodeTooManyCandidates  ErrorResponseCode = "too_many_candidates"
	ErrorResponseCodeAliasNotFound      ErrorResponseCode = "alias_not_found"
	ErrorResponseCodeAliasStoreDown     ErrorResponseCode = "alias_store_unavailable"
	ErrorResponseCodeRequestCanceled    ErrorResponseCode = "request_canceled"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
	ErrorResponseCodeRequestTooLarge    ErrorResponseCode = "request_too_large"
	ErrorResponseCodeUnsupportedContent ErrorResponseCode = "unsupported_media_type"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	Details map[string]any    `json:"details,omitempty"`
}

// RankRequest is the body of POST /v1/rank.
type RankRequest struct {
	Query      string                      `json:"query"`
	Candidates map[string][]map[string]any `json:"candidates"`
	Limit      *int                        `json:"limit,omitempty"`
}

// RankDomainRequest is the body of POST /v1/rank/{kind}.
type RankDomainRequest struct {
	Query      string           `json:"query"`
	Candidates []map[string]any `json:"candidates"`
}

// RankDomainParams are the query parameters of POST /v1/rank/{kind}.
type RankDomainParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// HitResponse is one ranked candidate.
type HitResponse struct {
	Position int            `json:"position"`
	Tier     rank.Tier      `json:"tier"`
	Rule     string         `json:"rule"`
	Key      any            `json:"key"`
	Document map[string]any `json:"document"`
}

// DomainResponse is the ranked list of one domain.
type DomainResponse struct {
	Kind  string        `json:"kind"`
	Total int           `json:"total"`
	Hits  []HitResponse `json:"hits"`
}

// HeroResponse is the promoted result.
type HeroResponse struct {
	Kind string      `json:"kind"`
	Hit  HitResponse `json:"hit"`
}

// RankResponse is the body returned by POST /v1/rank.
type RankResponse struct {
	Query      string           `json:"query"`
	Normalized string           `json:"normalized"`
	Aliases    []string         `json:"aliases"`
	Domains    []DomainResponse `json:"domains"`
	Hero       *HeroResponse    `json:"hero"`
}

// ExactMatchRequest is the body of POST /v1/exact-match/{kind}.
type ExactMatchRequest struct {
	Query    string         `json:"query"`
	Document map[string]any `json:"document"`
}

// ExactMatchResponse is returned by POST /v1/exact-match/{kind}.
type ExactMatchResponse struct {
	Kind  string `json:"kind"`
	Exact bool   `json:"exact"`
}

// NormalizeParams are the query parameters of GET /v1/normalize.
type NormalizeParams struct {
	Text string `form:"text" json:"text"`
}

// NormalizeResponse is returned by GET /v1/normalize.
type NormalizeResponse struct {
	Text       string   `json:"text"`
	Normalized string   `json:"normalized"`
	Tokens     []string `json:"tokens"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
