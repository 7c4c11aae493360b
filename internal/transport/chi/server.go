// Package chi exposes the ranking service over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tierank/internal/domain"
	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/source"
	"github.com/kailas-cloud/tierank/internal/domain/textnorm"
	healthuc "github.com/kailas-cloud/tierank/internal/usecase/health"
	searchuc "github.com/kailas-cloud/tierank/internal/usecase/search"
)

const maxBodyBytes = 8 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements ServerInterface.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		candidateLimitHandler,
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeInvalidQuery),
		sentinelHandler(domain.ErrUnknownKind, http.StatusNotFound, ErrorResponseCodeUnknownKind),
		sentinelHandler(domain.ErrAliasNotFound, http.StatusNotFound, ErrorResponseCodeAliasNotFound),
		sentinelHandler(domain.ErrAliasStoreUnavailable, http.StatusServiceUnavailable, ErrorResponseCodeAliasStoreDown),
		sentinelHandler(context.Canceled, statusClientClosedRequest, ErrorResponseCodeRequestCanceled),
	}
	return s
}

// statusClientClosedRequest is the nginx convention for a client that went away.
const statusClientClosedRequest = 499

// Rank handles POST /v1/rank.
func (s *Server) Rank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if !s.decode(w, r, &req) {
		return
	}

	candidates := make(map[source.Kind][]document.Fields, len(req.Candidates))
	for k, docs := range req.Candidates {
		candidates[source.Kind(k)] = fieldsFromJSON(docs)
	}
	limit := 0
	if req.Limit != nil {
		limit = *req.Limit
	}

	resp, err := s.search.Rank(r.Context(), &searchuc.Request{
		Query:      req.Query,
		Candidates: candidates,
		Limit:      limit,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rankResponseToJSON(&resp))
}

// RankDomain handles POST /v1/rank/{kind}.
func (s *Server) RankDomain(w http.ResponseWriter, r *http.Request, kind string, params RankDomainParams) {
	var req RankDomainRequest
	if !s.decode(w, r, &req) {
		return
	}
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	res, err := s.search.RankDomain(r.Context(), req.Query, source.Kind(kind), fieldsFromJSON(req.Candidates), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainToJSON(&res))
}

// ExactMatch handles POST /v1/exact-match/{kind}.
func (s *Server) ExactMatch(w http.ResponseWriter, r *http.Request, kind string) {
	var req ExactMatchRequest
	if !s.decode(w, r, &req) {
		return
	}

	exact, err := s.search.ExactMatch(r.Context(), req.Query, source.Kind(kind), req.Document)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ExactMatchResponse{Kind: kind, Exact: exact})
}

// Normalize handles GET /v1/normalize.
func (s *Server) Normalize(w http.ResponseWriter, _ *http.Request, params NormalizeParams) {
	norm := textnorm.Normalize(params.Text)
	tokens := textnorm.Tokens(norm)
	if tokens == nil {
		tokens = []string{}
	}
	writeJSON(w, http.StatusOK, NormalizeResponse{
		Text:       params.Text,
		Normalized: norm,
		Tokens:     tokens,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body with numbers kept as json.Number.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, ErrorResponseCodeRequestTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "request body is empty")
		default:
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		}
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message: the wrapped detail for
// validation errors, the bare sentinel otherwise.
func safeDomainMessage(err error) string {
	for _, s := range []error{domain.ErrInvalidQuery, domain.ErrUnknownKind, domain.ErrAliasNotFound} {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	for _, s := range []error{domain.ErrAliasStoreUnavailable, context.Canceled} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// candidateLimitHandler reports the offending domain of ErrTooManyCandidates.
func candidateLimitHandler(w http.ResponseWriter, err error, _ string) bool {
	var cle *domain.CandidateLimitError
	if !errors.As(err, &cle) {
		return false
	}
	writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
		Code:    ErrorResponseCodeTooManyCandidates,
		Message: cle.Error(),
		Details: map[string]any{"kind": cle.Kind, "count": cle.Count, "max": cle.Max},
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func fieldsFromJSON(docs []map[string]any) []document.Fields {
	out := make([]document.Fields, len(docs))
	for i, d := range docs {
		out[i] = d
	}
	return out
}

func hitsToJSON(hits []searchuc.Hit) []HitResponse {
	out := make([]HitResponse, len(hits))
	for i, h := range hits {
		out[i] = hitToJSON(i+1, h)
	}
	return out
}

func hitToJSON(position int, h searchuc.Hit) HitResponse {
	return HitResponse{
		Position: position,
		Tier:     h.Tier(),
		Rule:     h.Rule,
		Key:      h.Key,
		Document: h.Document,
	}
}

func domainToJSON(d *searchuc.DomainResult) DomainResponse {
	return DomainResponse{
		Kind:  string(d.Kind),
		Total: d.Total,
		Hits:  hitsToJSON(d.Hits),
	}
}

func rankResponseToJSON(r *searchuc.Response) RankResponse {
	domains := make([]DomainResponse, len(r.Domains))
	for i := range r.Domains {
		domains[i] = domainToJSON(&r.Domains[i])
	}
	aliases := r.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	out := RankResponse{
		Query:      r.Query,
		Normalized: r.Normalized,
		Aliases:    aliases,
		Domains:    domains,
	}
	if r.Hero != nil {
		out.Hero = &HeroResponse{Kind: string(r.Hero.Kind), Hit: hitToJSON(1, r.Hero.Hit)}
	}
	return out
}
