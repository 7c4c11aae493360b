// Package search aggregates per-domain rankings for one query and picks the
// hero result.
package search

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/tierank/internal/domain"
	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/source"
	"github.com/kailas-cloud/tierank/internal/logger"
	"github.com/kailas-cloud/tierank/internal/metrics"
	rankuc "github.com/kailas-cloud/tierank/internal/usecase/rank"
)

// Limits bounds requests accepted by the service.
type Limits struct {
	DefaultLimit   int
	MaxLimit       int
	MaxCandidates  int
	MaxQueryLength int
	HeroOrder      []source.Kind
}

// DefaultLimits mirror the config defaults.
func DefaultLimits() Limits {
	return Limits{
		DefaultLimit:   20,
		MaxLimit:       100,
		MaxCandidates:  1000,
		MaxQueryLength: 512,
		HeroOrder:      source.All(),
	}
}

// Service ranks candidate lists of every domain against one query.
type Service struct {
	aliases AliasResolver
	limits  Limits
}

// New creates a ranking service. aliases can be nil. Zero limits take the
// DefaultLimits values.
func New(aliases AliasResolver, limits Limits) *Service {
	def := DefaultLimits()
	if limits.DefaultLimit <= 0 {
		limits.DefaultLimit = def.DefaultLimit
	}
	if limits.MaxLimit <= 0 {
		limits.MaxLimit = max(def.MaxLimit, limits.DefaultLimit)
	}
	if limits.MaxCandidates <= 0 {
		limits.MaxCandidates = def.MaxCandidates
	}
	if limits.MaxQueryLength <= 0 {
		limits.MaxQueryLength = def.MaxQueryLength
	}
	if len(limits.HeroOrder) == 0 {
		limits.HeroOrder = def.HeroOrder
	}
	return &Service{aliases: aliases, limits: limits}
}

// Rank scores every domain of req concurrently, truncates each to the
// request limit, and promotes the first exact top hit in hero order.
func (s *Service) Rank(ctx context.Context, req *Request) (Response, error) {
	if err := s.validateQuery(req.Query); err != nil {
		return Response{}, err
	}
	kinds := make([]source.Kind, 0, len(req.Candidates))
	for _, k := range source.All() {
		if docs, ok := req.Candidates[k]; ok {
			if err := s.validateDocs(k, docs); err != nil {
				return Response{}, err
			}
			kinds = append(kinds, k)
		}
	}
	if len(kinds) != len(req.Candidates) {
		for k := range req.Candidates {
			if !k.IsValid() {
				return Response{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, k)
			}
		}
	}

	q := s.prepare(ctx, req.Query)
	limit := s.limit(req.Limit)

	results := make([]DomainResult, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, k := range kinds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck // wrapped below
			}
			results[i] = rankDomain(&q, k, req.Candidates[k], limit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Response{}, fmt.Errorf("rank domains: %w", err)
	}

	hero := s.pickHero(&q, results)
	heroLabel := metrics.HeroNone
	if hero != nil {
		heroLabel = string(hero.Kind)
	}
	metrics.HeroTotal.WithLabelValues(heroLabel).Inc()

	logger.FromContext(ctx).Debug("ranked query",
		zap.String("normalized", q.Normalized()),
		zap.Strings("aliases", q.Aliases()),
		zap.Int("domains", len(results)),
		zap.String("hero", heroLabel),
	)

	return Response{
		Query:      q.Raw(),
		Normalized: q.Normalized(),
		Aliases:    q.Aliases(),
		Domains:    results,
		Hero:       hero,
	}, nil
}

// RankDomain ranks a single candidate list.
func (s *Service) RankDomain(
	ctx context.Context, query string, kind source.Kind, docs []document.Fields, limit int,
) (DomainResult, error) {
	if err := s.validateQuery(query); err != nil {
		return DomainResult{}, err
	}
	if err := s.validateDocs(kind, docs); err != nil {
		return DomainResult{}, err
	}
	q := s.prepare(ctx, query)
	return rankDomain(&q, kind, docs, s.limit(limit)), nil
}

// ExactMatch reports whether doc is an exact match for query in kind.
func (s *Service) ExactMatch(ctx context.Context, query string, kind source.Kind, doc document.Fields) (bool, error) {
	if err := s.validateQuery(query); err != nil {
		return false, err
	}
	if !kind.IsValid() {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	q := s.prepare(ctx, query)
	return rankuc.IsExactMatch(&q, doc, kind), nil
}

func (s *Service) validateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: query is blank", domain.ErrInvalidQuery)
	}
	if n := utf8.RuneCountInString(query); n > s.limits.MaxQueryLength {
		return fmt.Errorf("%w: query has %d characters, max %d", domain.ErrInvalidQuery, n, s.limits.MaxQueryLength)
	}
	return nil
}

func (s *Service) validateDocs(kind source.Kind, docs []document.Fields) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	if len(docs) > s.limits.MaxCandidates {
		return domain.NewCandidateLimit(string(kind), len(docs), s.limits.MaxCandidates)
	}
	return nil
}

// prepare resolves aliases once per request so scoring does no I/O.
func (s *Service) prepare(ctx context.Context, raw string) rankuc.Query {
	q := rankuc.NewQuery(raw, nil)
	if s.aliases == nil || q.Normalized() == "" {
		return q
	}
	return rankuc.NewQuery(raw, s.aliases.Resolve(ctx, q.Normalized()))
}

func (s *Service) limit(requested int) int {
	switch {
	case requested <= 0:
		return s.limits.DefaultLimit
	case requested > s.limits.MaxLimit:
		return s.limits.MaxLimit
	default:
		return requested
	}
}

func (s *Service) pickHero(q *rankuc.Query, results []DomainResult) *Hero {
	for _, kind := range s.limits.HeroOrder {
		i := slices.IndexFunc(results, func(r DomainResult) bool { return r.Kind == kind })
		if i < 0 || len(results[i].Hits) == 0 {
			continue
		}
		top := results[i].Hits[0]
		if rankuc.IsExactMatch(q, top.Document, kind) {
			return &Hero{Kind: kind, Hit: top}
		}
	}
	return nil
}

func rankDomain(q *rankuc.Query, kind source.Kind, docs []document.Fields, limit int) DomainResult {
	start := time.Now()
	scored := rankuc.Rank(q, kind, docs)

	hits := make([]Hit, 0, min(len(scored), limit))
	for i, sc := range scored {
		metrics.ObserveTier(string(kind), int(sc.Key.TierValue()))
		if i < limit {
			hits = append(hits, Hit{Document: sc.Fields, Key: sc.Key, Rule: sc.Rule})
		}
	}

	metrics.RankCandidates.WithLabelValues(string(kind)).Observe(float64(len(docs)))
	metrics.RankDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	return DomainResult{Kind: kind, Total: len(docs), Hits: hits}
}
