// Package alias stores topic aliases per normalized token as Redis sets.
package alias

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tierank/internal/domain"
	"github.com/kailas-cloud/tierank/internal/domain/textnorm"
	"github.com/kailas-cloud/tierank/internal/metrics"
)

const keySegment = "alias:"

// store is the consumer interface for alias operations (ISP).
type store interface {
	SMembers(ctx context.Context, key string) ([]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo reads and writes alias sets. Keys are <prefix>alias:<normalized token>.
type Repo struct {
	store         store
	prefix        string
	lookupTimeout time.Duration
	lookupTotal   *prometheus.CounterVec
	logger        *zap.Logger
}

// Option configures a Repo.
type Option func(*Repo)

// WithLookupTimeout bounds each Resolve call. Zero disables the bound.
func WithLookupTimeout(d time.Duration) Option {
	return func(r *Repo) { r.lookupTimeout = d }
}

// WithLookupCounter records hit/miss/error outcomes of Resolve.
func WithLookupCounter(c *prometheus.CounterVec) Option {
	return func(r *Repo) { r.lookupTotal = c }
}

// New creates an alias repository.
func New(s store, prefix string, logger *zap.Logger, opts ...Option) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Repo{store: s, prefix: prefix, logger: logger}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Key returns the store key for token, or "" when token normalizes to nothing.
func (r *Repo) Key(token string) string {
	norm := textnorm.Normalize(token)
	if norm == "" {
		return ""
	}
	return r.prefix + keySegment + norm
}

// Resolve returns the aliases of token and never fails: store errors are
// logged and yield nil.
func (r *Repo) Resolve(ctx context.Context, token string) []string {
	key := r.Key(token)
	if key == "" {
		return nil
	}
	if r.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.lookupTimeout)
		defer cancel()
	}

	members, err := r.store.SMembers(ctx, key)
	if err != nil {
		r.inc(metrics.AliasError)
		r.logger.Warn("alias lookup failed, continuing without aliases",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	if len(members) == 0 {
		r.inc(metrics.AliasMiss)
		return nil
	}
	r.inc(metrics.AliasHit)
	return members
}

// Get returns the aliases of token, sorted. Unlike Resolve it reports
// domain.ErrAliasNotFound and domain.ErrAliasStoreUnavailable.
func (r *Repo) Get(ctx context.Context, token string) ([]string, error) {
	key := r.Key(token)
	if key == "" {
		return nil, fmt.Errorf("token %q: %w", token, domain.ErrAliasNotFound)
	}
	members, err := r.store.SMembers(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAliasStoreUnavailable, err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("token %q: %w", token, domain.ErrAliasNotFound)
	}
	slices.Sort(members)
	return members, nil
}

// Put adds aliases to token. Aliases are normalized; empty ones and the
// token itself are skipped. Returns the number of aliases written.
func (r *Repo) Put(ctx context.Context, token string, aliases ...string) (int, error) {
	key := r.Key(token)
	if key == "" {
		return 0, fmt.Errorf("token %q normalizes to nothing: %w", token, domain.ErrInvalidQuery)
	}
	self := strings.TrimPrefix(key, r.prefix+keySegment)

	members := make([]string, 0, len(aliases))
	for _, a := range aliases {
		a = textnorm.Normalize(a)
		if a == "" || a == self || slices.Contains(members, a) {
			continue
		}
		members = append(members, a)
	}
	if len(members) == 0 {
		return 0, nil
	}
	if err := r.store.SAdd(ctx, key, members...); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrAliasStoreUnavailable, err)
	}
	return len(members), nil
}

// Delete removes every alias of token.
func (r *Repo) Delete(ctx context.Context, token string) error {
	key := r.Key(token)
	if key == "" {
		return nil
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrAliasStoreUnavailable, err)
	}
	return nil
}

// Tokens lists every token that has aliases, sorted.
func (r *Repo) Tokens(ctx context.Context) ([]string, error) {
	base := r.prefix + keySegment
	keys, err := r.store.Scan(ctx, base+"*")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAliasStoreUnavailable, err)
	}
	tokens := make([]string, 0, len(keys))
	for _, k := range keys {
		tokens = append(tokens, strings.TrimPrefix(k, base))
	}
	slices.Sort(tokens)
	return tokens, nil
}

// Source binds the repository to ctx so it can serve as a synchronous alias
// source for the ranking engine.
func (r *Repo) Source(ctx context.Context) *Source {
	return &Source{repo: r, ctx: ctx}
}

// Source adapts Repo.Resolve to the SearchAliases(token) []string shape.
type Source struct {
	repo *Repo
	ctx  context.Context //nolint:containedctx // bound for the lifetime of one command
}

// SearchAliases resolves token through the bound repository.
func (s *Source) SearchAliases(token string) []string {
	return s.repo.Resolve(s.ctx, token)
}

func (r *Repo) inc(result string) {
	if r.lookupTotal != nil {
		r.lookupTotal.WithLabelValues(result).Inc()
	}
}
