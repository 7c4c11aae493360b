package tierank

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/tierank/internal/db"
	"github.com/kailas-cloud/tierank/internal/db/memory"
	dbRedis "github.com/kailas-cloud/tierank/internal/db/redis"
	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/source"
	aliasrepo "github.com/kailas-cloud/tierank/internal/repository/alias"
	healthuc "github.com/kailas-cloud/tierank/internal/usecase/health"
	"github.com/kailas-cloud/tierank/internal/usecase/search"
)

const (
	driverMemory = "memory"
	driverValkey = "valkey"
	driverRedis  = "redis"

	defaultReadinessTimeout = 10 * time.Second
)

// Internal interfaces, swapped in tests.
type rankUseCase interface {
	Rank(ctx context.Context, req *search.Request) (search.Response, error)
	RankDomain(
		ctx context.Context, query string, kind source.Kind, docs []document.Fields, limit int,
	) (search.DomainResult, error)
	ExactMatch(ctx context.Context, query string, kind source.Kind, doc document.Fields) (bool, error)
}

type aliasUseCase interface {
	Get(ctx context.Context, token string) ([]string, error)
	Put(ctx context.Context, token string, aliases ...string) (int, error)
	Delete(ctx context.Context, token string) error
	Tokens(ctx context.Context) ([]string, error)
	Load(ctx context.Context, seed aliasrepo.Seed) (int, error)
}

// Client is the tierank SDK entry point.
type Client struct {
	store     db.Store
	rankSvc   rankUseCase
	aliasSvc  aliasUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. The provided context is used for the readiness
// check of a remote alias store and for loading WithAliases.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("tierank: alias store not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(ctx, store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverMemory:
		return memory.NewStore(), nil
	case driverValkey, driverRedis:
		if len(cfg.addrs) == 0 {
			return nil, errors.New("tierank: database address required (use WithValkey or WithRedis)")
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("tierank: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("tierank: unknown driver %q", cfg.driver)
	}
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	for _, k := range cfg.heroOrder {
		if !source.Kind(k).IsValid() {
			return nil, fmt.Errorf("tierank: hero order: %w: %q", ErrUnknownKind, k)
		}
	}

	aliases := aliasrepo.New(store, cfg.keyPrefix, nil, aliasrepo.WithLookupTimeout(cfg.lookupTimeout))
	if len(cfg.aliases) > 0 {
		if _, err := aliases.Load(ctx, aliasrepo.Seed{Aliases: cfg.aliases}); err != nil {
			return nil, fmt.Errorf("tierank: load aliases: %w", err)
		}
	}

	rankSvc := search.New(aliases, search.Limits{
		DefaultLimit:  cfg.defaultLimit,
		MaxLimit:      cfg.maxLimit,
		MaxCandidates: cfg.maxCandidates,
		HeroOrder:     toSourceKinds(cfg.heroOrder),
	})

	return &Client{
		store:     store,
		rankSvc:   rankSvc,
		aliasSvc:  aliases,
		healthSvc: healthuc.New(store, rankSvc),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks alias store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Rank ranks every domain of req and picks the hero result.
func (c *Client) Rank(ctx context.Context, req RankRequest) (_ RankResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("rank", start, err) }()

	resp, err := c.rankSvc.Rank(ctx, toSearchRequest(req))
	if err != nil {
		return RankResult{}, fmt.Errorf("rank: %w", err)
	}
	res := toRankResult(resp)
	c.obs.hero(res.Hero)
	return res, nil
}

// RankDomain ranks one candidate list. A zero limit means the client default.
func (c *Client) RankDomain(
	ctx context.Context, query string, kind Kind, docs []Document, limit int,
) (_ DomainResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("rank_domain", start, err) }()

	res, err := c.rankSvc.RankDomain(ctx, query, source.Kind(kind), toFields(docs), limit)
	if err != nil {
		return DomainResult{}, fmt.Errorf("rank %s: %w", kind, err)
	}
	return toDomainResult(res), nil
}

// ExactMatch reports whether doc matches query closely enough to be the hero.
func (c *Client) ExactMatch(ctx context.Context, query string, kind Kind, doc Document) (_ bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("exact_match", start, err) }()

	ok, err := c.rankSvc.ExactMatch(ctx, query, source.Kind(kind), document.Fields(doc))
	if err != nil {
		return false, fmt.Errorf("exact match %s: %w", kind, err)
	}
	return ok, nil
}

// Aliases returns the alias management service.
func (c *Client) Aliases() *AliasService {
	return &AliasService{svc: c.aliasSvc, obs: c.obs}
}
