package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tierank/internal/config"
	"github.com/kailas-cloud/tierank/internal/db"
	dbMemory "github.com/kailas-cloud/tierank/internal/db/memory"
	dbRedis "github.com/kailas-cloud/tierank/internal/db/redis"
	"github.com/kailas-cloud/tierank/internal/domain/source"
	"github.com/kailas-cloud/tierank/internal/logger"
	aliasrepo "github.com/kailas-cloud/tierank/internal/repository/alias"
	searchuc "github.com/kailas-cloud/tierank/internal/usecase/search"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	storeOnce sync.Once
	store     db.Store
	aliases   *aliasrepo.Repo
	storeErr  error

	logger *zap.Logger
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
		logger:     zap.NewNop(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		var (
			cfg config.Config
			err error
		)
		if path != "" {
			cfg, err = config.LoadFile(path)
		} else {
			cfg, err = config.Load(config.GetEnv())
		}
		if err != nil {
			c.configErr = fmt.Errorf("load configuration: %w", err)
			return
		}
		c.config = &cfg
		if l, err := logger.NewLogger("test", cfg.Logging.Level); err == nil {
			c.logger = l
		}
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// aliasRepo opens the configured alias store once. The memory driver starts
// empty, so its seed file is loaded on open.
func (c *commandContext) aliasRepo(ctx context.Context) (*aliasrepo.Repo, error) {
	c.storeOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.storeErr = err
			return
		}
		store, err := openStore(ctx, &cfg.Aliases)
		if err != nil {
			c.storeErr = err
			return
		}
		c.store = store
		c.aliases = aliasrepo.New(store, cfg.Aliases.KeyPrefix, c.logger)

		if cfg.Aliases.Driver == config.DriverMemory && cfg.Aliases.SeedFile != "" {
			seed, err := aliasrepo.LoadSeedFile(cfg.Aliases.SeedFile)
			if err != nil {
				c.storeErr = err
				return
			}
			if _, err := c.aliases.Load(ctx, seed); err != nil {
				c.storeErr = err
			}
		}
	})
	return c.aliases, c.storeErr
}

func (c *commandContext) searchService(ctx context.Context) (*searchuc.Service, error) {
	repo, err := c.aliasRepo(ctx)
	if err != nil {
		return nil, err
	}
	r := c.config.Ranking
	order := make([]source.Kind, len(r.HeroOrder))
	for i, k := range r.HeroOrder {
		order[i] = source.Kind(k)
	}
	return searchuc.New(repo, searchuc.Limits{
		DefaultLimit:   r.DefaultLimit,
		MaxLimit:       r.MaxLimit,
		MaxCandidates:  r.MaxCandidates,
		MaxQueryLength: r.MaxQueryLength,
		HeroOrder:      order,
	}), nil
}

func (c *commandContext) close() {
	if c.store != nil {
		c.store.Close()
	}
	_ = c.logger.Sync()
}

func openStore(ctx context.Context, cfg *config.AliasConfig) (db.Store, error) {
	var store db.Store
	switch cfg.Driver {
	case config.DriverMemory:
		store = dbMemory.NewStore()
	case config.DriverValkey, config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.Addrs, Password: cfg.Password})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown alias driver %q", cfg.Driver)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("wait for %s store: %w", cfg.Driver, err)
	}
	return store, nil
}
