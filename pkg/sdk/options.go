package tierank

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "memory", "valkey" or "redis"
	addrs     []string
	password  string
	keyPrefix string

	aliases       map[string][]string
	lookupTimeout time.Duration

	defaultLimit  int
	maxLimit      int
	maxCandidates int
	heroOrder     []Kind

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		driver:        driverMemory,
		keyPrefix:     "tierank:",
		lookupTimeout: 50 * time.Millisecond,
	}
}

// WithMemory keeps aliases in process. This is the default.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverMemory
		c.addrs = nil
	})
}

// WithValkey configures the client to read aliases from a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to read aliases from a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the prefix of alias keys in Valkey/Redis.
// Default: "tierank:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithAliases seeds the alias table on New. Tokens and aliases are
// normalized before they are stored.
func WithAliases(aliases map[string][]string) Option {
	return optionFunc(func(c *clientConfig) {
		c.aliases = aliases
	})
}

// WithLookupTimeout bounds a single alias lookup. Default: 50ms.
func WithLookupTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.lookupTimeout = d
	})
}

// WithLimits sets the default and maximum number of hits per domain.
// Defaults: 20 and 100.
func WithLimits(defaultLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithMaxCandidates caps the candidates accepted per domain. Default: 1000.
func WithMaxCandidates(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxCandidates = n
	})
}

// WithHeroOrder sets the order in which domains compete for the hero slot.
// Kinds left out never become the hero.
func WithHeroOrder(kinds ...Kind) Option {
	return optionFunc(func(c *clientConfig) {
		c.heroOrder = kinds
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
