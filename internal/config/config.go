package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Alias store drivers.
const (
	DriverMemory = "memory"
	DriverValkey = "valkey"
	DriverRedis  = "redis"
)

// Config holds the tierank service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Aliases AliasConfig   `yaml:"aliases"`
	Ranking RankingConfig `yaml:"ranking"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// AliasConfig holds the alias store connection and seed settings.
type AliasConfig struct {
	Driver           string   `yaml:"driver"` // memory, valkey, redis (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	SeedFile         string   `yaml:"seed_file"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	LookupTimeoutMS  int      `yaml:"lookup_timeout_ms"`
}

// RankingConfig holds request limits for the ranking API.
type RankingConfig struct {
	DefaultLimit   int      `yaml:"default_limit"`
	MaxLimit       int      `yaml:"max_limit"`
	MaxCandidates  int      `yaml:"max_candidates"`
	MaxQueryLength int      `yaml:"max_query_length"`
	HeroOrder      []string `yaml:"hero_order"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Aliases.Driver == "" {
		c.Aliases.Driver = DriverMemory
	}
	if c.Aliases.KeyPrefix == "" {
		c.Aliases.KeyPrefix = "tierank:"
	}
	if c.Aliases.ReadinessTimeout <= 0 {
		c.Aliases.ReadinessTimeout = 10
	}
	if c.Aliases.LookupTimeoutMS <= 0 {
		c.Aliases.LookupTimeoutMS = 50
	}
	if c.Ranking.DefaultLimit <= 0 {
		c.Ranking.DefaultLimit = 20
	}
	if c.Ranking.MaxLimit <= 0 {
		c.Ranking.MaxLimit = 100
	}
	if c.Ranking.MaxCandidates <= 0 {
		c.Ranking.MaxCandidates = 1000
	}
	if c.Ranking.MaxQueryLength <= 0 {
		c.Ranking.MaxQueryLength = 512
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Aliases.Driver {
	case DriverMemory:
	case DriverValkey, DriverRedis:
		if len(c.Aliases.Addrs) == 0 {
			return fmt.Errorf("aliases.addrs is required for driver %q", c.Aliases.Driver)
		}
	default:
		return fmt.Errorf("aliases.driver must be one of memory, valkey, redis, got %q", c.Aliases.Driver)
	}
	if c.Ranking.DefaultLimit > c.Ranking.MaxLimit {
		return fmt.Errorf("ranking.default_limit (%d) exceeds ranking.max_limit (%d)",
			c.Ranking.DefaultLimit, c.Ranking.MaxLimit)
	}
	for _, k := range c.Ranking.HeroOrder {
		switch k {
		case "movie", "tv", "podcast", "person", "book", "author":
		default:
			return fmt.Errorf("ranking.hero_order contains unknown kind %q", k)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
