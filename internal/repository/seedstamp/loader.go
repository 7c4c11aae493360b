// Package seedstamp skips alias seeds that were already applied to a shared
// store. The checksum of the last applied seed lives next to the alias sets.
package seedstamp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tierank/internal/db"
	"github.com/kailas-cloud/tierank/internal/metrics"
	aliasrepo "github.com/kailas-cloud/tierank/internal/repository/alias"
)

const keySegment = "alias_seed:checksum"

// loader is the decorated alias seed loader.
type loader interface {
	Load(ctx context.Context, seed aliasrepo.Seed) (int, error)
}

// store is the consumer interface for the checksum (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Loader applies a seed through inner unless the store already carries the
// same seed's checksum.
type Loader struct {
	inner     loader
	store     store
	key       string
	loadTotal *prometheus.CounterVec
	logger    *zap.Logger
}

// New creates a stamping decorator. loadTotal is a counter vec with label
// "result" ("applied"/"skipped") and can be nil.
func New(
	inner loader,
	s store,
	prefix string,
	loadTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		inner:     inner,
		store:     s,
		key:       prefix + keySegment,
		loadTotal: loadTotal,
		logger:    logger,
	}
}

// Key returns the store key holding the checksum.
func (l *Loader) Key() string { return l.key }

// Load applies seed and records its checksum. An unchanged seed is skipped
// and reports zero aliases written.
func (l *Loader) Load(ctx context.Context, seed aliasrepo.Seed) (int, error) {
	sum := Checksum(seed)
	if l.applied(ctx, sum) {
		l.inc(metrics.SeedSkipped)
		l.logger.Info("Alias seed unchanged, skipping", zap.String("checksum", sum[:12]))
		return 0, nil
	}

	n, err := l.inner.Load(ctx, seed)
	if err != nil {
		return n, fmt.Errorf("apply seed: %w", err)
	}
	l.inc(metrics.SeedApplied)
	l.mark(ctx, sum)
	return n, nil
}

// Force applies seed unconditionally and records its checksum.
func (l *Loader) Force(ctx context.Context, seed aliasrepo.Seed) (int, error) {
	n, err := l.inner.Load(ctx, seed)
	if err != nil {
		return n, fmt.Errorf("apply seed: %w", err)
	}
	l.inc(metrics.SeedApplied)
	l.mark(ctx, Checksum(seed))
	return n, nil
}

// Applied reports whether the store already carries seed's checksum.
func (l *Loader) Applied(ctx context.Context, seed aliasrepo.Seed) bool {
	return l.applied(ctx, Checksum(seed))
}

// Checksum hashes the seed independent of map order. Tokens are sorted and
// each alias list is hashed in sorted order.
func Checksum(seed aliasrepo.Seed) string {
	tokens := make([]string, 0, len(seed.Aliases))
	for t := range seed.Aliases {
		tokens = append(tokens, t)
	}
	slices.Sort(tokens)

	h := sha256.New()
	for _, t := range tokens {
		aliases := slices.Clone(seed.Aliases[t])
		slices.Sort(aliases)
		h.Write([]byte(t))
		h.Write([]byte{0})
		for _, a := range aliases {
			h.Write([]byte(a))
			h.Write([]byte{0})
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (l *Loader) applied(ctx context.Context, sum string) bool {
	data, err := l.store.Get(ctx, l.key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			l.logger.Warn("Failed to read alias seed checksum", zap.String("key", l.key), zap.Error(err))
		}
		return false
	}
	return string(data) == sum
}

func (l *Loader) mark(ctx context.Context, sum string) {
	if err := l.store.Set(ctx, l.key, []byte(sum)); err != nil {
		l.logger.Warn("Failed to record alias seed checksum", zap.String("key", l.key), zap.Error(err))
	}
}

func (l *Loader) inc(result string) {
	if l.loadTotal != nil {
		l.loadTotal.WithLabelValues(result).Inc()
	}
}
