package alias

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Seed is the static alias table read from YAML:
//
//	aliases:
//	  ai: [artificial_intelligence, machine_learning]
type Seed struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// ParseSeed decodes a seed document.
func ParseSeed(r io.Reader) (Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return Seed{}, fmt.Errorf("parse alias seed: %w", err)
	}
	return s, nil
}

// LoadSeedFile reads and decodes a seed file.
func LoadSeedFile(path string) (Seed, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Seed{}, fmt.Errorf("open alias seed: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseSeed(f)
}

// Load makes the store mirror seed: each listed token's set is replaced and
// tokens the seed no longer lists are deleted. Returns the number of aliases
// written.
func (r *Repo) Load(ctx context.Context, seed Seed) (int, error) {
	tokens := make([]string, 0, len(seed.Aliases))
	for t := range seed.Aliases {
		tokens = append(tokens, t)
	}
	slices.Sort(tokens)

	existing, err := r.Tokens(ctx)
	if err != nil {
		return 0, fmt.Errorf("list seeded tokens: %w", err)
	}

	keep := make(map[string]struct{}, len(tokens))
	total := 0
	for _, t := range tokens {
		keep[r.Key(t)] = struct{}{}
		if err := r.Delete(ctx, t); err != nil {
			return total, fmt.Errorf("reset token %q: %w", t, err)
		}
		n, err := r.Put(ctx, t, seed.Aliases[t]...)
		if err != nil {
			return total, fmt.Errorf("seed token %q: %w", t, err)
		}
		total += n
	}

	removed := 0
	for _, t := range existing {
		if _, ok := keep[r.Key(t)]; ok {
			continue
		}
		if err := r.Delete(ctx, t); err != nil {
			return total, fmt.Errorf("drop token %q: %w", t, err)
		}
		removed++
	}

	r.logger.Info("alias seed loaded",
		zap.Int("tokens", len(tokens)),
		zap.Int("aliases", total),
		zap.Int("removed_tokens", removed))
	return total, nil
}
