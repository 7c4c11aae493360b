package tierank

import (
	"context"
	"fmt"
	"time"

	aliasrepo "github.com/kailas-cloud/tierank/internal/repository/alias"
)

// AliasService manages topic aliases. Tokens and aliases are normalized
// before they reach the store.
type AliasService struct {
	svc aliasUseCase
	obs *observer
}

// Get returns the aliases of token, sorted. Returns ErrAliasNotFound when
// none are stored.
func (s *AliasService) Get(ctx context.Context, token string) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("alias.get", start, err) }()

	aliases, err := s.svc.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get aliases: %w", err)
	}
	return aliases, nil
}

// Put adds aliases to token and returns how many were written.
func (s *AliasService) Put(ctx context.Context, token string, aliases ...string) (_ int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("alias.put", start, err) }()

	n, err := s.svc.Put(ctx, token, aliases...)
	if err != nil {
		return 0, fmt.Errorf("put aliases: %w", err)
	}
	return n, nil
}

// Delete removes every alias of token.
func (s *AliasService) Delete(ctx context.Context, token string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("alias.delete", start, err) }()

	if err = s.svc.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete aliases: %w", err)
	}
	return nil
}

// List returns every token that has aliases, sorted.
func (s *AliasService) List(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("alias.list", start, err) }()

	tokens, err := s.svc.Tokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	return tokens, nil
}

// Load replaces the stored alias table with table. Tokens absent from table
// are deleted. Returns the number of aliases written.
func (s *AliasService) Load(ctx context.Context, table map[string][]string) (_ int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("alias.load", start, err) }()

	n, err := s.svc.Load(ctx, aliasrepo.Seed{Aliases: table})
	if err != nil {
		return n, fmt.Errorf("load aliases: %w", err)
	}
	return n, nil
}
