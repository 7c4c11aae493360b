package search

import "context"

// AliasResolver expands a normalized query token into topic aliases.
// It never fails; an unreachable store yields nil.
type AliasResolver interface {
	Resolve(ctx context.Context, token string) []string
}
