package alias

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tierank/internal/db/memory"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	smembersFn func(ctx context.Context, key string) ([]string, error)
	saddFn     func(ctx context.Context, key string, members ...string) error
	delFn      func(ctx context.Context, key string) error
	scanFn     func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return nil, nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func newMemoryRepo(t *testing.T) *Repo {
	t.Helper()
	return New(memory.NewStore(), "test:", zap.NewNop())
}
