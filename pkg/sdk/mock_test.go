package tierank

import (
	"context"

	"github.com/kailas-cloud/tierank/internal/domain/document"
	"github.com/kailas-cloud/tierank/internal/domain/source"
	aliasrepo "github.com/kailas-cloud/tierank/internal/repository/alias"
	"github.com/kailas-cloud/tierank/internal/usecase/search"
)

// --- rankUseCase mock ---

type mockRankUC struct {
	rankFn       func(ctx context.Context, req *search.Request) (search.Response, error)
	rankDomainFn func(
		ctx context.Context, query string, kind source.Kind, docs []document.Fields, limit int,
	) (search.DomainResult, error)
	exactFn func(ctx context.Context, query string, kind source.Kind, doc document.Fields) (bool, error)
}

func (m *mockRankUC) Rank(ctx context.Context, req *search.Request) (search.Response, error) {
	return m.rankFn(ctx, req)
}

func (m *mockRankUC) RankDomain(
	ctx context.Context, query string, kind source.Kind, docs []document.Fields, limit int,
) (search.DomainResult, error) {
	return m.rankDomainFn(ctx, query, kind, docs, limit)
}

func (m *mockRankUC) ExactMatch(
	ctx context.Context, query string, kind source.Kind, doc document.Fields,
) (bool, error) {
	return m.exactFn(ctx, query, kind, doc)
}

// --- aliasUseCase mock ---

type mockAliasUC struct {
	getFn    func(ctx context.Context, token string) ([]string, error)
	putFn    func(ctx context.Context, token string, aliases ...string) (int, error)
	deleteFn func(ctx context.Context, token string) error
	tokensFn func(ctx context.Context) ([]string, error)
	loadFn   func(ctx context.Context, seed aliasrepo.Seed) (int, error)
}

func (m *mockAliasUC) Get(ctx context.Context, token string) ([]string, error) {
	return m.getFn(ctx, token)
}

func (m *mockAliasUC) Put(ctx context.Context, token string, aliases ...string) (int, error) {
	return m.putFn(ctx, token, aliases...)
}

func (m *mockAliasUC) Delete(ctx context.Context, token string) error {
	return m.deleteFn(ctx, token)
}

func (m *mockAliasUC) Tokens(ctx context.Context) ([]string, error) {
	return m.tokensFn(ctx)
}

func (m *mockAliasUC) Load(ctx context.Context, seed aliasrepo.Seed) (int, error) {
	return m.loadFn(ctx, seed)
}

// --- helpers ---

func testClient(rankSvc rankUseCase, aliasSvc aliasUseCase) *Client {
	return &Client{rankSvc: rankSvc, aliasSvc: aliasSvc}
}
