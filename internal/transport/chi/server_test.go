package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tierank/internal/domain/source"
	healthuc "github.com/kailas-cloud/tierank/internal/usecase/health"
	searchuc "github.com/kailas-cloud/tierank/internal/usecase/search"
)

type staticAliases map[string][]string

func (s staticAliases) Resolve(_ context.Context, token string) []string { return s[token] }

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T, limits searchuc.Limits) http.Handler {
	t.Helper()
	search := searchuc.New(staticAliases{"scifi": {"science_fiction"}}, limits)
	health := healthuc.New(pingerFunc(func(context.Context) error { return nil }), search)
	srv := NewServer(search, health, zap.NewNop())
	return HandlerWithOptions(srv, ChiServerOptions{
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, err.Error())
		},
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}

func TestRank_Aggregated(t *testing.T) {
	h := newTestRouter(t, searchuc.DefaultLimits())

	rr := do(t, h, "POST", "/v1/rank", `{
		"query": "Dune",
		"limit": 1,
		"candidates": {
			"movie": [
				{"title": "Dune: Part Two", "year": 2024, "popularity": 99.5},
				{"title": "Dune", "year": 2021, "popularity": 80}
			],
			"book": [
				{"title": "Dune Messiah", "openlibrary_key": "/works/OL893526W"},
				{"title": "Dune", "openlibrary_key": "/works/OL893415W", "popularity_score": "12.5"}
			]
		}
	}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}

	resp := decodeBody[RankResponse](t, rr)
	if resp.Normalized != "dune" {
		t.Errorf("normalized = %q", resp.Normalized)
	}
	if len(resp.Domains) != 2 {
		t.Fatalf("expected 2 domains, got %d", len(resp.Domains))
	}
	movies := resp.Domains[0]
	if movies.Kind != "movie" || movies.Total != 2 || len(movies.Hits) != 1 {
		t.Fatalf("unexpected movie domain: %+v", movies)
	}
	if got := movies.Hits[0].Document["title"]; got != "Dune" {
		t.Errorf("top movie = %v", got)
	}
	if movies.Hits[0].Tier != 0 || movies.Hits[0].Rule != "raw_title" || movies.Hits[0].Position != 1 {
		t.Errorf("unexpected hit: %+v", movies.Hits[0])
	}
	// default hero order puts movie before book
	if resp.Hero == nil || resp.Hero.Kind != "movie" {
		t.Errorf("hero = %+v", resp.Hero)
	}
}

func TestRank_KeySerialization(t *testing.T) {
	h := newTestRouter(t, searchuc.DefaultLimits())

	rr := do(t, h, "POST", "/v1/rank/book", `{"query": "dune", "candidates": [{"title": "Dune", "key": "OL42W"}]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}

	var raw struct {
		Hits []struct {
			Key map[string]any `json:"key"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	if len(raw.Hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(raw.Hits))
	}
	key := raw.Hits[0].Key
	if key["tier"] != float64(0) || key["work_id"] != float64(42) {
		t.Errorf("unexpected key: %v", key)
	}
}

func TestRank_AliasesInResponse(t *testing.T) {
	h := newTestRouter(t, searchuc.DefaultLimits())

	rr := do(t, h, "POST", "/v1/rank/movie", `{"query": "scifi", "candidates": [{"title": "Science Fiction Theatre"}]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody[DomainResponse](t, rr)
	if resp.Hits[0].Rule != "title_alias" {
		t.Errorf("rule = %q, want title_alias", resp.Hits[0].Rule)
	}
}

func TestRankDomain_LimitParam(t *testing.T) {
	h := newTestRouter(t, searchuc.DefaultLimits())
	body := `{"query": "knight", "candidates": [{"name": "Gladys Knight"}, {"name": "Knight"}, {"name": "Keira Knightley"}]}`

	rr := do(t, h, "POST", "/v1/rank/person?limit=2", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody[DomainResponse](t, rr)
	if resp.Total != 3 || len(resp.Hits) != 2 {
		t.Fatalf("total=%d hits=%d", resp.Total, len(resp.Hits))
	}
	if resp.Hits[0].Document["name"] != "Knight" {
		t.Errorf("top = %v", resp.Hits[0].Document["name"])
	}

	rr = do(t, h, "POST", "/v1/rank/person?limit=abc", body)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad limit: got %d, want 400", rr.Code)
	}
}

func TestRank_Errors(t *testing.T) {
	limits := searchuc.DefaultLimits()
	limits.MaxCandidates = 1
	h := newTestRouter(t, limits)

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantCode   ErrorResponseCode
	}{
		{"blank query", "/v1/rank", `{"query": "  "}`, http.StatusBadRequest, ErrorResponseCodeInvalidQuery},
		{"unknown kind", "/v1/rank/music", `{"query": "x"}`, http.StatusNotFound, ErrorResponseCodeUnknownKind},
		{
			"too many candidates", "/v1/rank/movie", `{"query": "x", "candidates": [{}, {}]}`,
			http.StatusRequestEntityTooLarge, ErrorResponseCodeTooManyCandidates,
		},
		{"malformed body", "/v1/rank", `{"query": `, http.StatusBadRequest, ErrorResponseCodeBadRequest},
		{"empty body", "/v1/rank", ``, http.StatusBadRequest, ErrorResponseCodeBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, "POST", tc.target, tc.body)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status %d, want %d: %s", rr.Code, tc.wantStatus, rr.Body.String())
			}
			resp := decodeBody[ErrorResponse](t, rr)
			if resp.Code != tc.wantCode {
				t.Errorf("code %q, want %q", resp.Code, tc.wantCode)
			}
		})
	}
}

func TestExactMatch(t *testing.T) {
	h := newTestRouter(t, searchuc.DefaultLimits())

	rr := do(t, h, "POST", "/v1/exact-match/podcast",
		`{"query": "hardcore history", "document": {"title": "Hardcore History Weekly"}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody[ExactMatchResponse](t, rr)
	if resp.Kind != string(source.Podcast) || resp.Exact {
		t.Errorf("unexpected response: %+v", resp)
	}

	rr = do(t, h, "POST", "/v1/exact-match/author",
		`{"query": "Ursula K. Le Guin", "document": {"name": "Ursula K Le Guin"}}`)
	resp = decodeBody[ExactMatchResponse](t, rr)
	if !resp.Exact {
		t.Error("expected author exact match")
	}
}

func TestNormalize(t *testing.T) {
	h := newTestRouter(t, searchuc.DefaultLimits())

	rr := do(t, h, "GET", "/v1/normalize?text=The%20Dark--Knight!", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody[NormalizeResponse](t, rr)
	if resp.Normalized != "the_dark_knight" {
		t.Errorf("normalized = %q", resp.Normalized)
	}
	if len(resp.Tokens) != 3 {
		t.Errorf("tokens = %v", resp.Tokens)
	}

	rr = do(t, h, "GET", "/v1/normalize", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("missing text: got %d, want 400", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	h := newTestRouter(t, searchuc.DefaultLimits())

	rr := do(t, h, "GET", "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	resp := decodeBody[HealthResponse](t, rr)
	if resp.Status != "ok" || resp.Checks["engine"] != "ok" || resp.Checks["alias_store"] != "ok" {
		t.Errorf("unexpected health: %+v", resp)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, searchuc.DefaultLimits())

	rr := do(t, h, "GET", "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "go_goroutines") {
		t.Error("expected default Go collectors in metrics output")
	}
}
