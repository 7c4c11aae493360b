package rank

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/tierank/internal/domain/textnorm"
)

// minAliasLen is the rune length an alias must exceed to take part in the
// media title-contains and keyword-prefix alias rules.
const minAliasLen = 3

// Query is a user query prepared once and reused for every candidate.
type Query struct {
	raw         string
	norm        string
	aliases     []string
	longAliases []string
}

// NewQuery prepares raw against the given alias expansions of its normalized
// form. Aliases are normalized, de-duplicated, and the query itself is
// dropped.
func NewQuery(raw string, aliases []string) Query {
	q := Query{raw: raw, norm: textnorm.Normalize(raw)}
	if q.norm == "" {
		return q
	}
	seen := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		a = textnorm.Normalize(a)
		if a == "" || a == q.norm {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		q.aliases = append(q.aliases, a)
		if utf8.RuneCountInString(a) > minAliasLen {
			q.longAliases = append(q.longAliases, a)
		}
	}
	return q
}

// Raw returns the query as typed.
func (q *Query) Raw() string { return q.raw }

// Normalized returns the canonical form of the query.
func (q *Query) Normalized() string { return q.norm }

// Aliases returns the effective alias expansions.
func (q *Query) Aliases() []string { return q.aliases }

// IsBlank reports whether the query is empty or whitespace only.
func (q *Query) IsBlank() bool { return strings.TrimSpace(q.raw) == "" }

// rawEquals is the tier 0 test: case-insensitive equality of unnormalized text.
func (q *Query) rawEquals(s string) bool {
	return s != "" && strings.EqualFold(q.raw, s)
}

// containedIn reports whether the query or any alias is a substring of s.
func (q *Query) containedIn(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, q.norm) {
		return true
	}
	for _, a := range q.aliases {
		if strings.Contains(s, a) {
			return true
		}
	}
	return false
}

func anyEqual(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func anyToken(values []string, token string) bool {
	for _, v := range values {
		if textnorm.HasToken(v, token) {
			return true
		}
	}
	return false
}

func anyContains(values []string, sub string) bool {
	for _, v := range values {
		if v != "" && strings.Contains(v, sub) {
			return true
		}
	}
	return false
}

func anyPrefix(values []string, prefix string) bool {
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}

func normalizeAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = textnorm.Normalize(v)
	}
	return out
}
