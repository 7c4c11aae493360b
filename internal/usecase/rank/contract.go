package rank

// AliasSource maps a normalized query token to topic-alias tokens.
// Implementations must return nil rather than fail for unknown tokens.
type AliasSource interface {
	SearchAliases(token string) []string
}

// NoAliases is an AliasSource that knows no aliases.
type NoAliases struct{}

// SearchAliases always returns nil.
func (NoAliases) SearchAliases(string) []string { return nil }

// StaticAliases is an in-memory alias table keyed by normalized token.
type StaticAliases map[string][]string

// SearchAliases returns the aliases stored for token.
func (s StaticAliases) SearchAliases(token string) []string { return s[token] }
