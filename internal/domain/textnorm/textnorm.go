// Package textnorm canonicalizes free text into the underscore-delimited
// token form every scorer compares against.
package textnorm

import (
	"strings"
	"unicode"
)

// Separator joins tokens in a normalized string.
const Separator = '_'

const separator = string(Separator)

// Normalize lower-cases text, keeps letters and digits, and collapses every
// run of other characters into a single separator. The result never starts,
// ends, or doubles a separator. Normalizing a normalized string returns it
// unchanged without allocating.
func Normalize(text string) string {
	if text == "" || IsNormalized(text) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	pending := false
	for _, r := range text {
		r = unicode.ToLower(r)
		if !isWordRune(r) {
			pending = true
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteByte(Separator)
		}
		pending = false
		b.WriteRune(r)
	}
	return b.String()
}

// IsNormalized reports whether s is already in normalized form.
func IsNormalized(s string) bool {
	prevSep := true // a leading separator is invalid
	for _, r := range s {
		if r == Separator {
			if prevSep {
				return false
			}
			prevSep = true
			continue
		}
		if !isWordRune(r) || unicode.ToLower(r) != r {
			return false
		}
		prevSep = false
	}
	return s == "" || !prevSep
}

// Tokens splits a normalized string into its tokens.
func Tokens(norm string) []string {
	if norm == "" {
		return nil
	}
	return strings.Split(norm, separator)
}

// FirstToken returns the leading token of a normalized string.
func FirstToken(norm string) string {
	head, _, _ := strings.Cut(norm, separator)
	return head
}

// HasToken reports whether token is one of the whole tokens of norm.
// A token containing a separator never matches.
func HasToken(norm, token string) bool {
	if token == "" {
		return false
	}
	for norm != "" {
		head, rest, _ := strings.Cut(norm, separator)
		if head == token {
			return true
		}
		norm = rest
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
