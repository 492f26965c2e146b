package core

import (
	"regexp"
)

// tokenSeparator matches the runs of characters that split a body line into tokens
var tokenSeparator = regexp.MustCompile(`[ ,.-]+`)

// TokenSet is a deduplicated set of tokens that remembers first-occurrence order
type TokenSet struct {
	order []Token
	index map[Token]struct{}
}

// NewTokenSet creates a token set from the given tokens, dropping duplicates
func NewTokenSet(tokens ...Token) *TokenSet {
	s := &TokenSet{index: make(map[Token]struct{}, len(tokens))}
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

// Add inserts a token, reporting whether it was not already present
func (s *TokenSet) Add(t Token) bool {
	if _, ok := s.index[t]; ok {
		return false
	}
	s.index[t] = struct{}{}
	s.order = append(s.order, t)
	return true
}

// Contains reports whether the token is in the set
func (s *TokenSet) Contains(t Token) bool {
	_, ok := s.index[t]
	return ok
}

// Len returns the number of distinct tokens
func (s *TokenSet) Len() int {
	return len(s.order)
}

// Tokens returns the tokens in first-occurrence order
func (s *TokenSet) Tokens() []Token {
	out := make([]Token, len(s.order))
	copy(out, s.order)
	return out
}

// Tokenize returns the distinct tokens of a document body.
//
// Every line up to and including the first empty line is treated as header
// and skipped. A document without an empty line therefore has no body and
// yields an empty set.
func Tokenize(lines []string) *TokenSet {
	set := NewTokenSet()
	inBody := false
	for _, line := range lines {
		if !inBody {
			inBody = line == ""
			continue
		}
		for _, t := range splitLine(line) {
			set.Add(t)
		}
	}
	return set
}

// splitLine splits a line on runs of separators. A leading empty fragment is
// kept, trailing empty fragments are dropped, and a line without any
// separator is returned whole (so an empty body line yields one empty token).
func splitLine(line string) []string {
	parts := tokenSeparator.Split(line, -1)
	if len(parts) == 1 {
		return parts
	}
	end := len(parts)
	for end > 0 && parts[end-1] == "" {
		end--
	}
	return parts[:end]
}
