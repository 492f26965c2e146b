package core

import (
	"math"
)

// neutral is the spam probability that carries no signal
const neutral = 0.5

// SpamicityTable maps tokens to their distance from neutral, in [0, 0.5]
type SpamicityTable map[Token]float64

// Lookup returns the spamicity of a token, or an *UnknownTokenError when the
// table holds no score for it
func (t SpamicityTable) Lookup(token Token) (float64, error) {
	s, ok := t[token]
	if !ok {
		return 0, &UnknownTokenError{Token: token}
	}
	return s, nil
}

// Recompute derives a fresh spamicity table for every token in the spam ledger.
//
// A token also present in the ham ledger gets s/(s+h) from the two corpus
// frequencies, otherwise 0.5. The stored value is |0.5 - value|, so the table
// keeps magnitude and drops direction. A zero denominator counts as 0.5.
func Recompute(spam, ham *Ledger) SpamicityTable {
	table := make(SpamicityTable, spam.Len())
	for token := range spam.counts {
		value := neutral
		if _, ok := ham.counts[token]; ok {
			s := spam.Frequency(token)
			h := ham.Frequency(token)
			if s+h != 0 {
				value = s / (s + h)
			}
		}
		table[token] = math.Abs(neutral - value)
	}
	return table
}
