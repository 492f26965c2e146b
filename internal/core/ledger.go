package core

import (
	"fmt"
)

// LedgerMode controls how ingesting a document changes a ledger's counts
type LedgerMode int

const (
	// ReplaceMode keeps only the counts of the most recently ingested document
	ReplaceMode LedgerMode = iota
	// AccumulateMode adds each document's counts to the existing ones
	AccumulateMode
)

// String returns the configuration name of the mode
func (m LedgerMode) String() string {
	switch m {
	case ReplaceMode:
		return "replace"
	case AccumulateMode:
		return "accumulate"
	default:
		return fmt.Sprintf("LedgerMode(%d)", int(m))
	}
}

// ParseLedgerMode parses a configuration value into a LedgerMode
func ParseLedgerMode(s string) (LedgerMode, error) {
	switch s {
	case "", "replace":
		return ReplaceMode, nil
	case "accumulate":
		return AccumulateMode, nil
	default:
		return ReplaceMode, fmt.Errorf("unsupported ledger mode: %s", s)
	}
}

// Ledger records, for one corpus, how many documents each token appeared in
// and how many documents were ingested. Every recorded count is at least 1.
type Ledger struct {
	mode      LedgerMode
	counts    map[Token]int
	documents int
}

// NewLedger creates an empty ledger
func NewLedger(mode LedgerMode) *Ledger {
	return &Ledger{
		mode:   mode,
		counts: make(map[Token]int),
	}
}

// Ingest records one document's distinct tokens and increments the document count.
//
// In ReplaceMode the token mapping is overwritten with the counts of this
// document alone, discarding earlier training for the corpus.
func (l *Ledger) Ingest(tokens *TokenSet) {
	if l.mode == ReplaceMode {
		l.counts = make(map[Token]int, tokens.Len())
	}
	for _, t := range tokens.order {
		l.counts[t]++
	}
	l.documents++
}

// Count returns the number of documents containing the token and whether it is known
func (l *Ledger) Count(t Token) (int, bool) {
	c, ok := l.counts[t]
	return c, ok
}

// Frequency returns the share of ingested documents that contained the token
func (l *Ledger) Frequency(t Token) float64 {
	if l.documents == 0 {
		return 0
	}
	return float64(l.counts[t]) / float64(l.documents)
}

// DocumentCount returns the number of documents ingested so far
func (l *Ledger) DocumentCount() int {
	return l.documents
}

// Len returns the number of tokens in the mapping
func (l *Ledger) Len() int {
	return len(l.counts)
}

// Mode returns the ingest mode of the ledger
func (l *Ledger) Mode() LedgerMode {
	return l.mode
}

// Counts returns a copy of the token mapping
func (l *Ledger) Counts() map[Token]int {
	out := make(map[Token]int, len(l.counts))
	for t, c := range l.counts {
		out[t] = c
	}
	return out
}
