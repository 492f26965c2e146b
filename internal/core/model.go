package core

import (
	"time"
)

// Token is a body fragment of a document. Tokens compare by exact string equality.
type Token = string

// Document is the line-oriented text of a single message
type Document struct {
	ID    string
	Lines []string
}

// Verdict is the binary outcome of classifying a document
type Verdict bool

const (
	// Ham marks a document as not spam
	Ham Verdict = false
	// Spam marks a document as spam
	Spam Verdict = true
)

// String returns the corpus name for the verdict
func (v Verdict) String() string {
	if v == Spam {
		return "spam"
	}
	return "ham"
}

// ScoredToken associates a token with its spamicity
type ScoredToken struct {
	Token     Token
	Spamicity float64
}

// Result is the outcome of scoring a document
type Result struct {
	DocumentID    string
	Verdict       Verdict
	Score         float64
	LogOdds       float64
	Selected      []ScoredToken
	UnknownTokens []Token
}

// IsSpam reports whether the result is a spam verdict
func (r *Result) IsSpam() bool {
	return r.Verdict == Spam
}

// BatchReport summarises the classification of a batch of documents
type BatchReport struct {
	Total     int // documents classified
	SpamCount int
	Flagged   []string
}

// VerdictRecord is a journal entry for a classified document
type VerdictRecord struct {
	DocumentID     string
	IsSpam         bool
	Score          float64
	SelectedTokens int
	UnknownTokens  int
	ClassifiedAt   time.Time
	ExpiresAt      time.Time
}
