package core

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

const (
	// DefaultMaxTokens is the number of most extreme tokens combined into a score
	DefaultMaxTokens = 15
	// DefaultEpsilon bounds spamicity away from 0 and 1 before taking logs
	DefaultEpsilon = 1e-9
)

// UnknownTokenPolicy decides what scoring does with tokens missing from the spamicity table
type UnknownTokenPolicy int

const (
	// NeutralUnknownTokens scores unknown tokens with spamicity 0
	NeutralUnknownTokens UnknownTokenPolicy = iota
	// FailOnUnknownTokens makes scoring return an *UnknownTokenError
	FailOnUnknownTokens
)

// String returns the configuration name of the policy
func (p UnknownTokenPolicy) String() string {
	switch p {
	case NeutralUnknownTokens:
		return "neutral"
	case FailOnUnknownTokens:
		return "fail"
	default:
		return fmt.Sprintf("UnknownTokenPolicy(%d)", int(p))
	}
}

// ParseUnknownTokenPolicy parses a configuration value into an UnknownTokenPolicy
func ParseUnknownTokenPolicy(s string) (UnknownTokenPolicy, error) {
	switch s {
	case "", "neutral":
		return NeutralUnknownTokens, nil
	case "fail":
		return FailOnUnknownTokens, nil
	default:
		return NeutralUnknownTokens, fmt.Errorf("unsupported unknown token policy: %s", s)
	}
}

// ClassifierOptions configures a Classifier
type ClassifierOptions struct {
	MaxTokens     int
	Epsilon       float64
	LedgerMode    LedgerMode
	UnknownTokens UnknownTokenPolicy
}

// DefaultClassifierOptions returns the reference configuration
func DefaultClassifierOptions() ClassifierOptions {
	return ClassifierOptions{
		MaxTokens:     DefaultMaxTokens,
		Epsilon:       DefaultEpsilon,
		LedgerMode:    ReplaceMode,
		UnknownTokens: NeutralUnknownTokens,
	}
}

// ClassifierStats describes the trained state of a classifier
type ClassifierStats struct {
	SpamDocuments  int
	HamDocuments   int
	SpamVocabulary int
	HamVocabulary  int
	ScoredTokens   int
}

// Classifier owns the spam and ham ledgers and the spamicity table derived from them.
// It is not safe for concurrent use.
type Classifier struct {
	opts   ClassifierOptions
	spam   *Ledger
	ham    *Ledger
	table  SpamicityTable
	logger *zap.Logger
}

// NewClassifier creates an untrained classifier
func NewClassifier(opts ClassifierOptions, logger *zap.Logger) *Classifier {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Epsilon <= 0 || opts.Epsilon >= neutral {
		opts.Epsilon = DefaultEpsilon
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		opts:   opts,
		spam:   NewLedger(opts.LedgerMode),
		ham:    NewLedger(opts.LedgerMode),
		table:  make(SpamicityTable),
		logger: logger,
	}
}

// Options returns the options the classifier runs with
func (c *Classifier) Options() ClassifierOptions {
	return c.opts
}

// TrainSpam ingests a document into the spam ledger
func (c *Classifier) TrainSpam(doc *Document) {
	c.Train(doc, Spam)
}

// TrainHam ingests a document into the ham ledger
func (c *Classifier) TrainHam(doc *Document) {
	c.Train(doc, Ham)
}

// Train ingests a document into the ledger of the given verdict.
// The spamicity table is left untouched until Recompute.
func (c *Classifier) Train(doc *Document, verdict Verdict) {
	c.ingest(Tokenize(doc.Lines), verdict)
}

func (c *Classifier) ingest(tokens *TokenSet, verdict Verdict) {
	if verdict == Spam {
		c.spam.Ingest(tokens)
	} else {
		c.ham.Ingest(tokens)
	}
}

// Recompute rebuilds the spamicity table from the current ledgers
func (c *Classifier) Recompute() {
	c.table = Recompute(c.spam, c.ham)
	c.logger.Debug("Recomputed spamicity",
		zap.Int("tokens", len(c.table)),
		zap.Int("spam_documents", c.spam.DocumentCount()),
		zap.Int("ham_documents", c.ham.DocumentCount()))
}

// Spamicity returns the current table entry for a token
func (c *Classifier) Spamicity(t Token) (float64, error) {
	return c.table.Lookup(t)
}

// Score classifies a document without changing any state
func (c *Classifier) Score(doc *Document) (*Result, error) {
	return c.score(doc, Tokenize(doc.Lines))
}

// Classify scores a document and trains the ledger of the resulting verdict
// with it. Classifying is therefore not idempotent, although the verdict of
// a repeated call only changes after Recompute.
func (c *Classifier) Classify(doc *Document) (*Result, error) {
	tokens := Tokenize(doc.Lines)
	result, err := c.score(doc, tokens)
	if err != nil {
		return nil, err
	}
	c.ingest(tokens, result.Verdict)
	return result, nil
}

func (c *Classifier) score(doc *Document, tokens *TokenSet) (*Result, error) {
	result := &Result{DocumentID: doc.ID}

	scored := make([]ScoredToken, 0, tokens.Len())
	for _, t := range tokens.order {
		s, err := c.table.Lookup(t)
		if err != nil {
			if c.opts.UnknownTokens == FailOnUnknownTokens {
				return nil, fmt.Errorf("failed to score %s: %w", doc.ID, err)
			}
			result.UnknownTokens = append(result.UnknownTokens, t)
			s = 0
		}
		scored = append(scored, ScoredToken{Token: t, Spamicity: s})
	}
	if len(result.UnknownTokens) > 0 {
		c.logger.Debug("Scored unknown tokens as neutral",
			zap.String("document", doc.ID),
			zap.Int("unknown_tokens", len(result.UnknownTokens)))
	}

	// Ties keep document order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Spamicity > scored[j].Spamicity
	})
	if len(scored) > c.opts.MaxTokens {
		scored = scored[:c.opts.MaxTokens]
	}

	result.Selected = scored
	result.LogOdds = CombineLogOdds(scored, c.opts.Epsilon)
	result.Score = MessageSpamicity(result.LogOdds)
	if result.Score > neutral {
		result.Verdict = Spam
	}
	return result, nil
}

// CombineLogOdds sums ln(1-s) - ln(s) over the tokens, with each spamicity
// clamped to [epsilon, 1-epsilon]
func CombineLogOdds(tokens []ScoredToken, epsilon float64) float64 {
	var n float64
	for _, t := range tokens {
		s := math.Min(math.Max(t.Spamicity, epsilon), 1-epsilon)
		n += math.Log(1-s) - math.Log(s)
	}
	return n
}

// MessageSpamicity converts a log-odds sum into the probability 1/(1+e^n)
func MessageSpamicity(n float64) float64 {
	return 1.0 / (1.0 + math.Exp(n))
}

// Stats reports document counts and vocabulary sizes
func (c *Classifier) Stats() ClassifierStats {
	return ClassifierStats{
		SpamDocuments:  c.spam.DocumentCount(),
		HamDocuments:   c.ham.DocumentCount(),
		SpamVocabulary: c.spam.Len(),
		HamVocabulary:  c.ham.Len(),
		ScoredTokens:   len(c.table),
	}
}

// SpamLedger returns the spam corpus ledger
func (c *Classifier) SpamLedger() *Ledger {
	return c.spam
}

// HamLedger returns the ham corpus ledger
func (c *Classifier) HamLedger() *Ledger {
	return c.ham
}
