package ports

import (
	"context"

	"github.com/isyiwang/spam-blaster/internal/core"
)

// CorpusFilter trains on labelled corpora and scans unfiltered documents
type CorpusFilter interface {
	// TrainCorpus ingests the documents into the ledger of the verdict
	TrainCorpus(ctx context.Context, verdict core.Verdict, ids []string) (int, error)

	// UpdateSpamicity recomputes spamicity from the trained ledgers
	UpdateSpamicity()

	// ScanBatch classifies the documents in order
	ScanBatch(ctx context.Context, ids []string) (*core.BatchReport, error)
}

var _ CorpusFilter = (*core.FilterService)(nil)
