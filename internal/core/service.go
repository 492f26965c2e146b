package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// FilterService drives a Classifier from document identifiers
type FilterService struct {
	classifier     *Classifier
	documents      DocumentSource
	verdicts       VerdictRepository
	logger         *zap.Logger
	journalEnabled bool
	retention      time.Duration
}

// NewFilterService creates a new filter service
func NewFilterService(
	classifier *Classifier,
	documents DocumentSource,
	verdicts VerdictRepository,
	logger *zap.Logger,
	journalEnabled bool,
	retention time.Duration,
) *FilterService {
	return &FilterService{
		classifier:     classifier,
		documents:      documents,
		verdicts:       verdicts,
		logger:         logger,
		journalEnabled: journalEnabled && verdicts != nil,
		retention:      retention,
	}
}

// Classifier returns the classifier the service drives
func (s *FilterService) Classifier() *Classifier {
	return s.classifier
}

// TrainCorpus trains the ledger of the given verdict with every document in
// order. The first document that cannot be read aborts training.
func (s *FilterService) TrainCorpus(ctx context.Context, verdict Verdict, ids []string) (int, error) {
	trained := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return trained, err
		}
		doc, err := s.documents.Read(ctx, id)
		if err != nil {
			return trained, fmt.Errorf("failed to read %s document %s: %w", verdict, id, err)
		}
		s.classifier.Train(doc, verdict)
		trained++
	}

	s.logger.Info("Trained corpus",
		zap.String("corpus", verdict.String()),
		zap.Int("documents", trained))
	return trained, nil
}

// UpdateSpamicity recomputes the spamicity table after training
func (s *FilterService) UpdateSpamicity() {
	s.classifier.Recompute()
	stats := s.classifier.Stats()
	s.logger.Info("Updated spamicity",
		zap.Int("scored_tokens", stats.ScoredTokens),
		zap.Int("spam_documents", stats.SpamDocuments),
		zap.Int("ham_documents", stats.HamDocuments))
}

// ScanDocument classifies a single document, training the classifier with
// it and journaling the verdict
func (s *FilterService) ScanDocument(ctx context.Context, id string) (*Result, error) {
	doc, err := s.documents.Read(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", id, err)
	}

	result, err := s.classifier.Classify(doc)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Classified document",
		zap.String("document", id),
		zap.Stringer("verdict", result.Verdict),
		zap.Float64("score", result.Score),
		zap.Int("selected_tokens", len(result.Selected)),
		zap.Int("unknown_tokens", len(result.UnknownTokens)))

	if s.journalEnabled {
		s.journal(ctx, result)
	}
	return result, nil
}

func (s *FilterService) journal(ctx context.Context, result *Result) {
	if prev, err := s.verdicts.Get(ctx, result.DocumentID); err == nil && prev.IsSpam != result.IsSpam() {
		s.logger.Info("Verdict changed since last classification",
			zap.String("document", result.DocumentID),
			zap.Bool("was_spam", prev.IsSpam),
			zap.Bool("is_spam", result.IsSpam()))
	}

	now := time.Now()
	record := &VerdictRecord{
		DocumentID:     result.DocumentID,
		IsSpam:         result.IsSpam(),
		Score:          result.Score,
		SelectedTokens: len(result.Selected),
		UnknownTokens:  len(result.UnknownTokens),
		ClassifiedAt:   now,
		ExpiresAt:      now.Add(s.retention),
	}
	if err := s.verdicts.Set(ctx, record); err != nil {
		s.logger.Error("Failed to journal verdict", zap.Error(err), zap.String("document", result.DocumentID))
	}
}

// ScanBatch classifies documents in order and counts the spam verdicts.
// On error the report covers the documents classified so far.
func (s *FilterService) ScanBatch(ctx context.Context, ids []string) (*BatchReport, error) {
	report := &BatchReport{}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		result, err := s.ScanDocument(ctx, id)
		if err != nil {
			return report, err
		}
		report.Total++
		if result.IsSpam() {
			report.SpamCount++
			report.Flagged = append(report.Flagged, id)
		}
	}

	s.logger.Info("Scanned batch",
		zap.Int("documents", report.Total),
		zap.Int("spam", report.SpamCount))
	return report, nil
}
