package factory

import (
	"github.com/isyiwang/spam-blaster/internal/config"
	"github.com/isyiwang/spam-blaster/internal/core"
	"go.uber.org/zap"
)

// ClassifierFactory creates classifiers based on configuration
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier creates an untrained classifier from the configuration
func (f *ClassifierFactory) CreateClassifier() (*core.Classifier, error) {
	classifierConfig := f.cfg.GetClassifier()

	mode, err := core.ParseLedgerMode(classifierConfig.LedgerMode)
	if err != nil {
		return nil, err
	}
	policy, err := core.ParseUnknownTokenPolicy(classifierConfig.UnknownTokens)
	if err != nil {
		return nil, err
	}

	opts := core.ClassifierOptions{
		MaxTokens:     classifierConfig.MaxTokens,
		Epsilon:       classifierConfig.Epsilon,
		LedgerMode:    mode,
		UnknownTokens: policy,
	}
	classifier := core.NewClassifier(opts, f.logger)

	f.logger.Info("Created classifier",
		zap.Int("max_tokens", classifier.Options().MaxTokens),
		zap.Stringer("ledger_mode", mode),
		zap.Stringer("unknown_tokens", policy))
	return classifier, nil
}
