package factory

import (
	"github.com/isyiwang/spam-blaster/internal/adapters/fs"
	"github.com/isyiwang/spam-blaster/internal/config"
	"github.com/isyiwang/spam-blaster/internal/core"
	"github.com/isyiwang/spam-blaster/internal/exclude"
	"github.com/isyiwang/spam-blaster/internal/ports"
	"github.com/isyiwang/spam-blaster/internal/utils"
	"go.uber.org/zap"
)

// DocumentFactory creates the filesystem collaborators that supply documents
type DocumentFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewDocumentFactory creates a new DocumentFactory
func NewDocumentFactory(cfg *config.Config, logger *zap.Logger) *DocumentFactory {
	return &DocumentFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTextProcessor creates a text processor for the configured charset
func (f *DocumentFactory) CreateTextProcessor() (*utils.TextProcessor, error) {
	docs := f.cfg.GetDocuments()
	return utils.NewTextProcessor(f.logger, docs.Charset, docs.SanitizeUTF8)
}

// CreateDocumentSource creates a file document source
func (f *DocumentFactory) CreateDocumentSource() (core.DocumentSource, error) {
	text, err := f.CreateTextProcessor()
	if err != nil {
		return nil, err
	}
	return fs.NewDocumentSource(text, f.logger), nil
}

// CreateDirectoryLister creates a directory lister honouring the corpus exclusions
func (f *DocumentFactory) CreateDirectoryLister() ports.DirectoryLister {
	checker := exclude.NewChecker(f.cfg.GetCorpus().Exclude, f.logger)
	return fs.NewDirectoryLister(checker, f.logger)
}
