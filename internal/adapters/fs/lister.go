package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/isyiwang/spam-blaster/internal/exclude"
	"github.com/isyiwang/spam-blaster/internal/ports"
	"go.uber.org/zap"
)

// DirectoryLister lists corpus directories on the local filesystem
type DirectoryLister struct {
	exclude *exclude.Checker
	logger  *zap.Logger
}

// NewDirectoryLister creates a new directory lister
func NewDirectoryLister(checker *exclude.Checker, logger *zap.Logger) *DirectoryLister {
	return &DirectoryLister{
		exclude: checker,
		logger:  logger,
	}
}

// List returns the absolute paths of the regular files directly inside dir,
// sorted so that ingestion order is reproducible
func (l *DirectoryLister) List(ctx context.Context, dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(abs, entry.Name())
		// Follow symlinks so linked messages count as regular files
		info, err := os.Stat(path)
		if err != nil {
			l.logger.Warn("Skipping unreadable entry", zap.String("path", path), zap.Error(err))
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if l.exclude != nil && l.exclude.IsExcluded(path) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)

	l.logger.Debug("Listed directory", zap.String("directory", abs), zap.Int("files", len(files)))
	return files, nil
}

var _ ports.DirectoryLister = (*DirectoryLister)(nil)
