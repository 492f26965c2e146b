package exclude

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Checker decides which corpus files are left out of training and scanning
type Checker struct {
	patterns []string
	logger   *zap.Logger
}

// NewChecker creates a new exclusion checker from glob patterns matched
// against base file names
func NewChecker(patterns []string, logger *zap.Logger) *Checker {
	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := filepath.Match(p, ""); err != nil {
			if logger != nil {
				logger.Warn("Ignoring malformed exclude pattern", zap.String("pattern", p), zap.Error(err))
			}
			continue
		}
		normalized = append(normalized, p)
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized corpus exclusions", zap.Strings("patterns", normalized))
	}

	return &Checker{
		patterns: normalized,
		logger:   logger,
	}
}

// IsExcluded checks if the file's base name matches an exclusion pattern
func (c *Checker) IsExcluded(path string) bool {
	if len(c.patterns) == 0 {
		return false
	}

	name := filepath.Base(path)
	for _, p := range c.patterns {
		if ok, _ := filepath.Match(p, name); ok {
			if c.logger != nil {
				c.logger.Debug("File is excluded",
					zap.String("pattern", p),
					zap.String("file", path))
			}
			return true
		}
	}

	return false
}
