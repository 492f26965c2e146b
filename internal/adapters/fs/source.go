package fs

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/isyiwang/spam-blaster/internal/core"
	"github.com/isyiwang/spam-blaster/internal/utils"
	"go.uber.org/zap"
)

// maxLineSize bounds a single line of a document
const maxLineSize = 4 * 1024 * 1024

// DocumentSource reads documents from files
type DocumentSource struct {
	text   *utils.TextProcessor
	logger *zap.Logger
}

// NewDocumentSource creates a new file document source
func NewDocumentSource(text *utils.TextProcessor, logger *zap.Logger) *DocumentSource {
	return &DocumentSource{
		text:   text,
		logger: logger,
	}
}

// Read loads the file at path, decodes it and splits it into lines
func (s *DocumentSource) Read(ctx context.Context, path string) (*core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := s.text.Decode(raw)
	if err != nil {
		return nil, err
	}

	lines, err := SplitLines(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split %s into lines: %w", path, err)
	}

	s.logger.Debug("Read document",
		zap.String("path", path),
		zap.Int("bytes", len(raw)),
		zap.Int("lines", len(lines)))

	return &core.Document{ID: path, Lines: lines}, nil
}

// SplitLines splits text on \n, \r\n and lone \r line endings. A final line
// without a terminator is kept; a trailing terminator does not add an empty line.
func SplitLines(text string) ([]string, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanLines)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// scanLines is bufio.ScanLines extended to end a line at a lone \r
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		// A \r at the end of the buffer may start a \r\n pair.
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ core.DocumentSource = (*DocumentSource)(nil)
