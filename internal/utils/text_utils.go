package utils

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// TextProcessor turns raw document bytes into UTF-8 text
type TextProcessor struct {
	logger   *zap.Logger
	charset  string
	enc      encoding.Encoding
	sanitize bool
}

// NewTextProcessor creates a new TextProcessor for the named charset.
// UTF-8 input is passed through unchanged.
func NewTextProcessor(logger *zap.Logger, charset string, sanitize bool) (*TextProcessor, error) {
	if charset == "" {
		charset = "utf-8"
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	if name == "utf-8" {
		enc = nil
	}

	return &TextProcessor{
		logger:   logger,
		charset:  name,
		enc:      enc,
		sanitize: sanitize,
	}, nil
}

// Charset returns the canonical name of the source charset
func (tp *TextProcessor) Charset() string {
	return tp.charset
}

// Decode converts raw bytes from the source charset to UTF-8
func (tp *TextProcessor) Decode(raw []byte) (string, error) {
	if tp.enc != nil {
		decoded, _, err := transform.Bytes(tp.enc.NewDecoder(), raw)
		if err != nil {
			return "", fmt.Errorf("failed to decode %s text: %w", tp.charset, err)
		}
		raw = decoded
	}

	text := string(raw)
	if tp.sanitize {
		text = tp.SanitizeUTF8(text)
	}
	return text, nil
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	// Drop invalid UTF-8 sequences
	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}
