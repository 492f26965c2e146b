package core

import (
	"context"
)

// DocumentSource resolves a document identifier to its text
type DocumentSource interface {
	// Read opens the document and returns its lines
	Read(ctx context.Context, id string) (*Document, error)
}

// VerdictRepository journals classification outcomes
type VerdictRepository interface {
	// Get retrieves the journal entry for a document
	Get(ctx context.Context, documentID string) (*VerdictRecord, error)

	// Set stores a journal entry
	Set(ctx context.Context, record *VerdictRecord) error

	// Delete removes a journal entry
	Delete(ctx context.Context, documentID string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
