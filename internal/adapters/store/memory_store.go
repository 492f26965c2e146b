package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/isyiwang/spam-blaster/internal/core"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a verdict record is not found
	ErrNotFound = errors.New("verdict record not found")
)

// MemoryStore is an in-memory implementation of the VerdictRepository interface
type MemoryStore struct {
	records     map[string]*core.VerdictRecord
	mu          sync.RWMutex
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// NewMemoryStore creates a new in-memory verdict store
func NewMemoryStore(logger *zap.Logger, cleanupFreq time.Duration) *MemoryStore {
	store := &MemoryStore{
		records:     make(map[string]*core.VerdictRecord),
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	if cleanupFreq > 0 {
		go runCleanup(store, logger, cleanupFreq, store.stopCh)
	}

	return store
}

// Get retrieves the record for a document
func (s *MemoryStore) Get(ctx context.Context, documentID string) (*core.VerdictRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[documentID]
	if !ok || time.Now().After(record.ExpiresAt) {
		return nil, ErrNotFound
	}

	copied := *record
	return &copied, nil
}

// Set stores a record
func (s *MemoryStore) Set(ctx context.Context, record *core.VerdictRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *record
	s.records[record.DocumentID] = &copied
	return nil
}

// Delete removes a record
func (s *MemoryStore) Delete(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, documentID)
	return nil
}

// Cleanup removes expired records
func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	expiredCount := 0

	for id, record := range s.records {
		if now.After(record.ExpiresAt) {
			delete(s.records, id)
			expiredCount++
		}
	}

	s.logger.Debug("Cleaned up expired verdict records", zap.Int("expired_count", expiredCount))
	return nil
}

// Len returns the number of stored records, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Stop stops the background cleanup task
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

var _ core.VerdictRepository = (*MemoryStore)(nil)
