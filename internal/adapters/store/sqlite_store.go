package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/isyiwang/spam-blaster/internal/core"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// sqliteTimeLayout is fixed width so stored timestamps compare lexically
const sqliteTimeLayout = "2006-01-02 15:04:05.000000"

// SQLiteStore is a SQLite implementation of the VerdictRepository interface
type SQLiteStore struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// NewSQLiteStore creates a new SQLite verdict store
func NewSQLiteStore(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS verdicts (
			document_id TEXT PRIMARY KEY,
			is_spam BOOLEAN,
			score REAL,
			selected_tokens INTEGER,
			unknown_tokens INTEGER,
			classified_at TEXT,
			expires_at TEXT
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Create index on expires_at for faster cleanup
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_verdicts_expires_at ON verdicts(expires_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	store := &SQLiteStore{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	if cleanupFreq > 0 {
		go runCleanup(store, logger, cleanupFreq, store.stopCh)
	}

	return store, nil
}

func sqliteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

// Get retrieves the record for a document
func (s *SQLiteStore) Get(ctx context.Context, documentID string) (*core.VerdictRecord, error) {
	var record core.VerdictRecord
	var classifiedAt, expiresAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT document_id, is_spam, score, selected_tokens, unknown_tokens, classified_at, expires_at
		FROM verdicts
		WHERE document_id = ? AND expires_at > ?
	`, documentID, sqliteTime(time.Now())).Scan(
		&record.DocumentID, &record.IsSpam, &record.Score,
		&record.SelectedTokens, &record.UnknownTokens, &classifiedAt, &expiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query verdicts: %w", err)
	}

	record.ClassifiedAt, err = time.Parse(sqliteTimeLayout, classifiedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse classified_at timestamp: %w", err)
	}

	record.ExpiresAt, err = time.Parse(sqliteTimeLayout, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expires_at timestamp: %w", err)
	}

	return &record, nil
}

// Set stores a record
func (s *SQLiteStore) Set(ctx context.Context, record *core.VerdictRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO verdicts
			(document_id, is_spam, score, selected_tokens, unknown_tokens, classified_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.DocumentID, record.IsSpam, record.Score, record.SelectedTokens, record.UnknownTokens,
		sqliteTime(record.ClassifiedAt), sqliteTime(record.ExpiresAt))

	if err != nil {
		return fmt.Errorf("failed to insert verdict record: %w", err)
	}

	return nil
}

// Delete removes a record
func (s *SQLiteStore) Delete(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM verdicts
		WHERE document_id = ?
	`, documentID)

	if err != nil {
		return fmt.Errorf("failed to delete verdict record: %w", err)
	}

	return nil
}

// Cleanup removes expired records
func (s *SQLiteStore) Cleanup(ctx context.Context) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM verdicts
		WHERE expires_at <= ?
	`, sqliteTime(time.Now()))

	if err != nil {
		return fmt.Errorf("failed to clean up expired records: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else {
		s.logger.Debug("Cleaned up expired verdict records", zap.Int64("expired_count", rowsAffected))
	}

	return nil
}

// Stop stops the background cleanup task and closes the database connection
func (s *SQLiteStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close SQLite database", zap.Error(err))
		}
	})
}

var _ core.VerdictRepository = (*SQLiteStore)(nil)
