package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/isyiwang/spam-blaster/internal/core"
	"go.uber.org/zap"
)

const mysqlTimeLayout = "2006-01-02 15:04:05"

// MySQLStore is a MySQL implementation of the VerdictRepository interface
type MySQLStore struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// NewMySQLStore creates a new MySQL verdict store
func NewMySQLStore(dsn string, logger *zap.Logger, cleanupFreq time.Duration) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS verdicts (
			document_id VARCHAR(768) PRIMARY KEY,
			is_spam BOOLEAN,
			score DOUBLE,
			selected_tokens INT,
			unknown_tokens INT,
			classified_at DATETIME,
			expires_at DATETIME,
			INDEX idx_verdicts_expires_at (expires_at)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	store := &MySQLStore{
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

func mysqlTime(t time.Time) string {
	return t.UTC().Format(mysqlTimeLayout)
}

// Get retrieves the record for a document
func (s *MySQLStore) Get(ctx context.Context, documentID string) (*core.VerdictRecord, error) {
	var record core.VerdictRecord
	var classifiedAt, expiresAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT document_id, is_spam, score, selected_tokens, unknown_tokens, classified_at, expires_at
		FROM verdicts
		WHERE document_id = ? AND expires_at > ?
	`, documentID, mysqlTime(time.Now())).Scan(
		&record.DocumentID, &record.IsSpam, &record.Score,
		&record.SelectedTokens, &record.UnknownTokens, &classifiedAt, &expiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query verdicts: %w", err)
	}

	// Parse timestamps
	record.ClassifiedAt, err = time.Parse(mysqlTimeLayout, classifiedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse classified_at timestamp: %w", err)
	}

	record.ExpiresAt, err = time.Parse(mysqlTimeLayout, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expires_at timestamp: %w", err)
	}

	return &record, nil
}

// Set stores a record
func (s *MySQLStore) Set(ctx context.Context, record *core.VerdictRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO verdicts
			(document_id, is_spam, score, selected_tokens, unknown_tokens, classified_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			is_spam = VALUES(is_spam),
			score = VALUES(score),
			selected_tokens = VALUES(selected_tokens),
			unknown_tokens = VALUES(unknown_tokens),
			classified_at = VALUES(classified_at),
			expires_at = VALUES(expires_at)
	`, record.DocumentID, record.IsSpam, record.Score, record.SelectedTokens, record.UnknownTokens,
		mysqlTime(record.ClassifiedAt), mysqlTime(record.ExpiresAt))

	if err != nil {
		return fmt.Errorf("failed to insert verdict record: %w", err)
	}

	return nil
}

// Delete removes a record
func (s *MySQLStore) Delete(ctx context.Context, documentID string) error {
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
func (s *MySQLStore) Cleanup(ctx context.Context) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM verdicts
		WHERE expires_at <= ?
	`, mysqlTime(time.Now()))

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
func (s *MySQLStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close MySQL database", zap.Error(err))
		}
	})
}

var _ core.VerdictRepository = (*MySQLStore)(nil)
