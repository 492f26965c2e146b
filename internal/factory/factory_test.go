package factory

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/isyiwang/spam-blaster/internal/adapters/store"
	"github.com/isyiwang/spam-blaster/internal/config"
	"github.com/isyiwang/spam-blaster/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testConfig(settings map[string]interface{}) *config.Config {
	v := config.NewEmptyViper()
	for k, val := range settings {
		v.Set(k, val)
	}
	return config.NewFromViper(v)
}

func TestCreateClassifier(t *testing.T) {
	cfg := testConfig(map[string]interface{}{
		"classifier.max_tokens":     7,
		"classifier.ledger_mode":    "accumulate",
		"classifier.unknown_tokens": "fail",
	})

	c, err := NewClassifierFactory(cfg, zaptest.NewLogger(t)).CreateClassifier()
	require.NoError(t, err)
	opts := c.Options()
	assert.Equal(t, 7, opts.MaxTokens)
	assert.Equal(t, core.AccumulateMode, opts.LedgerMode)
	assert.Equal(t, core.FailOnUnknownTokens, opts.UnknownTokens)
	assert.Equal(t, 1e-9, opts.Epsilon)
}

func TestCreateClassifierInvalidMode(t *testing.T) {
	cfg := testConfig(map[string]interface{}{"classifier.ledger_mode": "merge"})
	_, err := NewClassifierFactory(cfg, zaptest.NewLogger(t)).CreateClassifier()
	assert.Error(t, err)

	cfg = testConfig(map[string]interface{}{"classifier.unknown_tokens": "skip"})
	_, err = NewClassifierFactory(cfg, zaptest.NewLogger(t)).CreateClassifier()
	assert.Error(t, err)
}

func TestCreateVerdictRepository(t *testing.T) {
	cfg := testConfig(map[string]interface{}{"store.cleanup_frequency": "0s"})
	f := NewStoreFactory(cfg, zaptest.NewLogger(t))

	repo, err := f.CreateVerdictRepository()
	require.NoError(t, err)
	mem, ok := repo.(*store.MemoryStore)
	require.True(t, ok)
	mem.Stop()

	assert.True(t, f.IsStoreEnabled())
	retention, err := f.GetRetention()
	require.NoError(t, err)
	assert.Equal(t, 720*time.Hour, retention)
}

func TestCreateVerdictRepositoryDisabled(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	cfg := testConfig(map[string]interface{}{
		"store.enabled":     false,
		"store.type":        "sqlite",
		"store.sqlite_path": filepath.Join(blocker, "journal", "verdicts.db"),
	})
	f := NewStoreFactory(cfg, zaptest.NewLogger(t))

	repo, err := f.CreateVerdictRepository()
	require.NoError(t, err)
	mem, ok := repo.(*store.MemoryStore)
	require.True(t, ok)
	mem.Stop()

	assert.False(t, f.IsStoreEnabled())
	_, err = os.Stat(filepath.Join(blocker, "journal"))
	assert.Error(t, err)
}

func TestCreateSQLiteRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "verdicts.db")
	cfg := testConfig(map[string]interface{}{
		"store.type":              "sqlite",
		"store.sqlite_path":       path,
		"store.cleanup_frequency": "0s",
	})

	repo, err := NewStoreFactory(cfg, zap.NewNop()).CreateVerdictRepository()
	require.NoError(t, err)
	sqlite, ok := repo.(*store.SQLiteStore)
	require.True(t, ok)
	sqlite.Stop()
	assert.FileExists(t, path)
}

func TestCreateVerdictRepositoryErrors(t *testing.T) {
	cfg := testConfig(map[string]interface{}{"store.type": "redis"})
	_, err := NewStoreFactory(cfg, zaptest.NewLogger(t)).CreateVerdictRepository()
	assert.EqualError(t, err, "unsupported store type: redis")

	cfg = testConfig(map[string]interface{}{"store.cleanup_frequency": "often"})
	_, err = NewStoreFactory(cfg, zaptest.NewLogger(t)).CreateVerdictRepository()
	assert.Error(t, err)
}

func TestCreateDocumentSource(t *testing.T) {
	cfg := testConfig(map[string]interface{}{"documents.charset": "latin1"})
	f := NewDocumentFactory(cfg, zaptest.NewLogger(t))

	text, err := f.CreateTextProcessor()
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", text.Charset())

	_, err = f.CreateDocumentSource()
	require.NoError(t, err)
	assert.NotNil(t, f.CreateDirectoryLister())

	cfg = testConfig(map[string]interface{}{"documents.charset": "bogus"})
	_, err = NewDocumentFactory(cfg, zaptest.NewLogger(t)).CreateDocumentSource()
	assert.Error(t, err)
}

func TestCreateDriver(t *testing.T) {
	logger := zaptest.NewLogger(t)
	classifier := core.NewClassifier(core.DefaultClassifierOptions(), logger)
	service := core.NewFilterService(classifier, nil, nil, logger, false, 0)
	lister := NewDocumentFactory(testConfig(nil), logger).CreateDirectoryLister()

	cfg := testConfig(nil)
	d, err := NewDriverFactory(cfg, logger, service, lister, strings.NewReader(""), &bytes.Buffer{}).CreateDriver()
	require.NoError(t, err)
	assert.NotNil(t, d)

	cfg = testConfig(map[string]interface{}{"driver.type": "batch"})
	_, err = NewDriverFactory(cfg, logger, service, lister, strings.NewReader(""), &bytes.Buffer{}).CreateDriver()
	assert.Error(t, err)

	cfg = testConfig(map[string]interface{}{"driver.type": "daemon"})
	_, err = NewDriverFactory(cfg, logger, service, lister, strings.NewReader(""), &bytes.Buffer{}).CreateDriver()
	assert.EqualError(t, err, "unsupported driver type: daemon")
}
