package di

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/isyiwang/spam-blaster/internal/config"
	"github.com/isyiwang/spam-blaster/internal/core"
	"github.com/isyiwang/spam-blaster/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, dir string, bodies map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, body := range bodies {
		content := "Subject: test\n\n" + body + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestParseFlags(t *testing.T) {
	fs := flag.NewFlagSet("spam-scan", flag.ContinueOnError)
	flags, err := ParseFlags(fs, []string{
		"-spam", "/s", "-ham", "/h", "-dir", "/u",
		"-ledger-mode", "accumulate", "-exclude", "cmds, .*",
	})
	require.NoError(t, err)
	assert.Equal(t, "/s", flags.SpamDir)
	assert.Equal(t, "accumulate", flags.LedgerMode)
	assert.Equal(t, "neutral", flags.UnknownTokens)
	assert.Equal(t, 15, flags.MaxTokens)

	cfg := createConfigFromFlags(flags)
	assert.Equal(t, "batch", cfg.GetString("driver.type"))
	assert.Equal(t, []string{"cmds", ".*"}, cfg.GetCorpus().Exclude)
	assert.False(t, cfg.GetStore().Enabled)
}

func TestBuildCLIContainerRunsBatch(t *testing.T) {
	root := t.TempDir()
	spamDir := filepath.Join(root, "spam")
	hamDir := filepath.Join(root, "ham")
	unfilteredDir := filepath.Join(root, "unfiltered")

	writeCorpus(t, spamDir, map[string]string{
		"1.eml": "buy cheap pills now",
		"2.eml": "cheap offer, buy now",
	})
	writeCorpus(t, hamDir, map[string]string{
		"1.eml": "meeting notes for monday",
		"cmds":  "not an email",
	})
	writeCorpus(t, unfilteredDir, map[string]string{
		"a.eml": "buy cheap pills",
		"b.eml": "monday meeting",
	})

	flags := &CLIFlags{
		SpamDir:       spamDir,
		HamDir:        hamDir,
		UnfilteredDir: unfilteredDir,
		Exclude:       "cmds",
		MaxTokens:     15,
		LedgerMode:    "replace",
		UnknownTokens: "neutral",
		Charset:       "utf-8",
		Store:         "memory",
	}

	var out bytes.Buffer
	container, err := BuildCLIContainer(flags, strings.NewReader(""), &out)
	require.NoError(t, err)

	err = container.Invoke(func(driver ports.Driver, service *core.FilterService, verdicts core.VerdictRepository) error {
		if stopper, ok := verdicts.(interface{ Stop() }); ok {
			defer stopper.Stop()
		}
		if err := driver.Run(context.Background()); err != nil {
			return err
		}
		// Both unfiltered documents are scored ham and trained into the ham ledger
		stats := service.Classifier().Stats()
		assert.Equal(t, 2, stats.SpamDocuments)
		assert.Equal(t, 3, stats.HamDocuments)
		return nil
	})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Added 2 spam files to filter")
	assert.Contains(t, output, "Added 1 ham files to filter")
	assert.Contains(t, output, "Detected 0 / 2 spam messages")
}

func TestBuildCLIContainerWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("classifier:\n  max_tokens: 7\n"), 0o644))

	container, err := BuildCLIContainer(&CLIFlags{ConfigFile: path}, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)

	err = container.Invoke(func(cfg *config.Config, classifier *core.Classifier) {
		assert.Equal(t, path, cfg.GetViper().ConfigFileUsed())
		assert.Equal(t, 7, classifier.Options().MaxTokens)
	})
	require.NoError(t, err)
}
