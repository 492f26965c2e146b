package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/isyiwang/spam-blaster/internal/core"
	"github.com/isyiwang/spam-blaster/internal/exclude"
	"github.com/isyiwang/spam-blaster/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestListRegularFilesOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.eml"), "b")
	writeFile(t, filepath.Join(dir, "a.eml"), "a")
	writeFile(t, filepath.Join(dir, "cmds"), "rm")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, filepath.Join(dir, "nested", "c.eml"), "c")

	logger := zaptest.NewLogger(t)
	lister := NewDirectoryLister(exclude.NewChecker([]string{"cmds"}, logger), logger)

	files, err := lister.List(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.eml"),
		filepath.Join(dir, "b.eml"),
	}, files)
}

func TestListReturnsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "msg"), "x")

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, dir)
	require.NoError(t, err)

	lister := NewDirectoryLister(nil, zaptest.NewLogger(t))
	files, err := lister.List(context.Background(), rel)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, filepath.IsAbs(files[0]))
}

func TestListMissingDirectory(t *testing.T) {
	lister := NewDirectoryLister(nil, zaptest.NewLogger(t))
	_, err := lister.List(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestListEmptyDirectory(t *testing.T) {
	lister := NewDirectoryLister(nil, zaptest.NewLogger(t))
	files, err := lister.List(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestReadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg")
	writeFile(t, path, "Subject: hi\r\n\r\nwin free money\nnow\n")

	logger := zaptest.NewLogger(t)
	text, err := utils.NewTextProcessor(logger, "utf-8", false)
	require.NoError(t, err)

	doc, err := NewDocumentSource(text, logger).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.ID)
	assert.Equal(t, []string{"Subject: hi", "", "win free money", "now"}, doc.Lines)
}

func TestReadLatin1Document(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg")
	writeFile(t, path, "\n\ncaf\xe9 cr\xe8me")

	logger := zaptest.NewLogger(t)
	text, err := utils.NewTextProcessor(logger, "latin1", false)
	require.NoError(t, err)

	doc, err := NewDocumentSource(text, logger).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", "café crème"}, doc.Lines)
}

func TestReadMissingDocument(t *testing.T) {
	logger := zaptest.NewLogger(t)
	text, err := utils.NewTextProcessor(logger, "", false)
	require.NoError(t, err)

	_, err = NewDocumentSource(text, logger).Read(context.Background(), filepath.Join(t.TempDir(), "gone"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplitLines(t *testing.T) {
	lines, err := SplitLines("")
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = SplitLines("a\n\nb")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b"}, lines)

	lines, err = SplitLines("a\r\nb\rc\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}

func TestSplitLinesCarriageReturnOnly(t *testing.T) {
	lines, err := SplitLines("Subject: x\r\rwin free\r")
	require.NoError(t, err)
	assert.Equal(t, []string{"Subject: x", "", "win free"}, lines)
	assert.Equal(t, []core.Token{"win", "free"}, core.Tokenize(lines).Tokens())

	lines, err = SplitLines("a\r\r\nb")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b"}, lines)
}
