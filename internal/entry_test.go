package internal

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatij/folio/internal/testutil"
)

func testConfig(t *testing.T, files map[string]string) *Config {
	t.Helper()
	root, _ := testutil.TestContent(t, files)
	cfg := NewDefaultConfig()
	cfg.Content.Root = root
	cfg.CV.OutputDir = filepath.Join(t.TempDir(), "public")
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "folio.db")
	cfg.CV.Profile.Name = "Test Person"
	return cfg
}

func TestGenerateCV_WritesPDF(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"projects/a.md": "---\ntitle: A\nstart_date: 2024-01\n---\nBody.\n",
	})

	path, err := GenerateCV(context.Background(), WithConfig(cfg), WithLogOutput(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, cfg.CV.OutputPath(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	// Regenerating with unchanged content yields identical bytes.
	_, err = GenerateCV(context.Background(), WithConfig(cfg), WithLogOutput(io.Discard))
	require.NoError(t, err)
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestGenerateCV_NoProjects(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"projects/hidden.md": "---\ntitle: Hidden\nshow_in_cv: false\n---\n",
	})
	path, err := GenerateCV(context.Background(), WithConfig(cfg), WithLogOutput(io.Discard))
	require.NoError(t, err)
	assert.Empty(t, path)
	_, err = os.Stat(cfg.CV.OutputPath())
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateCV_RequiresConfig(t *testing.T) {
	_, err := GenerateCV(context.Background())
	assert.Error(t, err)
}
