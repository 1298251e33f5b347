package board

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"jobradar/internal/config"
	"jobradar/internal/models"
	"jobradar/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type listStore struct {
	jobs []models.Job
}

func (s *listStore) Insert(ctx context.Context, job *models.Job) error { return nil }

func (s *listStore) Touch(ctx context.Context, id string, lastSeen time.Time) error { return nil }

func (s *listStore) List(ctx context.Context, q store.Query) ([]models.Job, error) {
	return s.jobs, nil
}

func TestRenderOnceWritesBoard(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")

	cfg := &config.Config{
		BoardPath:      path,
		RenderInterval: time.Hour,
		ArchiveAfter:   7 * 24 * time.Hour,
	}
	st := &listStore{jobs: []models.Job{
		posting("Google", "Data Analyst", models.TierFAANG, "Data Analytics", time.Hour),
	}}

	r := NewRenderer(st, zap.NewNop(), cfg)
	require.NoError(t, r.RenderOnce(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# New Grad Data Science Jobs")
	assert.Contains(t, string(data), "| Google | Data Analyst |")
}

func TestRenderOnceOverwritesPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	cfg := &config.Config{
		BoardPath:      path,
		RenderInterval: time.Hour,
		ArchiveAfter:   7 * 24 * time.Hour,
	}
	r := NewRenderer(&listStore{}, zap.NewNop(), cfg)
	require.NoError(t, r.RenderOnce(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	require.NoError(t, writeAtomic(path, []byte("one")))
	require.NoError(t, writeAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
