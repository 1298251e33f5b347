package board

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"jobradar/internal/config"
	"jobradar/internal/errors"
	"jobradar/internal/store"
	"jobradar/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobradar/board/renderer")

// Renderer periodically regenerates the board file from the store.
type Renderer struct {
	store    store.Store
	markdown Markdown
	path     string
	logger   *zap.Logger
	config   *config.Config
}

func NewRenderer(st store.Store, logger *zap.Logger, cfg *config.Config) *Renderer {
	return &Renderer{
		store: st,
		markdown: Markdown{
			Title:        "New Grad Data Science Jobs",
			ArchiveAfter: cfg.ArchiveAfter,
		},
		path:   cfg.BoardPath,
		logger: logger,
		config: cfg,
	}
}

// Run renders once at start, then on every tick until ctx is done.
func (r *Renderer) Run(ctx context.Context) error {
	if err := r.RenderOnce(ctx); err != nil {
		r.logger.Error("initial board render failed", zap.Error(err))
	}

	ticker := time.NewTicker(r.config.RenderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.RenderOnce(ctx); err != nil {
				r.logger.Error("board render failed", zap.Error(err))
			}
		}
	}
}

func (r *Renderer) RenderOnce(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "RenderOnce")
	defer span.End()

	jobs, err := r.store.List(ctx, store.Query{})
	if err != nil {
		span.RecordError(err)
		return errors.Internal("listing jobs for board", err)
	}
	span.SetAttributes(telemetry.Int("jobs.count", len(jobs)))

	doc := r.markdown.Render(jobs, time.Now())

	if err := writeAtomic(r.path, []byte(doc)); err != nil {
		span.RecordError(err)
		return errors.Internal("writing board file", err)
	}

	r.logger.Info("rendered board",
		zap.String("path", r.path),
		zap.Int("jobs", len(jobs)))
	return nil
}

// writeAtomic writes via a temp file and rename so readers never see a
// half-written board.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".board-*.md")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
