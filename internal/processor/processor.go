package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobradar/internal/cache"
	"jobradar/internal/config"
	"jobradar/internal/notify"
	"jobradar/internal/parser"
	"jobradar/internal/store"
	"jobradar/internal/telemetry"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// JobProcessor consumes raw postings off NATS: parse, dedupe against the
// seen-set, persist, notify.
type JobProcessor struct {
	logger   *zap.Logger
	store    store.Store
	cache    cache.Cache
	notifier notify.Notifier
	tracer   trace.Tracer
	config   *config.Config

	mu          sync.Mutex
	windowStart time.Time
	notified    int

	now func() time.Time
}

func NewJobProcessor(logger *zap.Logger, st store.Store, c cache.Cache, notifier notify.Notifier, cfg *config.Config) *JobProcessor {
	return &JobProcessor{
		logger:   logger,
		store:    st,
		cache:    c,
		notifier: notifier,
		tracer:   telemetry.GetTracer("jobradar/processing/processor"),
		config:   cfg,
		now:      time.Now,
	}
}

func seenKey(id string) string {
	return "jobs:seen:" + id
}

func (p *JobProcessor) ProcessJob(ctx context.Context, rawData []byte) error {
	ctx, span := p.tracer.Start(ctx, "ProcessJob")
	defer span.End()

	now := p.now()

	job, err := parser.ParseJob(rawData, now)
	if err != nil {
		jobsProcessed.WithLabelValues("failed").Inc()
		p.logger.Error("failed to parse job", zap.Error(err))
		return fmt.Errorf("parse job: %w", err)
	}
	span.SetAttributes(
		telemetry.String("job.id", job.ID),
		telemetry.String("job.company", job.Company),
	)

	if p.alreadySeen(ctx, job.ID) {
		jobsProcessed.WithLabelValues("duplicate").Inc()
		span.SetAttributes(telemetry.String("job.outcome", "duplicate"))

		if err := p.store.Touch(ctx, job.ID, now); err != nil {
			p.logger.Warn("failed to refresh last_seen",
				zap.String("id", job.ID),
				zap.Error(err))
		}
		return nil
	}

	if err := p.store.Insert(ctx, job); err != nil {
		jobsProcessed.WithLabelValues("failed").Inc()
		span.RecordError(err)
		p.logger.Error("failed to store job",
			zap.String("id", job.ID),
			zap.Error(err))
		return fmt.Errorf("store job: %w", err)
	}
	jobsProcessed.WithLabelValues("stored").Inc()
	span.SetAttributes(telemetry.String("job.outcome", "stored"))

	p.markSeen(ctx, job.ID)

	// Notification failure never fails the posting itself.
	if p.takeNotifySlot(now) {
		if err := p.notifier.NotifyJob(ctx, job); err != nil {
			notifyFailures.Inc()
			p.logger.Warn("failed to notify",
				zap.String("id", job.ID),
				zap.Error(err))
		}
	} else {
		notifySkipped.Inc()
	}

	p.logger.Info("processed job",
		zap.String("id", job.ID),
		zap.String("company", job.Company),
		zap.String("title", job.Title),
		zap.String("category", job.Category))

	return nil
}

func (p *JobProcessor) alreadySeen(ctx context.Context, id string) bool {
	var marker string
	err := p.cache.Get(ctx, seenKey(id), &marker)
	if err == nil {
		return true
	}
	if err != cache.ErrNotFound {
		// Redis down degrades to treating everything as new; the store's
		// ReplacingMergeTree collapses the duplicates.
		p.logger.Warn("seen-set lookup failed", zap.String("id", id), zap.Error(err))
	}
	return false
}

func (p *JobProcessor) markSeen(ctx context.Context, id string) {
	if err := p.cache.Set(ctx, seenKey(id), "1", p.config.SeenTTL); err != nil {
		p.logger.Warn("failed to mark job seen", zap.String("id", id), zap.Error(err))
	}
}

// takeNotifySlot enforces MaxPostsPerRun within each polling window.
func (p *JobProcessor) takeNotifySlot(now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if now.Sub(p.windowStart) >= p.config.PollingInterval {
		p.windowStart = now
		p.notified = 0
	}
	if p.notified >= p.config.MaxPostsPerRun {
		return false
	}
	p.notified++
	return true
}
