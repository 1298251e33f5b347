package scheduler

import (
	"context"
	"sync"
	"time"

	"jobradar/internal/careers"
	"jobradar/internal/config"
	"jobradar/internal/errors"
	"jobradar/internal/feed"
	"jobradar/internal/filter"
	"jobradar/internal/messaging"
	"jobradar/internal/models"
	"jobradar/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobradar/ingestion/scheduler")

// Scheduler drives ingestion: on every tick it pulls all sources, filters
// the postings, and hands survivors to the publish workers.
type Scheduler struct {
	feedClient   feed.Client
	scraper      *careers.Scraper
	jobFilter    *filter.Filter
	publisher    messaging.Publisher
	logger       *zap.Logger
	config       *config.Config
	mutex        sync.Mutex
	isActive     bool
	workers      *workerManager
	sourceRunner *sourceRunner
}

func New(feedClient feed.Client, scraper *careers.Scraper, jobFilter *filter.Filter, publisher messaging.Publisher, logger *zap.Logger, cfg *config.Config) *Scheduler {
	s := &Scheduler{
		feedClient: feedClient,
		scraper:    scraper,
		jobFilter:  jobFilter,
		publisher:  publisher,
		logger:     logger,
		config:     cfg,
	}
	s.workers = newWorkerManager(s, logger)
	s.sourceRunner = newSourceRunner(s, logger)
	return s
}

func (s *Scheduler) Start(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Scheduler.Start")
	defer span.End()

	s.mutex.Lock()
	if s.isActive {
		s.mutex.Unlock()
		return nil
	}
	s.isActive = true
	s.mutex.Unlock()

	ticker := time.NewTicker(s.config.PollingInterval)
	defer ticker.Stop()

	if err := s.runOnce(ctx); err != nil {
		s.logger.Error("initial ingestion run failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.runOnce(ctx); err != nil {
				s.logger.Error("periodic ingestion run failed", zap.Error(err))
			}
		}
	}
}

func (s *Scheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.isActive = false
}

type runStats struct {
	fetched   int32
	accepted  int32
	rejected  int32
	published int32
}

func (s *Scheduler) runOnce(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Scheduler.runOnce")
	defer span.End()

	s.logger.Info("starting ingestion run")

	stats := &runStats{}
	jobChan := make(chan *models.Job)
	doneChan := make(chan bool)

	wg := s.workers.startPublishWorkers(ctx, stats, jobChan)

	go func() {
		s.sourceRunner.run(ctx, stats, jobChan)
		close(jobChan)
	}()

	go func() {
		wg.Wait()
		close(doneChan)
	}()

	return s.waitForCompletion(ctx, doneChan, stats)
}

func (s *Scheduler) waitForCompletion(ctx context.Context, doneChan chan bool, stats *runStats) error {
	ctx, span := tracer.Start(ctx, "Scheduler.waitForCompletion")
	defer span.End()

	select {
	case <-ctx.Done():
		span.RecordError(ctx.Err())
		return ctx.Err()
	case <-doneChan:
		span.SetAttributes(
			telemetry.Int("jobs.fetched", int(stats.fetched)),
			telemetry.Int("jobs.accepted", int(stats.accepted)),
			telemetry.Int("jobs.rejected", int(stats.rejected)),
			telemetry.Int("jobs.published", int(stats.published)),
		)
		s.logger.Info("completed ingestion run",
			zap.Int("fetched", int(stats.fetched)),
			zap.Int("accepted", int(stats.accepted)),
			zap.Int("rejected", int(stats.rejected)),
			zap.Int("published", int(stats.published)))
		return nil
	}
}

func (s *Scheduler) publishJob(ctx context.Context, job *models.Job) error {
	ctx, span := tracer.Start(ctx, "Scheduler.publishJob")
	span.SetAttributes(telemetry.String("job.id", job.ID))
	defer span.End()

	if err := s.publisher.PublishJob(ctx, job); err != nil {
		span.RecordError(err)
		return errors.Internal("failed to publish job", err)
	}
	return nil
}
