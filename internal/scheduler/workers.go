package scheduler

import (
	"context"
	"sync"
	"sync/atomic"

	"jobradar/internal/models"

	"go.uber.org/zap"
)

type workerManager struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

func newWorkerManager(scheduler *Scheduler, logger *zap.Logger) *workerManager {
	return &workerManager{
		scheduler: scheduler,
		logger:    logger,
	}
}

func (w *workerManager) startPublishWorkers(ctx context.Context, stats *runStats, jobChan chan *models.Job) *sync.WaitGroup {
	var wg sync.WaitGroup

	const numWorkers = 10
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				if err := w.scheduler.publishJob(ctx, job); err != nil {
					w.logger.Error("failed to publish job",
						zap.String("id", job.ID),
						zap.Error(err))
					continue
				}
				atomic.AddInt32(&stats.published, 1)
			}
		}()
	}

	return &wg
}
