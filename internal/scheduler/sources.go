package scheduler

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"jobradar/internal/models"
	"jobradar/internal/parser"

	"go.uber.org/zap"
)

type sourceRunner struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

func newSourceRunner(scheduler *Scheduler, logger *zap.Logger) *sourceRunner {
	return &sourceRunner{
		scheduler: scheduler,
		logger:    logger,
	}
}

// run pulls every configured source and feeds accepted postings into
// jobChan. Careers pages are scraped concurrently; the feed is one request.
func (r *sourceRunner) run(ctx context.Context, stats *runStats, jobChan chan *models.Job) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		r.runFeed(ctx, stats, jobChan)
	}()

	const pageWorkers = 5
	pageChan := make(chan string)

	for i := 0; i < pageWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pageURL := range pageChan {
				r.runCareersPage(ctx, pageURL, stats, jobChan)
			}
		}()
	}

	for _, pageURL := range r.scheduler.config.CareersPages {
		pageChan <- pageURL
	}
	close(pageChan)

	wg.Wait()
}

func (r *sourceRunner) runFeed(ctx context.Context, stats *runStats, jobChan chan *models.Job) {
	feedJobs, err := r.scheduler.feedClient.FetchJobs(ctx)
	if err != nil {
		r.logger.Error("failed to fetch jobs feed", zap.Error(err))
		return
	}

	now := time.Now()
	for i := range feedJobs {
		atomic.AddInt32(&stats.fetched, 1)
		job := feedJobs[i].ToJob(now)
		// Resolve the feed's relative age here so the recency gate sees a
		// real timestamp instead of waving stale postings through.
		if postedAt, ok := parser.ParseAge(feedJobs[i].JobPostedAt, now); ok {
			job.PostedAt = postedAt
		}
		r.offer(job, now, stats, jobChan)
	}
}

func (r *sourceRunner) runCareersPage(ctx context.Context, pageURL string, stats *runStats, jobChan chan *models.Job) {
	company := companyFromURL(pageURL)

	jobs, err := r.scheduler.scraper.ScrapePage(ctx, company, pageURL)
	if err != nil {
		r.logger.Error("failed to scrape careers page",
			zap.String("url", pageURL),
			zap.Error(err))
		return
	}

	now := time.Now()
	for i := range jobs {
		atomic.AddInt32(&stats.fetched, 1)
		r.offer(&jobs[i], now, stats, jobChan)
	}
}

func (r *sourceRunner) offer(job *models.Job, now time.Time, stats *runStats, jobChan chan *models.Job) {
	if !r.scheduler.jobFilter.Accept(job, now) {
		atomic.AddInt32(&stats.rejected, 1)
		return
	}
	atomic.AddInt32(&stats.accepted, 1)
	jobChan <- job
}

// companyFromURL guesses the employer from a careers page host:
// "https://jobs.example.com/openings" -> "Example".
func companyFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return pageURL
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		// Second-to-last label skips both the TLD and job-board subdomains.
		name := parts[len(parts)-2]
		return capitalize(name)
	}
	return host
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
