package feed

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"

	"jobradar/internal/cache"
	"jobradar/internal/config"
	"jobradar/internal/errors"
	"jobradar/internal/models"
	"jobradar/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobradar/ingestion/feed")

// Client fetches the upstream transformed-jobs feed.
type Client interface {
	FetchJobs(ctx context.Context) ([]models.FeedJob, error)
}

type feedClient struct {
	client *http.Client
	logger *zap.Logger
	config *config.Config
	cache  cache.Cache
}

func NewClient(logger *zap.Logger, cfg *config.Config, c cache.Cache) Client {
	return &feedClient{
		client: &http.Client{
			Timeout: cfg.FeedTimeout,
		},
		logger: logger,
		config: cfg,
		cache:  c,
	}
}

type feedPage struct {
	Jobs []models.FeedJob
}

func (p feedPage) MarshalBinary() ([]byte, error) {
	return json.Marshal(p.Jobs)
}

func (p *feedPage) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, &p.Jobs)
}

func (c *feedClient) FetchJobs(ctx context.Context) ([]models.FeedJob, error) {
	ctx, span := tracer.Start(ctx, "FetchJobs")
	defer span.End()

	cacheKey := fmt.Sprintf("feed:jobs:%x", sha1.Sum([]byte(c.config.FeedURL)))

	var cached feedPage
	err := c.cache.Get(ctx, cacheKey, &cached)
	if err == nil {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		c.logger.Debug("cache hit for jobs feed")
		return cached.Jobs, nil
	} else if err != cache.ErrNotFound {
		span.SetAttributes(telemetry.String("cache.result", "error"))
		span.RecordError(err)
		c.logger.Warn("cache error for jobs feed", zap.Error(err))
	} else {
		span.SetAttributes(telemetry.String("cache.result", "miss"))
	}

	c.logger.Debug("cache miss, fetching jobs feed", zap.String("url", c.config.FeedURL))
	span.SetAttributes(telemetry.String("http.url", c.config.FeedURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.FeedURL, nil)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Internal("creating request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		c.logger.Error("failed to execute request", zap.Error(err))
		return nil, errors.Unavailable("executing request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	span.SetAttributes(
		telemetry.Int("http.status_code", resp.StatusCode),
		telemetry.String("http.method", http.MethodGet),
	)

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unexpected status code", zap.Int("status_code", resp.StatusCode))
		return nil, errors.Internal(fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var jobs []models.FeedJob
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		c.logger.Error("failed to decode feed", zap.Error(err))
		return nil, errors.Internal("decoding feed", err)
	}

	c.logger.Info("fetched jobs feed", zap.Int("count", len(jobs)))
	span.SetAttributes(telemetry.Int("feed.count", len(jobs)))

	if err := c.cache.Set(ctx, cacheKey, feedPage{Jobs: jobs}, c.config.FeedCacheTTL); err != nil {
		c.logger.Warn("failed to cache jobs feed", zap.Error(err))
	}

	return jobs, nil
}
