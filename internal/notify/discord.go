package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobradar/internal/errors"
	"jobradar/internal/models"
	"jobradar/internal/parser"
	"jobradar/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobradar/processing/notify")

// Notifier delivers new-posting alerts.
type Notifier interface {
	NotifyJob(ctx context.Context, job *models.Job) error
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embed struct {
	Title  string       `json:"title"`
	URL    string       `json:"url,omitempty"`
	Fields []embedField `json:"fields"`
	Footer struct {
		Text string `json:"text"`
	} `json:"footer"`
	Timestamp string `json:"timestamp"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// Discord posts one embed per job to a webhook URL. An empty URL turns the
// notifier into a logged no-op so local runs don't need a webhook.
type Discord struct {
	webhookURL string
	client     *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

func NewDiscord(webhookURL string, timeout time.Duration, logger *zap.Logger) *Discord {
	if webhookURL == "" {
		logger.Warn("discord webhook url not set, notifications disabled")
	}
	return &Discord{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
		now:        time.Now,
	}
}

func (d *Discord) NotifyJob(ctx context.Context, job *models.Job) error {
	ctx, span := tracer.Start(ctx, "NotifyJob")
	defer span.End()
	span.SetAttributes(telemetry.String("job.id", job.ID))

	if d.webhookURL == "" {
		d.logger.Debug("skipping notification, webhook disabled",
			zap.String("id", job.ID))
		return nil
	}

	now := d.now().UTC()

	e := embed{
		Title:     fmt.Sprintf("%s — %s", orDefault(job.Company, "Unknown Company"), orDefault(job.Title, "Analyst Role")),
		URL:       job.ApplyURL,
		Timestamp: now.Format(time.RFC3339),
		Fields: []embedField{
			{Name: "Source", Value: job.Source, Inline: false},
			{Name: "Location", Value: "📍 " + job.Location(), Inline: true},
			{Name: "Age", Value: parser.FormatAge(job.Age(now)), Inline: true},
		},
	}
	e.Footer.Text = "Keep pushing — you've got this!"

	body, err := json.Marshal(webhookPayload{Embeds: []embed{e}})
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling webhook payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return errors.Internal("creating webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return errors.Unavailable("posting webhook", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			d.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	span.SetAttributes(telemetry.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusTooManyRequests {
		return errors.RateLimit("webhook rate limited", nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Internal(fmt.Sprintf("unexpected webhook status: %d", resp.StatusCode), nil)
	}

	d.logger.Debug("posted job notification",
		zap.String("id", job.ID),
		zap.String("company", job.Company))
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
