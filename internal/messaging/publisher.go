package messaging

import (
	"context"
	"encoding/json"
	"time"

	"jobradar/internal/config"
	"jobradar/internal/errors"
	"jobradar/internal/models"
	"jobradar/internal/telemetry"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobradar/ingestion/messaging")

const (
	JobsSubject = "jobs.new"
)

type Publisher interface {
	PublishJob(ctx context.Context, job *models.Job) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger, config *config.Config) (Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(config.NATSConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(config.NATSURL, opts...)
	if err != nil {
		return nil, errors.Internal("connecting to NATS", err)
	}

	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *natsPublisher) PublishJob(ctx context.Context, job *models.Job) error {
	_, span := tracer.Start(ctx, "PublishJob")
	defer span.End()

	data, err := json.Marshal(job)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling job", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", JobsSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(JobsSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish job",
			zap.String("id", job.ID),
			zap.Error(err))
		return errors.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published job",
		zap.String("id", job.ID),
		zap.String("subject", JobsSubject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
