package events

import (
	"context"
	"fmt"

	"jobradar/internal/processor"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Handler struct {
	logger       *zap.Logger
	nc           *nats.Conn
	tracer       trace.Tracer
	jobProcessor *processor.JobProcessor
	sub          *nats.Subscription
}

func NewHandler(logger *zap.Logger, nc *nats.Conn, tracer trace.Tracer, jobProcessor *processor.JobProcessor) *Handler {
	return &Handler{
		logger:       logger,
		nc:           nc,
		tracer:       tracer,
		jobProcessor: jobProcessor,
	}
}

func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle) error {
	sub, err := h.nc.QueueSubscribe("jobs.new", "processing-service", h.handleJob)
	if err != nil {
		return fmt.Errorf("subscribe to jobs.new: %w", err)
	}

	h.sub = sub
	h.logger.Info("registered NATS subscriptions")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return h.sub.Unsubscribe()
		},
	})

	return nil
}

func (h *Handler) handleJob(msg *nats.Msg) {
	ctx, span := h.tracer.Start(context.Background(), "handleJob")
	defer span.End()

	if err := h.jobProcessor.ProcessJob(ctx, msg.Data); err != nil {
		h.logger.Error("failed to process job",
			zap.Error(err),
			zap.String("subject", msg.Subject),
		)
		return
	}

	h.logger.Debug("processed job message",
		zap.String("subject", msg.Subject),
	)
}
