package worker

import (
	"context"
	"time"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

const DefaultJobTimeout = 10 * time.Minute

type JobConsumer interface {
	ConsumeJobs(ctx context.Context, handler func(ctx context.Context, job models.PublishJob) error) error
}

type JobHandler interface {
	HandleJob(ctx context.Context, job models.PublishJob) error
}

// * PublishWorker runs queued publish jobs until its context is cancelled
type PublishWorker struct {
	consumer JobConsumer
	handler  JobHandler
	timeout  time.Duration
}

func NewPublishWorker(consumer JobConsumer, handler JobHandler, timeout time.Duration) *PublishWorker {
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	return &PublishWorker{
		consumer: consumer,
		handler:  handler,
		timeout:  timeout,
	}
}

func (w *PublishWorker) Run(ctx context.Context) {
	logger.Info("starting publish worker")

	if err := w.consumer.ConsumeJobs(ctx, w.handle); err != nil {
		logger.Error("publish worker stopped: %v", err)
		return
	}

	logger.Info("stopping publish worker")
}

func (w *PublishWorker) handle(ctx context.Context, job models.PublishJob) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	if err := w.handler.HandleJob(ctx, job); err != nil {
		return err
	}

	logger.Info("published %s for %s@%s in %v (queued %v ago)",
		job.DocumentType, job.RepositoryURL, job.Branch, time.Since(start).Round(time.Millisecond), time.Since(job.RequestedAt).Round(time.Second))
	return nil
}
