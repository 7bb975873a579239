package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

const PublishQueue = "handoff_publish"

type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	queue, err := channel.QueueDeclare(
		PublishQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	// * one unacked job per consumer, publishing is slow
	if err := channel.Qos(1, 0, false); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Info("Connected to RabbitMQ, queue %s has %d pending jobs", queue.Name, queue.Messages)
	return &RabbitMQ{
		conn:    conn,
		channel: channel,
		queue:   queue.Name,
	}, nil
}

func (r *RabbitMQ) PublishJob(ctx context.Context, job models.PublishJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return r.channel.Publish(
		"",
		r.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    job.RequestedAt,
			Body:         body,
		},
	)
}

// * ConsumeJobs blocks, handing each delivery to handler, until ctx is done
// * or the broker closes the channel. A handler error nacks the delivery.
func (r *RabbitMQ) ConsumeJobs(ctx context.Context, handler func(ctx context.Context, job models.PublishJob) error) error {
	msgs, err := r.channel.Consume(
		r.queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			if err := process(ctx, d, handler); err != nil {
				logger.Error("could not acknowledge delivery %d: %v", d.DeliveryTag, err)
			}
		}
	}
}

// * process decodes and handles a delivery. Malformed bodies are dropped.
// * A failed job is requeued once, then dropped.
func process(ctx context.Context, d amqp.Delivery, handler func(context.Context, models.PublishJob) error) error {
	var job models.PublishJob
	if err := json.Unmarshal(d.Body, &job); err != nil {
		logger.Error("Error decoding publish job: %v", err)
		return d.Nack(false, false)
	}

	if err := handler(ctx, job); err != nil {
		requeue := !d.Redelivered
		logger.Error("Error handling %s job for %s@%s (requeue=%t): %v", job.DocumentType, job.RepositoryURL, job.Branch, requeue, err)
		return d.Nack(false, requeue)
	}

	return d.Ack(false)
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		return fmt.Errorf("close channel: %w", err)
	}
	return r.conn.Close()
}
