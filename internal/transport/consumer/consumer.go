package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/corray333/backend-labs/booking/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/booking/internal/metrics"
	"github.com/corray333/backend-labs/booking/internal/service/apperr"
	"github.com/corray333/backend-labs/booking/internal/service/models/event"
)

// service represents the service layer interface.
type service interface {
	ProcessSubmission(ctx context.Context, ev event.Submission) error
}

// client is the part of the RabbitMQ client the consumer needs.
type client interface {
	DeclareQueue(cfg rabbitmq.DeclareQueueConfig) (amqp.Queue, error)
	Consume(cfg rabbitmq.ConsumeConfig) (<-chan amqp.Delivery, error)
}

// Consumer represents the RabbitMQ consumer transport.
type Consumer struct {
	client   client
	service  service
	queue    amqp.Queue
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewConsumer declares the submissions queue and creates a new Consumer.
func NewConsumer(client client, service service) *Consumer {
	queueName := viper.GetString("rabbitmq.queue")
	if queueName == "" {
		panic("rabbitmq.queue is not set in config")
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	})
	if err != nil {
		panic(err)
	}

	return &Consumer{
		client:  client,
		service: service,
		queue:   queue,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run consumes messages until Shutdown is called or the delivery channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	consumerTag := viper.GetString("rabbitmq.consumer_tag")
	if consumerTag == "" {
		consumerTag = "booking-auditor"
	}

	msgs, err := c.client.Consume(rabbitmq.ConsumeConfig{
		Queue:    c.queue.Name,
		Consumer: consumerTag,
	})
	if err != nil {
		return err
	}

	slog.Info("Consumer started", "queue", c.queue.Name, "consumer_tag", consumerTag)

	g, gctx := errgroup.WithContext(ctx)
	limit := viper.GetInt("rabbitmq.concurrency")
	if limit <= 0 {
		limit = 50
	}
	g.SetLimit(limit)

	go func() {
		defer close(c.done)
		for {
			select {
			case <-c.stop:
				slog.Info("Stopping consumer")

				return
			case msg, ok := <-msgs:
				if !ok {
					slog.Info("Message channel closed")

					return
				}

				g.Go(func() error {
					c.processMessage(gctx, msg)

					return nil
				})
			}
		}
	}()

	<-c.done

	return g.Wait()
}

// processMessage handles one delivery. Malformed or invalid events are dropped, other
// failures are requeued for retry.
func (c *Consumer) processMessage(ctx context.Context, msg amqp.Delivery) {
	ctx, span := otel.Tracer("consumer").Start(ctx, "Consumer.processMessage")
	defer span.End()

	var ev event.Submission
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		slog.Error("Failed to unmarshal submission event", "error", err, "delivery_tag", msg.DeliveryTag)
		metrics.RecordEvent("malformed")
		if err := msg.Nack(false, false); err != nil {
			slog.Error("Failed to nack message", "error", err)
		}

		return
	}

	if err := c.service.ProcessSubmission(ctx, ev); err != nil {
		requeue := !errors.Is(err, apperr.ErrValidation)
		slog.Error("Failed to process submission event", "error", err, "event_id", ev.ID, "requeue", requeue)
		if requeue {
			metrics.RecordEvent("retry")
		} else {
			metrics.RecordEvent("rejected")
		}
		if err := msg.Nack(false, requeue); err != nil {
			slog.Error("Failed to nack message", "error", err)
		}

		return
	}

	if err := msg.Ack(false); err != nil {
		slog.Error("Failed to ack message", "error", err)

		return
	}
	metrics.RecordEvent("processed")

	slog.Info("Message processed successfully", "event_id", ev.ID, "kind", ev.Kind)
}

// Shutdown stops reading new deliveries and waits for the read loop to exit.
func (c *Consumer) Shutdown() error {
	slog.Info("Shutting down consumer")
	c.stopOnce.Do(func() { close(c.stop) })

	select {
	case <-c.done:
		slog.Info("Consumer stopped successfully")
	case <-time.After(10 * time.Second):
		slog.Warn("Consumer shutdown timeout")
	}

	return nil
}
