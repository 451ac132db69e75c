package rabbitmqrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"

	"github.com/corray333/backend-labs/booking/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/booking/internal/service/models/event"
)

const publishTimeout = 5 * time.Second

type client interface {
	DeclareQueue(cfg rabbitmq.DeclareQueueConfig) (amqp.Queue, error)
	PublishJSON(ctx context.Context, queue, messageID string, body []byte) error
}

// EventsRabbitMQRepository publishes submission events to a durable queue.
type EventsRabbitMQRepository struct {
	client client
	queue  amqp.Queue
}

// MustNewEventsRabbitMQRepository declares the queue and creates the repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func MustNewEventsRabbitMQRepository(client client, queueName string) *EventsRabbitMQRepository {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	})
	if err != nil {
		panic(err)
	}

	return &EventsRabbitMQRepository{
		client: client,
		queue:  queue,
	}
}

// Publish sends a single submission event.
func (r *EventsRabbitMQRepository) Publish(ctx context.Context, ev event.Submission) error {
	ctx, span := otel.Tracer("dal").Start(ctx, "EventsRepository.Publish")
	defer span.End()

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", ev.RoutingKey(), err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := r.client.PublishJSON(ctx, r.queue.Name, ev.ID, body); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", ev.RoutingKey(), err)
	}

	return nil
}
