package queue

import "context"

// Publisher delivers a JSON-encodable payload under a routing key
// (RabbitMQ routing key or NATS subject).
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}
