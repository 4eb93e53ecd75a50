package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"

	"github.com/Kerhoff/familycart/internal/models"
)

// PurchaseQueue is the durable queue purchase events are published to.
const PurchaseQueue = "purchase_queue"

type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQ publishes purchase events as JSON.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel publisher
	closer  func() error
	logger  *logrus.Logger
}

// NewRabbitMQ connects to url and declares PurchaseQueue.
func NewRabbitMQ(url string, logger *logrus.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		PurchaseQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", PurchaseQueue, err)
	}

	logger.WithField("queue", PurchaseQueue).Info("RabbitMQ connected")

	return &RabbitMQ{
		conn:    conn,
		channel: ch,
		closer:  ch.Close,
		logger:  logger,
	}, nil
}

func (r *RabbitMQ) PurchaseRecorded(ctx context.Context, familyID string, record *models.PurchaseRecord) error {
	body, err := json.Marshal(NewPurchaseEvent(familyID, record))
	if err != nil {
		return fmt.Errorf("failed to marshal purchase event: %w", err)
	}

	err = r.channel.Publish("", PurchaseQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish purchase event: %w", err)
	}

	r.logger.WithField("purchase_id", record.ID).Debug("Purchase event published")
	return nil
}

// Close closes the channel and the connection.
func (r *RabbitMQ) Close() error {
	var firstErr error
	if r.closer != nil {
		if err := r.closer(); err != nil {
			firstErr = fmt.Errorf("failed to close channel: %w", err)
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close connection: %w", err)
		}
	}
	return firstErr
}
