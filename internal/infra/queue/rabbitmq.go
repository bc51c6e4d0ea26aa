package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.campaigns"
	DLXName      = "ex.dlx" // Dead Letter Exchange

	TrackingQueue = "q.tracking"
	TrackingDLQ   = "q.tracking.dlq"

	RoutingKeyTransition = "k.transition"
	RoutingKeyTracking   = "k.tracking"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel failed: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		return nil, err
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

func setupTopology(ch *amqp.Channel) error {
	err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil)
	if err != nil {
		return err
	}

	_, err = ch.QueueDeclare(TrackingDLQ, true, false, false, false, nil)
	if err != nil {
		return err
	}

	err = ch.QueueBind(TrackingDLQ, RoutingKeyTracking, DLXName, false, nil)
	if err != nil {
		return err
	}

	err = ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil)
	if err != nil {
		return err
	}

	// Nacked tracking events land on the DLQ instead of blocking the queue
	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": RoutingKeyTracking,
	}

	_, err = ch.QueueDeclare(TrackingQueue, true, false, false, false, args)
	if err != nil {
		return err
	}

	return ch.QueueBind(TrackingQueue, RoutingKeyTracking, ExchangeName, false, nil)
}
