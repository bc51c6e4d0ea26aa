package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// TransitionPayload announces a campaign status change to downstream
// consumers (dashboards, audit, CRM sync).
type TransitionPayload struct {
	CampaignID string    `json:"campaign_id"`
	Name       string    `json:"name"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Leads      int       `json:"leads"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TrackingPayload is one engagement event reported by external tracking.
type TrackingPayload struct {
	CampaignID string `json:"campaign_id"`
	Event      string `json:"event"` // open, click, bounce, unsubscribe
	Count      int    `json:"count"`
}

type QueueProducerInterface interface {
	PublishTransition(ctx context.Context, payload TransitionPayload) error
	PublishTracking(ctx context.Context, payload TrackingPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishTransition(ctx context.Context, payload TransitionPayload) error {
	return p.publish(ctx, RoutingKeyTransition, payload)
}

func (p *RabbitMQProducer) PublishTracking(ctx context.Context, payload TrackingPayload) error {
	return p.publish(ctx, RoutingKeyTracking, payload)
}

func (p *RabbitMQProducer) publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("payload marshal failed: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq publish failed: %w", err)
	}

	return nil
}
