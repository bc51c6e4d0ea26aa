package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// TrackingRecorder applies externally-reported engagement events to a
// campaign's analytics counters.
type TrackingRecorder interface {
	Execute(ctx context.Context, campaignID, event string, count int) error
}

type Worker struct {
	Channel  *amqp.Channel
	Recorder TrackingRecorder
}

func NewWorker(ch *amqp.Channel, recorder TrackingRecorder) *Worker {
	return &Worker{
		Channel:  ch,
		Recorder: recorder,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("[WORKER] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload TrackingPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] invalid JSON, dropping message: %s", err)
				// Poison message. Reject without requeue so the queue keeps moving.
				d.Nack(false, false)
				continue
			}

			count := payload.Count
			if count <= 0 {
				count = 1
			}

			if err := w.Recorder.Execute(context.Background(), payload.CampaignID, payload.Event, count); err != nil {
				log.Printf("[WORKER] tracking event rejected: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("[WORKER] recorded %s x%d for campaign %s", payload.Event, count, payload.CampaignID)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker waiting on queue '%s'", queueName)
	<-forever
}
