package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/formapro-console/internal/entity"
)

const (
	EventCreated = "rendezvous.created"
	EventUpdated = "rendezvous.updated"
	EventDeleted = "rendezvous.deleted"
)

type RendezVousEvent struct {
	Type       string            `json:"type"`
	RendezVous entity.RendezVous `json:"rendezVous"`
	Actor      string            `json:"actor,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

type RabbitMQProducer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishEvent(ctx context.Context, event RendezVousEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("sérialisation de l'événement impossible: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			MessageId:    event.RendezVous.ID,
			Timestamp:    event.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publication RabbitMQ impossible: %w", err)
	}
	return nil
}

// NopProducer is used when no broker is configured.
type NopProducer struct{}

func (NopProducer) PublishEvent(_ context.Context, event RendezVousEvent) error {
	log.Printf("[QUEUE] RabbitMQ désactivé, événement %s ignoré (%s)", event.Type, event.RendezVous.ID)
	return nil
}
