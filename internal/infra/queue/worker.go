package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/state/async"
)

type ConfirmationSender interface {
	SendConfirmation(rv entity.RendezVous) error
}

// Worker turns appointment events into client notifications.
type Worker struct {
	Channel *amqp.Channel
	Mailer  ConfirmationSender
	op      *async.Operation[string]
}

func NewWorker(ch *amqp.Channel, mailer ConfirmationSender, notifier async.Notifier) *Worker {
	if notifier == nil {
		notifier = async.LogNotifier{Tag: "WORKER"}
	}
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
		op:      async.NewOperation[string](notifier),
	}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("enregistrement du consommateur impossible: %w", err)
	}

	log.Printf(" [*] Worker en attente sur la file '%s'", queueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("[WORKER] Arrêt")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal RabbitMQ fermé")
			}
			if err := w.Handle(ctx, d.Body); err != nil {
				log.Printf("❌ [WORKER] %v", err)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}

// Handle processes one message body. An error means the message goes to the DLQ.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var event RendezVousEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("JSON invalide: %w", err)
	}
	log.Printf("📥 [WORKER] %s reçu pour %s", event.Type, event.RendezVous.ID)

	switch event.Type {
	case EventCreated:
		rv := event.RendezVous
		res := w.op.Execute(ctx, func(context.Context) (string, error) {
			return rv.Client.Email, w.Mailer.SendConfirmation(rv)
		}, async.Options[string]{
			SuccessMessage: fmt.Sprintf("Confirmation envoyée à %s", rv.Client.Email),
			ErrorMessage:   fmt.Sprintf("Échec de l'envoi de la confirmation pour %s", rv.ID),
		})
		return res.Err()
	default:
		// nothing to notify yet for updates and deletions
		return nil
	}
}
