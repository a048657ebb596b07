package worker

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/state/async"
	"github.com/xavierca1/formapro-console/internal/usecase"
)

type RendezVousLister interface {
	Execute(ctx context.Context, filters entity.RendezVousFilters) (*usecase.ListRendezVousOutput, error)
}

type RendezVousUpdater interface {
	Execute(ctx context.Context, input usecase.UpdateRendezVousInput) (*entity.RendezVous, error)
}

type ReminderSender interface {
	SendReminder(rv entity.RendezVous) error
}

// ReminderWorker mails the clients of tomorrow's confirmed appointments once,
// then flags the appointment with rappelEnvoye.
type ReminderWorker struct {
	lister       RendezVousLister
	updater      RendezVousUpdater
	mailer       ReminderSender
	tickInterval time.Duration
	clock        usecase.Clock
	op           *async.Operation[string]
}

func NewReminderWorker(lister RendezVousLister, updater RendezVousUpdater, mailer ReminderSender, interval time.Duration, notifier async.Notifier) *ReminderWorker {
	if notifier == nil {
		notifier = async.LogNotifier{Tag: "RAPPEL"}
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReminderWorker{
		lister:       lister,
		updater:      updater,
		mailer:       mailer,
		tickInterval: interval,
		clock:        time.Now,
		op:           async.NewOperation[string](notifier),
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	log.Printf("🕒 Reminder Worker démarré (toutes les %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Reminder Worker arrêté")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce sends the pending reminders and returns how many were sent.
func (w *ReminderWorker) RunOnce(ctx context.Context) int {
	ctx = usecase.WithActor(ctx, "system:rappel")
	tomorrow := w.clock().AddDate(0, 0, 1).Format(entity.DateLayout)

	out, err := w.lister.Execute(ctx, entity.RendezVousFilters{
		Statut:    string(entity.StatutConfirme),
		DateDebut: tomorrow,
		DateFin:   tomorrow,
	})
	if err != nil {
		log.Printf("❌ Erreur lors de la recherche des rappels: %v", err)
		return 0
	}

	sent := 0
	flagged := true
	for _, rv := range out.RendezVous {
		if rv.RappelEnvoye {
			continue
		}
		rv := rv
		res := w.op.Execute(ctx, func(ctx context.Context) (string, error) {
			if err := w.mailer.SendReminder(rv); err != nil {
				return "", err
			}
			_, err := w.updater.Execute(ctx, usecase.UpdateRendezVousInput{
				ID:    rv.ID,
				Patch: entity.RendezVousPatch{RappelEnvoye: &flagged},
			})
			return rv.ID, err
		}, async.Options[string]{
			SuccessMessage: "Rappel envoyé à " + rv.Client.Email,
			ErrorMessage:   "Échec du rappel pour " + rv.ID,
		})
		if res.Ok() {
			sent++
		}
	}

	if sent > 0 {
		log.Printf("✅ %d rappel(s) envoyé(s) pour le %s", sent, tomorrow)
	}
	return sent
}
