package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/xavierca1/formapro-console/internal/config"
	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/infra/database"
	"github.com/xavierca1/formapro-console/internal/infra/http/handlers"
	"github.com/xavierca1/formapro-console/internal/infra/http/middleware"
	"github.com/xavierca1/formapro-console/internal/infra/integration/cms"
	"github.com/xavierca1/formapro-console/internal/infra/mail"
	"github.com/xavierca1/formapro-console/internal/infra/queue"
	"github.com/xavierca1/formapro-console/internal/infra/store"
	"github.com/xavierca1/formapro-console/internal/infra/worker"
	"github.com/xavierca1/formapro-console/internal/usecase"
)

// application holds every wired dependency of the API process.
type application struct {
	cfg   config.Config
	store *store.Memory

	db     *sql.DB
	broker *queue.RabbitMQ

	auth    *middleware.Authenticator
	limiter *middleware.RateLimiter

	rendezVous *handlers.RendezVousHandler
	admin      *handlers.AdminHandler
	authn      *handlers.AuthHandler
	health     *handlers.HealthHandler

	consumer *queue.Worker          // nil without broker or SMTP
	reminder *worker.ReminderWorker // nil unless enabled
}

func newApplication(ctx context.Context, cfg config.Config) (*application, error) {
	app := &application{cfg: cfg}

	// 1. Store
	app.store = store.NewMemory(store.DemoSeed(time.Now()), store.WithLatency(cfg.StoreLatency))

	// 2. Mirror (optionnel)
	var mirror entity.RendezVousMirror
	if cfg.DatabaseURL != "" {
		db, err := database.NewDBConnection(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		app.db = db

		m := database.NewRendezVousMirror(db, cfg.DatabaseDriver, app.store.IsSeed)
		if err := m.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		if _, err := m.Restore(ctx, app.store); err != nil {
			log.Printf("⚠️ [MIRROR] Restauration impossible: %v", err)
		}
		mirror = m
	} else {
		log.Println("[MIRROR] DATABASE_URL absent, rendez-vous conservés en mémoire uniquement")
	}

	// 3. Broker + mail
	var publisher usecase.EventPublisher = queue.NopProducer{}
	var mailer *mail.EmailSender
	if cfg.MailConfigured() {
		mailer = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	}
	if cfg.RabbitMQURL != "" {
		rmq, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			app.close()
			return nil, err
		}
		app.broker = rmq
		publisher = queue.NewProducer(rmq.Ch)
		if mailer != nil {
			app.consumer = queue.NewWorker(rmq.Ch, mailer, middleware.MetricsNotifier{Source: "CONFIRMATION"})
		}
	}

	// 4. CMS
	cmsClient := cms.NewClient(cfg.CMSURL, cfg.CMSAPIToken, cfg.CMSTimeout, cfg.CMSCacheTTL)

	// 5. UseCases
	listUC := usecase.NewListRendezVousUseCase(app.store, nil)
	updateUC := usecase.NewUpdateRendezVousUseCase(app.store, mirror, publisher, nil)
	createUC := usecase.NewCreateRendezVousUseCase(app.store, mirror, cmsClient, publisher, nil)

	// 6. Handlers
	app.auth = middleware.NewAuthenticator(cfg.CMSJWTSecret)
	app.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	app.rendezVous = handlers.NewRendezVousHandler(
		listUC,
		usecase.NewGetRendezVousUseCase(app.store),
		usecase.NewPeriodRendezVousUseCase(app.store, nil),
		createUC,
		updateUC,
		usecase.NewDeleteRendezVousUseCase(app.store, mirror, publisher),
	)
	app.admin = handlers.NewAdminHandler(listUC, updateUC)
	app.authn = handlers.NewAuthHandler(cmsClient, app.auth)

	var broker handlers.BrokerStatus
	if app.broker != nil {
		broker = app.broker
	}
	app.health = handlers.NewHealthHandler(app.db, broker, cfg.CMSURL, app.store.Len)

	// 7. Workers
	if cfg.ReminderEnabled && mailer != nil {
		app.reminder = worker.NewReminderWorker(listUC, updateUC, mailer, cfg.ReminderInterval,
			middleware.MetricsNotifier{Source: "RAPPEL"})
	}

	return app, nil
}

func (app *application) close() {
	if app.broker != nil {
		app.broker.Close()
	}
	if app.db != nil {
		app.db.Close()
	}
}
