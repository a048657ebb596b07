package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/formapro-console/internal/config"
	"github.com/xavierca1/formapro-console/internal/infra/queue"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := setupTracing(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Tracing: %v", err)
	}

	app, err := newApplication(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Démarrage impossible: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("🔥 Console FormaPro en écoute sur le port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		app.limiter.Cleanup(gctx)
		return nil
	})

	g.Go(func() error {
		app.auth.Cleanup(gctx)
		return nil
	})

	if app.consumer != nil {
		g.Go(func() error {
			return app.consumer.Start(gctx, queue.QueueName)
		})
	}

	if app.reminder != nil {
		g.Go(func() error {
			app.reminder.Start(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Println("⚠️ Arrêt en cours...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("❌ Arrêt du serveur HTTP: %v", err)
		}
		return shutdownTracing(shutdownCtx)
	})

	err = g.Wait()
	app.close()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("👋 Arrêt terminé")
}
