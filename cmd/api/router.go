package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/formapro-console/internal/infra/http/middleware"
)

func newRouter(app *application) http.Handler {
	r := chi.NewRouter()
	if app.cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(middleware.Metrics)

	r.Get("/health", app.health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.With(app.limiter.Handler).Post("/login", app.authn.LoginHandler)
		r.With(app.limiter.Handler).Post("/logout", app.authn.LogoutHandler)
	})

	r.Route("/rendez-vous", func(r chi.Router) {
		r.Get("/", app.rendezVous.ListHandler)
		r.Get("/jour", app.rendezVous.JourHandler)
		r.Get("/semaine", app.rendezVous.SemaineHandler)
		r.Get("/mois", app.rendezVous.MoisHandler)
		r.Get("/{id}", app.rendezVous.GetHandler)
		r.With(app.limiter.Handler, app.auth.Optional).Post("/", app.rendezVous.CreateHandler)

		r.Group(func(r chi.Router) {
			r.Use(app.auth.Handler)
			r.Patch("/{id}", app.rendezVous.UpdateHandler)
			r.Delete("/{id}", app.rendezVous.DeleteHandler)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(app.auth.Handler)
		r.Get("/rendez-vous", app.admin.ListHandler)
		r.Post("/rendez-vous/statut", app.admin.BulkStatusHandler)
	})

	return r
}
