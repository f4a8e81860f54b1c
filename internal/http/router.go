package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tallyhq/tally/internal/http/events"
	"github.com/tallyhq/tally/internal/http/report"
	"github.com/tallyhq/tally/internal/http/transaction"
)

func New(
	transactionsV1 *transaction.Handler,
	reportV1 *report.Handler,
	eventsV1 *events.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/report", func(r chi.Router) {
			reportV1.Routes(r)
		})

		r.Get("/events", eventsV1.Stream)
	})

	return router
}
