package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sobirin-dev/hendshake/internal/httpserver/deps"
	"github.com/sobirin-dev/hendshake/internal/httpserver/handlers"
	"github.com/sobirin-dev/hendshake/internal/httpserver/mw"
)

func init() { Register(registerEntries) }

func registerEntries(r chi.Router, d deps.Deps) {
	r.Route("/api/entries", func(r chi.Router) {
		r.Get("/", handlers.ListEntries(d))
		r.Get("/count", handlers.CountEntries(d))
		r.Get("/{id}", handlers.GetEntry(d))

		r.Group(func(r chi.Router) {
			r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
			r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
			r.Use(mw.RateLimit(d.RateLimit))

			r.Post("/", handlers.CreateEntry(d))
			r.Delete("/{id}", handlers.DeleteEntry(d))
		})
	})
}
