package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/sobirin-dev/hendshake/internal/httpserver/deps"
)

// Registrar mounts a group of routes. Guards that depend on Deps are
// applied inside the registrar.
type Registrar func(r chi.Router, d deps.Deps)

var registry []Registrar

// Register queues reg for RegisterAll. Called from init.
func Register(reg Registrar) {
	registry = append(registry, reg)
}

// RegisterAll mounts every registered route in registration order.
// Called once from NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registry {
		reg(r, d)
	}
}
