package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sobirin-dev/hendshake/internal/httpserver/deps"
)

const pingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz reports ready once the snapshot backend answers. Without a backend
// the service is always ready.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pingSnapshot(r.Context(), d); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}

func pingSnapshot(parent context.Context, d deps.Deps) error {
	if d.Snapshot == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(parent, pingTimeout)
	defer cancel()
	return d.Snapshot.Ping(ctx)
}
