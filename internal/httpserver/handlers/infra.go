package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sobirin-dev/hendshake/internal/httpserver/deps"
)

type componentStatus struct {
	OK        bool   `json:"ok"`
	Entries   *int   `json:"entries,omitempty"`
	Backend   string `json:"backend,omitempty"`
	LastWrite string `json:"last_write,omitempty"`
	Impact    string `json:"impact,omitempty"`
	Error     string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra describes the store and the snapshot backend.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Store.Count()

		components := map[string]componentStatus{
			"store": {
				OK:      true,
				Entries: &count,
			},
			"snapshot": checkSnapshot(r, d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func checkSnapshot(r *http.Request, d deps.Deps) componentStatus {
	if d.Snapshot == nil || !d.Store.Persistent() {
		return componentStatus{
			OK:      true,
			Backend: d.Backend,
			Impact:  "entries-lost-on-restart",
		}
	}

	if err := pingSnapshot(r.Context(), d); err != nil {
		return componentStatus{
			OK:      false,
			Backend: d.Backend,
			Impact:  "changes-not-persisted",
			Error:   err.Error(),
		}
	}

	return componentStatus{OK: true, Backend: d.Backend, LastWrite: lastWrite(r.Context(), d.Snapshot)}
}

// writeClock is implemented by backends that record when the snapshot was written.
type writeClock interface {
	UpdatedAt(ctx context.Context) (time.Time, error)
}

func lastWrite(ctx context.Context, p deps.Pinger) string {
	wc, ok := p.(writeClock)
	if !ok {
		return ""
	}
	ts, err := wc.UpdatedAt(ctx)
	if err != nil {
		return ""
	}
	if ts.IsZero() {
		return "never"
	}
	return ts.UTC().Format(time.RFC3339)
}

// determineMode is "persistent" when snapshots are written, "ephemeral"
// without a backend and "degraded" when the backend does not answer.
func determineMode(components map[string]componentStatus) string {
	snap := components["snapshot"]
	switch {
	case !snap.OK:
		return "degraded"
	case snap.Impact != "":
		return "ephemeral"
	default:
		return "persistent"
	}
}
