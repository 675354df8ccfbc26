package deps

import (
	"context"
	"time"

	"github.com/sobirin-dev/hendshake/internal/entrystore"
	"github.com/sobirin-dev/hendshake/internal/httpserver/mw"
	"github.com/sobirin-dev/hendshake/internal/logger"
)

// Pinger reports whether the snapshot backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	Store          *entrystore.Store  // the only mutation surface for entries
	Backend        string             // snapshot backend name, for /infra
	Snapshot       Pinger             // nil when nothing is persisted
	AllowedHosts   []string           // Host headers allowed to reach mutations
	AllowedCIDRS   []string           // IPs allowed to reach mutations and /infra
	TrustProxy     bool               // true if running behind a trusted reverse proxy
	RateLimit      mw.RateLimitConfig // applied to mutations; Burst 0 disables
	MetricsEnabled bool
}
