// Package poll drives the dashboard auto-refresh. The timer is never torn
// down per navigation; each tick consults the view coordinator for sessions
// currently on the dashboard and enqueues refreshes only for those, so ticks
// while the user is elsewhere (or logged out) issue no backend calls.
package poll

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/metrics"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/domain"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/ports"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/infrastructure/queue"
)

const defaultInterval = 30 * time.Second

// DashboardLister reports sessions whose active section is the dashboard.
type DashboardLister interface {
	DashboardSessions() []string
}

// Enqueuer accepts refresh jobs.
type Enqueuer interface {
	Enqueue(job queue.RefreshJob)
}

// Poller ticks on a fixed interval and enqueues a dashboard stats refresh for
// every eligible session.
type Poller struct {
	lister   DashboardLister
	enqueuer Enqueuer
	interval time.Duration
	log      zerolog.Logger
}

// New creates a Poller. If interval <= 0, defaultInterval is used.
func New(lister DashboardLister, enqueuer Enqueuer, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{lister: lister, enqueuer: enqueuer, interval: interval, log: log}
}

// Start runs the polling loop until ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go p.loop(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

func (p *Poller) tick() {
	sids := p.lister.DashboardSessions()
	if len(sids) == 0 {
		metrics.PollTicksTotal.WithLabelValues("idle").Inc()
		return
	}
	for _, sid := range sids {
		p.enqueuer.Enqueue(queue.RefreshJob{
			SID:     sid,
			Input:   ports.RefreshInput{Section: domain.SectionDashboard},
			Trigger: "poll",
		})
	}
	metrics.PollTicksTotal.WithLabelValues("refreshed").Inc()
	p.log.Debug().Int("sessions", len(sids)).Msg("dashboard poll tick")
}
