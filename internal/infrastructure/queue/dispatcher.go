package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/api/metrics"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// RefreshJob is one section refresh to be executed for a session.
type RefreshJob struct {
	SID     string
	Input   ports.RefreshInput
	Trigger string // "poll" or "manual"
}

// Dispatcher routes refresh jobs to a fixed set of workers using consistent
// hashing on the session id, guaranteeing per-session refresh ordering.
type Dispatcher struct {
	workers []chan RefreshJob
	view    ports.ViewService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, view ports.ViewService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan RefreshJob, numWorkers),
		view:    view,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan RefreshJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its session. The call is
// non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job RefreshJob) {
	idx := d.shardIndex(job.SID)
	d.workers[idx] <- job
	metrics.RefreshesDispatchedTotal.WithLabelValues(string(job.Input.Section), job.Trigger).Inc()
	metrics.RefreshQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a session id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sid string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sid))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan RefreshJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.RefreshQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if _, err := d.view.RefreshSection(ctx, job.SID, job.Input); err != nil {
				d.log.Warn().Err(err).
					Str("sid", job.SID).
					Str("section", string(job.Input.Section)).
					Int("worker_id", id).
					Msg("refresh job failed")
			}
		}
	}
}
