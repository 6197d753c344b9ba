package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tinyboard/account-registry/internal/api/metrics"
	"github.com/tinyboard/account-registry/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes activity touches to a fixed set of workers using
// consistent hashing on the username, guaranteeing per-account touch ordering.
type Dispatcher struct {
	workers []chan ports.ActivityTouch
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityTouch, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityTouch, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a touch to the worker responsible for its username. When the
// worker's channel is full the touch is dropped: last-seen tracking is best
// effort and must never block a request.
func (d *Dispatcher) Enqueue(touch ports.ActivityTouch) {
	i := d.shardIndex(touch.Username)
	select {
	case d.workers[i] <- touch:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		d.log.Warn().Str("username", touch.Username).Int("worker_id", i).Msg("activity queue full, touch dropped")
		metrics.ActivityErrorsTotal.WithLabelValues("queue_full").Inc()
	}
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityTouch) {
	for {
		select {
		case <-ctx.Done():
			return
		case touch, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.Process(ctx, touch); err != nil {
				d.log.Error().Err(err).
					Str("username", touch.Username).
					Int("worker_id", id).
					Msg("activity touch failed")
			}
		}
	}
}
