// Package deletion runs best-effort asynchronous removal of store assets.
//
// Batches are accepted on a bounded channel and processed by a small worker
// pool. The queue never blocks its callers and never retries: a failed
// deletion is reported through the batch's completion callback and logged,
// and the assets stay in the store for a later sweep to rediscover.
package deletion

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mentora-io/assetgc/internal/logging"
	"github.com/mentora-io/assetgc/internal/mediastore"
)

// ErrQueueClosed is returned for batches still buffered when Stop runs.
var ErrQueueClosed = errors.New("deletion queue is closed")

// ErrQueueFull is returned by SubmitAndWait when the queue has no capacity.
var ErrQueueFull = errors.New("deletion queue is full")

// Batch is one asset removal request: a group of public IDs sharing a
// resource kind, since the store's deletion API is kind-specific. Done, when
// set, is called exactly once with the outcome; it runs on the worker
// goroutine and must not block.
type Batch struct {
	PublicIDs []string
	Kind      mediastore.Kind
	Done      func(err error)
}

// MetricsRecorder receives queue observations. Implementations must be
// safe for concurrent use.
type MetricsRecorder interface {
	RecordSubmit(accepted bool)
	RecordDelete(duration time.Duration, success bool)
	SetQueueDepth(depth int)
}

// Config configures the deletion queue.
type Config struct {
	// QueueDepth is the batch channel capacity. Default: 64.
	QueueDepth int

	// Workers is the number of deletion goroutines. Default: 2.
	Workers int
}

// DefaultConfig returns a default queue configuration.
func DefaultConfig() Config {
	return Config{
		QueueDepth: 64,
		Workers:    2,
	}
}

// Queue is a bounded, non-blocking deletion queue over a media store.
type Queue struct {
	store   mediastore.Store
	log     *logging.Logger
	metrics MetricsRecorder
	config  Config

	batches chan Batch

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewQueue creates a deletion queue. metrics may be nil.
func NewQueue(store mediastore.Store, log *logging.Logger, metrics MetricsRecorder, config Config) *Queue {
	if config.QueueDepth <= 0 {
		config.QueueDepth = 64
	}
	if config.Workers <= 0 {
		config.Workers = 2
	}
	return &Queue{
		store:   store,
		log:     log.WithComponent("deletion"),
		metrics: metrics,
		config:  config,
		batches: make(chan Batch, config.QueueDepth),
	}
}

// Start launches the worker pool.
func (q *Queue) Start() {
	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.stopCh = make(chan struct{})
	q.doneCh = make(chan struct{})
	q.mu.Unlock()

	go q.run()
}

// Stop shuts the queue down and waits for in-flight batches to finish.
// Batches still buffered at shutdown are completed with ErrQueueClosed.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	close(q.stopCh)
	q.mu.Unlock()

	<-q.doneCh

	q.mu.Lock()
	q.running = false
	q.mu.Unlock()
}

// Submit enqueues a batch without blocking. Returns false when the queue is
// full or stopped; the batch is dropped with a warning, never queued late.
// An empty batch is accepted and completed immediately.
func (q *Queue) Submit(batch Batch) bool {
	if len(batch.PublicIDs) == 0 {
		q.complete(batch, nil)
		return true
	}

	q.mu.Lock()
	running := q.running
	q.mu.Unlock()
	if !running {
		q.recordSubmit(false)
		q.log.Warnf("dropping deletion batch: queue not running", map[string]any{
			"assets": len(batch.PublicIDs),
			"kind":   string(batch.Kind),
		})
		return false
	}

	select {
	case q.batches <- batch:
		q.recordSubmit(true)
		q.recordDepth()
		return true
	default:
		q.recordSubmit(false)
		q.log.Warnf("dropping deletion batch: queue full", map[string]any{
			"assets": len(batch.PublicIDs),
			"kind":   string(batch.Kind),
			"depth":  q.config.QueueDepth,
		})
		return false
	}
}

// SubmitAndWait enqueues a batch and blocks until it completes or ctx is
// cancelled. Used by operator-driven purges where the outcome matters.
func (q *Queue) SubmitAndWait(ctx context.Context, publicIDs []string, kind mediastore.Kind) error {
	done := make(chan error, 1)
	ok := q.Submit(Batch{
		PublicIDs: publicIDs,
		Kind:      kind,
		Done:      func(err error) { done <- err },
	})
	if !ok {
		return ErrQueueFull
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run fans batches out to the worker pool and drains leftovers on shutdown.
func (q *Queue) run() {
	defer close(q.doneCh)

	var wg sync.WaitGroup
	for i := 0; i < q.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.worker()
		}()
	}
	wg.Wait()

	// Workers have exited; fail whatever is still buffered.
	for {
		select {
		case batch := <-q.batches:
			q.complete(batch, ErrQueueClosed)
		default:
			return
		}
	}
}

func (q *Queue) worker() {
	ctx := context.Background()
	for {
		select {
		case <-q.stopCh:
			return
		case batch := <-q.batches:
			q.recordDepth()
			q.process(ctx, batch)
		}
	}
}

func (q *Queue) process(ctx context.Context, batch Batch) {
	start := time.Now()
	err := q.store.DestroyBatch(ctx, batch.PublicIDs, batch.Kind)
	if errors.Is(err, mediastore.ErrNotFound) {
		// Already gone; deletion is idempotent.
		err = nil
	}

	if q.metrics != nil {
		q.metrics.RecordDelete(time.Since(start), err == nil)
	}
	if err != nil {
		q.log.Errorf("deletion batch failed", map[string]any{
			"assets": len(batch.PublicIDs),
			"kind":   string(batch.Kind),
			"error":  err.Error(),
		})
	} else {
		q.log.Debugf("deletion batch completed", map[string]any{
			"assets": len(batch.PublicIDs),
			"kind":   string(batch.Kind),
		})
	}

	q.complete(batch, err)
}

func (q *Queue) complete(batch Batch, err error) {
	if batch.Done != nil {
		batch.Done(err)
	}
}

func (q *Queue) recordSubmit(accepted bool) {
	if q.metrics != nil {
		q.metrics.RecordSubmit(accepted)
	}
}

func (q *Queue) recordDepth() {
	if q.metrics != nil {
		q.metrics.SetQueueDepth(len(q.batches))
	}
}
