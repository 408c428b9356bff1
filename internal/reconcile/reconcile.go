// Package reconcile computes the asset fallout of a single document update
// and hands it to the deletion queue.
//
// Reconciliation is strictly best-effort: it runs after the document write
// has already succeeded, so nothing here may fail the caller's request. Any
// asset it misses is picked up by the offline sweep.
package reconcile

import (
	"context"
	"time"

	"github.com/mentora-io/assetgc/internal/deletion"
	"github.com/mentora-io/assetgc/internal/extract"
	"github.com/mentora-io/assetgc/internal/logging"
)

// Submitter accepts deletion batches without blocking.
type Submitter interface {
	Submit(batch deletion.Batch) bool
}

// MetricsRecorder receives reconciliation observations.
type MetricsRecorder interface {
	RecordReconcile(duration time.Duration, removed, dropped int)
}

// Reconciler turns before/after reference sets into deletion batches.
type Reconciler struct {
	queue   Submitter
	log     *logging.Logger
	metrics MetricsRecorder
}

// New creates a Reconciler. metrics may be nil.
func New(queue Submitter, log *logging.Logger, metrics MetricsRecorder) *Reconciler {
	return &Reconciler{
		queue:   queue,
		log:     log.WithComponent("reconcile"),
		metrics: metrics,
	}
}

// Reconcile submits deletions for every asset referenced by initial but not
// by final, plus any explicit removals the caller vouches for. Explicit IDs
// not present in initial are ignored: the caller may only remove assets the
// old document actually referenced.
//
// Removals are grouped into one batch per resource kind, since the store's
// deletion API is kind-specific. Returns the number of asset IDs accepted by
// the queue. Never returns an error; a full queue drops the batch with a
// warning and the sweep catches up later.
func (r *Reconciler) Reconcile(ctx context.Context, initial, final *extract.RefSet, explicitRemovals []string) int {
	start := time.Now()

	if initial == nil {
		initial = extract.NewRefSet()
	}
	if final == nil {
		final = extract.NewRefSet()
	}

	removed := initial.Diff(final)
	for _, id := range explicitRemovals {
		ref, ok := initial.Get(id)
		if !ok {
			r.log.Warnf("ignoring explicit removal: not referenced by the previous document", map[string]any{"id": id})
			continue
		}
		if final.Contains(id) {
			// Still referenced after the update; the explicit removal is stale.
			continue
		}
		removed.Add(ref)
	}

	accepted := 0
	dropped := 0
	for kind, ids := range removed.ByKind() {
		if r.queue.Submit(deletion.Batch{PublicIDs: ids, Kind: kind}) {
			accepted += len(ids)
		} else {
			dropped += len(ids)
		}
	}

	if r.metrics != nil {
		r.metrics.RecordReconcile(time.Since(start), accepted, dropped)
	}
	if accepted > 0 || dropped > 0 {
		r.log.Debugf("reconciled update", map[string]any{
			"queued":  accepted,
			"dropped": dropped,
		})
	}
	return accepted
}
