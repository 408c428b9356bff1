package mediastore

import (
	"context"
	"time"
)

// MediaStoreMetricsRecorder is the interface for recording media store
// operation metrics. This keeps the mediastore package decoupled from the
// metrics package.
type MediaStoreMetricsRecorder interface {
	RecordList(durationSeconds float64, success bool, assets int)
	RecordDestroy(durationSeconds float64, success bool, assets int)
}

// InstrumentedStore wraps a Store and records metrics for each operation.
type InstrumentedStore struct {
	store   Store
	metrics MediaStoreMetricsRecorder
}

// NewInstrumentedStore creates an instrumented wrapper around a Store.
// If metrics is nil, operations pass through unrecorded.
func NewInstrumentedStore(store Store, metrics MediaStoreMetricsRecorder) *InstrumentedStore {
	return &InstrumentedStore{
		store:   store,
		metrics: metrics,
	}
}

// List returns one page of the store listing.
func (s *InstrumentedStore) List(ctx context.Context, kind Kind, access AccessMode, cursor string, pageSize int) (Page, error) {
	start := time.Now()
	page, err := s.store.List(ctx, kind, access, cursor, pageSize)
	if s.metrics != nil {
		s.metrics.RecordList(time.Since(start).Seconds(), err == nil, len(page.Assets))
	}
	return page, err
}

// Destroy removes a single asset.
func (s *InstrumentedStore) Destroy(ctx context.Context, publicID string, kind Kind) error {
	start := time.Now()
	err := s.store.Destroy(ctx, publicID, kind)
	if s.metrics != nil {
		s.metrics.RecordDestroy(time.Since(start).Seconds(), err == nil, 1)
	}
	return err
}

// DestroyBatch removes a batch of assets of one kind.
func (s *InstrumentedStore) DestroyBatch(ctx context.Context, publicIDs []string, kind Kind) error {
	start := time.Now()
	err := s.store.DestroyBatch(ctx, publicIDs, kind)
	if s.metrics != nil {
		s.metrics.RecordDestroy(time.Since(start).Seconds(), err == nil, len(publicIDs))
	}
	return err
}

// Close releases resources associated with the store.
func (s *InstrumentedStore) Close() error {
	return s.store.Close()
}

// Ensure InstrumentedStore implements Store.
var _ Store = (*InstrumentedStore)(nil)
