// Package registry persists orphan candidates found by the sweep and tracks
// their review state.
//
// The registry is idempotent by construction: candidates are keyed by public
// ID and inserted with set-on-insert-only semantics, so rediscovery by a
// later sweep never resets the discovery time or the review status of a
// record already in flight.
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Status is the review state of an orphan candidate.
type Status string

const (
	// StatusPendingReview marks a freshly discovered candidate awaiting
	// resolution.
	StatusPendingReview Status = "pending_review"
	// StatusDeletionQueued marks a candidate released for deletion.
	StatusDeletionQueued Status = "deletion_queued"
	// StatusError marks a candidate whose deletion attempt failed.
	StatusError Status = "error"
)

// Errors returned by status transitions.
var (
	// ErrNotFound is returned when no candidate exists for the ID.
	ErrNotFound = errors.New("orphan candidate not found")

	// ErrTerminal is returned when a transition would move a record out of
	// a terminal state (deletion_queued and error never return to
	// pending_review).
	ErrTerminal = errors.New("orphan candidate is in a terminal state")
)

// OrphanCandidate is one store-resident blob not referenced by any live
// document.
type OrphanCandidate struct {
	// ID is the asset's public ID; unique across the registry.
	ID string `gorm:"primaryKey;size:255"`

	Kind string `gorm:"size:16"`

	// Classification is a best-effort tag derived from the storage folder.
	// Informational only; never used for deletion decisions.
	Classification string `gorm:"size:32"`

	Folder string `gorm:"size:512"`
	Bytes  int64
	Format string `gorm:"size:16"`

	// StoreCreatedAt is the store-side creation time of the blob.
	StoreCreatedAt time.Time

	// DiscoveredAt is when the first sweep found this candidate.
	DiscoveredAt time.Time `gorm:"index"`

	Status Status `gorm:"size:32;index"`
}

// Registry is the persistence layer for orphan candidates.
type Registry struct {
	db *gorm.DB
}

// New creates a Registry on an open database handle.
func New(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// Migrate creates or updates the orphan candidate table and its indexes.
func (r *Registry) Migrate() error {
	return r.db.AutoMigrate(&OrphanCandidate{})
}

// Upsert records a batch of candidates, inserting only IDs not yet tracked.
// Returns the number of newly recorded candidates. Existing records are left
// untouched: their DiscoveredAt and Status survive rediscovery, and a
// concurrent insert of the same ID is a no-op rather than an error.
func (r *Registry) Upsert(ctx context.Context, candidates []OrphanCandidate) (int64, error) {
	if len(candidates) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		CreateInBatches(candidates, 100)
	if res.Error != nil {
		return 0, fmt.Errorf("upsert orphan candidates: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// MarkDeletionQueued moves a pending candidate to deletion_queued.
// Terminal records are never pulled back into the workflow.
func (r *Registry) MarkDeletionQueued(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&OrphanCandidate{}).
		Where("id = ? AND status = ?", id, StatusPendingReview).
		Update("status", StatusDeletionQueued)
	if res.Error != nil {
		return fmt.Errorf("mark deletion_queued %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.transitionFailure(ctx, id)
	}
	return nil
}

// MarkError records a failed deletion attempt. Allowed from pending_review
// and deletion_queued; error itself is terminal.
func (r *Registry) MarkError(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&OrphanCandidate{}).
		Where("id = ? AND status IN ?", id, []Status{StatusPendingReview, StatusDeletionQueued}).
		Update("status", StatusError)
	if res.Error != nil {
		return fmt.Errorf("mark error %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.transitionFailure(ctx, id)
	}
	return nil
}

// transitionFailure distinguishes a missing record from a terminal one.
func (r *Registry) transitionFailure(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&OrphanCandidate{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check orphan candidate %s: %w", id, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return fmt.Errorf("%w: %s", ErrTerminal, id)
}

// ListPending returns up to limit candidates awaiting review, oldest first.
func (r *Registry) ListPending(ctx context.Context, limit int) ([]OrphanCandidate, error) {
	var out []OrphanCandidate
	q := r.db.WithContext(ctx).
		Where("status = ?", StatusPendingReview).
		Order("discovered_at, id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list pending candidates: %w", err)
	}
	return out, nil
}

// Get returns one candidate by ID.
func (r *Registry) Get(ctx context.Context, id string) (OrphanCandidate, error) {
	var out OrphanCandidate
	err := r.db.WithContext(ctx).First(&out, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return OrphanCandidate{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return OrphanCandidate{}, fmt.Errorf("get orphan candidate %s: %w", id, err)
	}
	return out, nil
}

// Resolve removes a candidate whose store deletion has completed.
func (r *Registry) Resolve(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&OrphanCandidate{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("resolve orphan candidate %s: %w", id, res.Error)
	}
	return nil
}

// CountByStatus returns the registry backlog per review state.
func (r *Registry) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	type row struct {
		Status Status
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&OrphanCandidate{}).
		Select("status, count(*) as n").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count candidates by status: %w", err)
	}

	out := make(map[Status]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}
