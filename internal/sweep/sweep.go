// Package sweep implements the offline orphan scan: it rebuilds the full
// live-reference set from the database, lists the entire media store, and
// records every unreferenced asset as an orphan candidate.
//
// The sweep never deletes anything. Candidates land in the registry as
// pending_review; deletion happens only after an external review releases
// them. An asset uploaded while the sweep runs may be listed before its
// document commits, which is why conservatism points this way: a false
// candidate costs a review, a deleted live asset costs a user their file.
package sweep

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mentora-io/assetgc/internal/catalog"
	"github.com/mentora-io/assetgc/internal/extract"
	"github.com/mentora-io/assetgc/internal/logging"
	"github.com/mentora-io/assetgc/internal/mediastore"
	"github.com/mentora-io/assetgc/internal/registry"
)

// Config configures a sweep run.
type Config struct {
	// BatchSize is the document batch size for the mark phase. Default: 500.
	BatchSize int

	// PageSize is the store listing page size for the scan phase.
	// Default: 500.
	PageSize int

	// SampleLimit bounds the dry-run report's candidate listing.
	// Default: 50.
	SampleLimit int

	// ExcludedFolders are folder prefixes whose assets are never flagged,
	// covering asset families generated outside the document graph.
	ExcludedFolders []string

	// DryRun computes the full report but persists nothing.
	DryRun bool
}

// DefaultConfig returns a default sweep configuration.
func DefaultConfig() Config {
	return Config{
		BatchSize:   500,
		PageSize:    500,
		SampleLimit: 50,
		ExcludedFolders: []string{
			"generated/invoices",
			"chat/attachments",
		},
	}
}

// MetricsRecorder receives sweep observations.
type MetricsRecorder interface {
	RecordPhase(phase string, duration time.Duration)
	RecordDocuments(schema string, count int)
	RecordAssets(kind string, count int)
	RecordRun(success bool, orphans int, orphanBytes int64)
}

// Phase label values reported to the metrics recorder.
const (
	phaseMark    = "mark"
	phaseScan    = "scan"
	phaseDiff    = "diff"
	phasePersist = "persist"
)

// Sweeper runs the four-phase orphan scan.
type Sweeper struct {
	db      *catalog.DB
	store   mediastore.Store
	reg     *registry.Registry
	config  Config
	log     *logging.Logger
	metrics MetricsRecorder
}

// New creates a Sweeper. metrics may be nil.
func New(db *catalog.DB, store mediastore.Store, reg *registry.Registry, config Config, log *logging.Logger, metrics MetricsRecorder) *Sweeper {
	if config.BatchSize <= 0 {
		config.BatchSize = 500
	}
	if config.PageSize <= 0 {
		config.PageSize = 500
	}
	if config.SampleLimit <= 0 {
		config.SampleLimit = 50
	}
	return &Sweeper{
		db:      db,
		store:   store,
		reg:     reg,
		config:  config,
		log:     log.WithComponent("sweep"),
		metrics: metrics,
	}
}

// Run executes one sweep: mark, scan, diff, persist. Any database or store
// listing error aborts the run before anything is persisted; a partial
// reference set would flag live assets as orphans.
func (s *Sweeper) Run(ctx context.Context) (Report, error) {
	runID := ulid.Make().String()
	log := s.log.WithRunID(runID)
	ctx = logging.WithRunIDCtx(ctx, runID)
	start := time.Now()

	report := Report{RunID: runID, DryRun: s.config.DryRun}

	log.Info("sweep starting")

	known, docs, err := s.mark(ctx, log)
	if err != nil {
		s.recordRun(false, report)
		return report, fmt.Errorf("mark phase: %w", err)
	}
	report.DocsScanned = docs
	report.RefsKnown = known.Len()

	assets, err := s.scan(ctx, log)
	if err != nil {
		s.recordRun(false, report)
		return report, fmt.Errorf("scan phase: %w", err)
	}
	report.AssetsListed = len(assets)

	candidates, excluded := s.diff(known, assets)
	report.Excluded = excluded
	report.Candidates = len(candidates)
	for _, c := range candidates {
		report.TotalBytes += c.Bytes
	}
	report.Samples = sampleCandidates(candidates, s.config.SampleLimit)

	if s.config.DryRun {
		log.Infof("dry run complete, nothing persisted", map[string]any{
			"candidates": report.Candidates,
			"assets":     report.AssetsListed,
			"excluded":   report.Excluded,
		})
	} else {
		inserted, err := s.persist(ctx, candidates)
		if err != nil {
			s.recordRun(false, report)
			return report, fmt.Errorf("persist phase: %w", err)
		}
		report.NewlyRecorded = inserted
	}

	report.Elapsed = time.Since(start)
	s.recordRun(true, report)

	log.Infof("sweep finished", map[string]any{
		"documents":  report.DocsScanned,
		"knownRefs":  report.RefsKnown,
		"assets":     report.AssetsListed,
		"candidates": report.Candidates,
		"new":        report.NewlyRecorded,
		"elapsed":    report.Elapsed.Round(time.Millisecond).String(),
	})
	return report, nil
}

// markDocs walks one schema in id-ordered batches and unions each document's
// references into the known set. Returns the number of documents read.
func markDocs[T any](
	ctx context.Context,
	batchSize int,
	fetch func(ctx context.Context, afterID string, limit int) ([]T, error),
	docID func(T) string,
	refs func(T) *extract.RefSet,
	known *extract.RefSet,
) (int, error) {
	total := 0
	afterID := ""
	for {
		batch, err := fetch(ctx, afterID, batchSize)
		if err != nil {
			return total, err
		}
		if len(batch) == 0 {
			return total, nil
		}
		for _, doc := range batch {
			known.Union(refs(doc))
		}
		total += len(batch)
		afterID = docID(batch[len(batch)-1])
		if len(batch) < batchSize {
			return total, nil
		}
	}
}

// mark rebuilds the complete live-reference set from every schema.
func (s *Sweeper) mark(ctx context.Context, log *logging.Logger) (*extract.RefSet, int, error) {
	phaseStart := time.Now()
	known := extract.NewRefSet()
	total := 0

	schemas := []struct {
		name string
		walk func(context.Context, *extract.RefSet) (int, error)
	}{
		{"users", func(ctx context.Context, set *extract.RefSet) (int, error) {
			return markDocs(ctx, s.config.BatchSize, s.db.UsersWithAssets,
				func(u catalog.User) string { return u.ID },
				func(u catalog.User) *extract.RefSet { return extract.UserRefs(&u) }, set)
		}},
		{"coaches", func(ctx context.Context, set *extract.RefSet) (int, error) {
			return markDocs(ctx, s.config.BatchSize, s.db.CoachesWithAssets,
				func(c catalog.Coach) string { return c.ID },
				func(c catalog.Coach) *extract.RefSet { return extract.CoachRefs(&c) }, set)
		}},
		{"programs", func(ctx context.Context, set *extract.RefSet) (int, error) {
			return markDocs(ctx, s.config.BatchSize, s.db.ProgramsWithAssets,
				func(p catalog.Program) string { return p.ID },
				func(p catalog.Program) *extract.RefSet { return extract.ProgramRefs(&p) }, set)
		}},
		{"sessions", func(ctx context.Context, set *extract.RefSet) (int, error) {
			return markDocs(ctx, s.config.BatchSize, s.db.SessionsWithAssets,
				func(sess catalog.Session) string { return sess.ID },
				func(sess catalog.Session) *extract.RefSet { return extract.SessionRefs(&sess) }, set)
		}},
		{"messages", func(ctx context.Context, set *extract.RefSet) (int, error) {
			return markDocs(ctx, s.config.BatchSize, s.db.MessagesWithAssets,
				func(m catalog.Message) string { return m.ID },
				func(m catalog.Message) *extract.RefSet { return extract.MessageRefs(&m) }, set)
		}},
		{"invoices", func(ctx context.Context, set *extract.RefSet) (int, error) {
			return markDocs(ctx, s.config.BatchSize, s.db.InvoicesWithAssets,
				func(inv catalog.Invoice) string { return inv.ID },
				func(inv catalog.Invoice) *extract.RefSet { return extract.InvoiceRefs(&inv) }, set)
		}},
		{"leads", func(ctx context.Context, set *extract.RefSet) (int, error) {
			return markDocs(ctx, s.config.BatchSize, s.db.LeadsWithAssets,
				func(l catalog.Lead) string { return l.ID },
				func(l catalog.Lead) *extract.RefSet { return extract.LeadRefs(&l) }, set)
		}},
		{"enrollments", func(ctx context.Context, set *extract.RefSet) (int, error) {
			return markDocs(ctx, s.config.BatchSize, s.db.EnrollmentsWithAssets,
				func(e catalog.Enrollment) string { return e.ID },
				func(e catalog.Enrollment) *extract.RefSet { return extract.EnrollmentRefs(&e) }, set)
		}},
	}

	for _, schema := range schemas {
		n, err := schema.walk(ctx, known)
		if err != nil {
			return nil, total, fmt.Errorf("walk %s: %w", schema.name, err)
		}
		total += n
		if s.metrics != nil {
			s.metrics.RecordDocuments(schema.name, n)
		}
		log.Debugf("marked documents", map[string]any{"schema": schema.name, "count": n})
	}

	if s.metrics != nil {
		s.metrics.RecordPhase(phaseMark, time.Since(phaseStart))
	}
	return known, total, nil
}

// scan lists the entire store across every kind and access mode.
func (s *Sweeper) scan(ctx context.Context, log *logging.Logger) ([]mediastore.Asset, error) {
	phaseStart := time.Now()
	var assets []mediastore.Asset

	for _, kind := range mediastore.Kinds {
		kindCount := 0
		for _, access := range mediastore.AccessModes {
			cursor := ""
			for {
				page, err := s.store.List(ctx, kind, access, cursor, s.config.PageSize)
				if err != nil {
					return nil, fmt.Errorf("list %s/%s assets: %w", access, kind, err)
				}
				assets = append(assets, page.Assets...)
				kindCount += len(page.Assets)
				if page.NextCursor == "" {
					break
				}
				cursor = page.NextCursor
			}
		}
		if s.metrics != nil {
			s.metrics.RecordAssets(string(kind), kindCount)
		}
		log.Debugf("scanned assets", map[string]any{"kind": string(kind), "count": kindCount})
	}

	if s.metrics != nil {
		s.metrics.RecordPhase(phaseScan, time.Since(phaseStart))
	}
	return assets, nil
}

// diff flags every listed asset that is neither referenced nor excluded.
func (s *Sweeper) diff(known *extract.RefSet, assets []mediastore.Asset) ([]registry.OrphanCandidate, int) {
	phaseStart := time.Now()
	now := time.Now().UTC()

	var candidates []registry.OrphanCandidate
	excluded := 0
	for _, asset := range assets {
		if known.Contains(asset.PublicID) {
			continue
		}
		if s.excludedFolder(asset.Folder) {
			excluded++
			continue
		}
		candidates = append(candidates, registry.OrphanCandidate{
			ID:             asset.PublicID,
			Kind:           string(asset.Kind),
			Classification: registry.Classify(asset.Folder),
			Folder:         asset.Folder,
			Bytes:          asset.Bytes,
			Format:         asset.Format,
			StoreCreatedAt: asset.CreatedAt,
			DiscoveredAt:   now,
			Status:         registry.StatusPendingReview,
		})
	}

	if s.metrics != nil {
		s.metrics.RecordPhase(phaseDiff, time.Since(phaseStart))
	}
	return candidates, excluded
}

// persist records the candidates, insert-only.
func (s *Sweeper) persist(ctx context.Context, candidates []registry.OrphanCandidate) (int64, error) {
	phaseStart := time.Now()
	inserted, err := s.reg.Upsert(ctx, candidates)
	if s.metrics != nil {
		s.metrics.RecordPhase(phasePersist, time.Since(phaseStart))
	}
	return inserted, err
}

// excludedFolder reports whether a folder falls under an excluded prefix.
// Matching is by whole path segments: "chat/attachments" covers
// "chat/attachments/2026" but not "chat/attachments-archive".
func (s *Sweeper) excludedFolder(folder string) bool {
	for _, prefix := range s.config.ExcludedFolders {
		if folder == prefix || strings.HasPrefix(folder, prefix+"/") {
			return true
		}
	}
	return false
}

func (s *Sweeper) recordRun(success bool, report Report) {
	if s.metrics != nil {
		s.metrics.RecordRun(success, report.Candidates, report.TotalBytes)
	}
}

func sampleCandidates(candidates []registry.OrphanCandidate, limit int) []registry.OrphanCandidate {
	if len(candidates) <= limit {
		return candidates
	}
	return candidates[:limit]
}
