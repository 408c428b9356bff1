package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()

	path := filepath.Join(t.TempDir(), "registry.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	r := New(db)
	require.NoError(t, r.Migrate())
	return r
}

func candidate(id string) OrphanCandidate {
	return OrphanCandidate{
		ID:             id,
		Kind:           "image",
		Classification: Classify("programs/p1"),
		Folder:         "programs/p1",
		Bytes:          1024,
		Format:         "png",
		StoreCreatedAt: time.Now().Add(-48 * time.Hour).UTC(),
		DiscoveredAt:   time.Now().UTC(),
		Status:         StatusPendingReview,
	}
}

func TestUpsertInsertsNewCandidates(t *testing.T) {
	r := testRegistry(t)
	ctx := context.Background()

	n, err := r.Upsert(ctx, []OrphanCandidate{candidate("a"), candidate("b")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	pending, err := r.ListPending(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestUpsertIsInsertOnly(t *testing.T) {
	r := testRegistry(t)
	ctx := context.Background()

	first := candidate("a")
	first.DiscoveredAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := r.Upsert(ctx, []OrphanCandidate{first})
	require.NoError(t, err)
	require.NoError(t, r.MarkDeletionQueued(ctx, "a"))

	// Rediscovery by a later sweep must not reset anything.
	again := candidate("a")
	again.DiscoveredAt = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	n, err := r.Upsert(ctx, []OrphanCandidate{again, candidate("b")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, StatusDeletionQueued, got.Status)
	assert.Equal(t, first.DiscoveredAt, got.DiscoveredAt.UTC())
}

func TestUpsertEmptyBatch(t *testing.T) {
	r := testRegistry(t)

	n, err := r.Upsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMarkDeletionQueued(t *testing.T) {
	r := testRegistry(t)
	ctx := context.Background()

	_, err := r.Upsert(ctx, []OrphanCandidate{candidate("a")})
	require.NoError(t, err)

	require.NoError(t, r.MarkDeletionQueued(ctx, "a"))

	got, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, StatusDeletionQueued, got.Status)

	// Already released; a second release is rejected, not silently repeated.
	err = r.MarkDeletionQueued(ctx, "a")
	assert.ErrorIs(t, err, ErrTerminal)

	err = r.MarkDeletionQueued(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkErrorTransitions(t *testing.T) {
	r := testRegistry(t)
	ctx := context.Background()

	_, err := r.Upsert(ctx, []OrphanCandidate{candidate("a"), candidate("b")})
	require.NoError(t, err)

	// pending_review -> error.
	require.NoError(t, r.MarkError(ctx, "a"))

	// deletion_queued -> error.
	require.NoError(t, r.MarkDeletionQueued(ctx, "b"))
	require.NoError(t, r.MarkError(ctx, "b"))

	// error is terminal.
	assert.ErrorIs(t, r.MarkError(ctx, "a"), ErrTerminal)
	assert.ErrorIs(t, r.MarkDeletionQueued(ctx, "a"), ErrTerminal)
}

func TestListPendingOrderAndLimit(t *testing.T) {
	r := testRegistry(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	var batch []OrphanCandidate
	for i := 0; i < 5; i++ {
		c := candidate(fmt.Sprintf("cand-%d", i))
		c.DiscoveredAt = base.Add(time.Duration(-i) * time.Hour)
		batch = append(batch, c)
	}
	_, err := r.Upsert(ctx, batch)
	require.NoError(t, err)

	require.NoError(t, r.MarkDeletionQueued(ctx, "cand-2"))

	pending, err := r.ListPending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	// Oldest discovery first; cand-2 is no longer pending.
	assert.Equal(t, "cand-4", pending[0].ID)
	assert.Equal(t, "cand-3", pending[1].ID)
}

func TestResolveRemovesCandidate(t *testing.T) {
	r := testRegistry(t)
	ctx := context.Background()

	_, err := r.Upsert(ctx, []OrphanCandidate{candidate("a")})
	require.NoError(t, err)

	require.NoError(t, r.Resolve(ctx, "a"))

	_, err = r.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	// Resolving an absent record is a no-op.
	require.NoError(t, r.Resolve(ctx, "a"))
}

func TestCountByStatus(t *testing.T) {
	r := testRegistry(t)
	ctx := context.Background()

	_, err := r.Upsert(ctx, []OrphanCandidate{candidate("a"), candidate("b"), candidate("c")})
	require.NoError(t, err)
	require.NoError(t, r.MarkDeletionQueued(ctx, "a"))
	require.NoError(t, r.MarkError(ctx, "b"))

	counts, err := r.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[StatusPendingReview])
	assert.Equal(t, int64(1), counts[StatusDeletionQueued])
	assert.Equal(t, int64(1), counts[StatusError])
}

func TestClassify(t *testing.T) {
	tests := []struct {
		folder string
		want   string
	}{
		{"generated/invoices", ClassB2BInvoice},
		{"generated/invoices/2026", ClassB2BInvoice},
		{"chat/attachments", ClassChatAttachment},
		{"avatars/u1", ClassProfilePicture},
		{"coaches/c1", ClassProfilePicture},
		{"programs/p1/slides", ClassProgramAsset},
		{"enrollments/e1", ClassProgramAsset},
		{"sessions/s1", ClassSessionRecording},
		{"branding/acme", ClassUnknown},
		{"programsx", ClassUnknown},
		{"", ClassUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.folder), "folder %q", tt.folder)
	}
}
