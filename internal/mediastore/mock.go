package mediastore

import (
	"context"
	"sort"
	"strconv"
	"sync"
)

// MockStore is an in-memory implementation of the Store interface for testing.
type MockStore struct {
	mu     sync.RWMutex
	assets map[mockKey]Asset

	// ListErr, when set, is returned by every List call. Used to exercise
	// the sweep's fail-fast path.
	ListErr error

	// DestroyErr, when set, is returned by every Destroy/DestroyBatch call.
	DestroyErr error

	// DestroyHook, when set, runs at the start of every Destroy and
	// DestroyBatch call, before the store lock is taken. Lets tests stall
	// a deletion.
	DestroyHook func(publicID string)

	destroyed []string
}

type mockKey struct {
	kind   Kind
	access AccessMode
	id     string
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		assets: make(map[mockKey]Asset),
	}
}

// Seed adds an asset to the store.
func (s *MockStore) Seed(a Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[mockKey{a.Kind, a.AccessMode, a.PublicID}] = a
}

// Destroyed returns the public IDs destroyed so far, in call order.
func (s *MockStore) Destroyed() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.destroyed))
	copy(out, s.destroyed)
	return out
}

// Has reports whether an asset is still present under any kind and access mode.
func (s *MockStore) Has(publicID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k := range s.assets {
		if k.id == publicID {
			return true
		}
	}
	return false
}

func (s *MockStore) List(ctx context.Context, kind Kind, access AccessMode, cursor string, pageSize int) (Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ListErr != nil {
		return Page{}, &StoreError{Op: "List", Err: s.ListErr}
	}

	var all []Asset
	for k, a := range s.assets {
		if k.kind == kind && k.access == access {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].PublicID < all[j].PublicID
	})

	start := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 || n > len(all) {
			return Page{}, &StoreError{Op: "List", Err: ErrInvalidCursor}
		}
		start = n
	}

	if pageSize <= 0 {
		pageSize = len(all)
	}

	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	page := Page{Assets: all[start:end]}
	if end < len(all) {
		page.NextCursor = strconv.Itoa(end)
	}
	return page, nil
}

func (s *MockStore) Destroy(ctx context.Context, publicID string, kind Kind) error {
	if s.DestroyHook != nil {
		s.DestroyHook(publicID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DestroyErr != nil {
		return &StoreError{Op: "Destroy", ID: publicID, Err: s.DestroyErr}
	}

	for _, access := range AccessModes {
		delete(s.assets, mockKey{kind, access, publicID})
	}
	s.destroyed = append(s.destroyed, publicID)
	return nil
}

func (s *MockStore) DestroyBatch(ctx context.Context, publicIDs []string, kind Kind) error {
	if s.DestroyHook != nil && len(publicIDs) > 0 {
		s.DestroyHook(publicIDs[0])
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DestroyErr != nil {
		return &StoreError{Op: "DestroyBatch", Err: s.DestroyErr}
	}

	for _, id := range publicIDs {
		for _, access := range AccessModes {
			delete(s.assets, mockKey{kind, access, id})
		}
		s.destroyed = append(s.destroyed, id)
	}
	return nil
}

func (s *MockStore) Close() error {
	return nil
}

// Ensure MockStore implements Store.
var _ Store = (*MockStore)(nil)
