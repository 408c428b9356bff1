// Package mediastore defines the Store interface for the externally hosted
// media blob store.
//
// Application documents reference media blobs by opaque public ID; the store
// itself is S3-compatible and is the only component that ever touches blob
// bytes. The lifecycle subsystem consumes exactly two capabilities: a
// cursor-paginated full listing per (resource kind x access mode), and
// kind-specific destroy calls.
//
// # Usage
//
//	store, err := s3.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	page, err := store.List(ctx, mediastore.KindImage, mediastore.AccessPublic, "", 500)
//	if err != nil {
//	    return err
//	}
//	for _, asset := range page.Assets {
//	    // asset.PublicID, asset.Folder, asset.Bytes, ...
//	}
//	// page.NextCursor == "" means the listing is exhausted.
package mediastore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Common errors returned by Store implementations.
var (
	// ErrNotFound is returned when the requested asset does not exist.
	ErrNotFound = errors.New("asset not found")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("bucket not found")

	// ErrAccessDenied is returned when the credentials lack permission for the operation.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidCursor is returned when a listing cursor is malformed or expired.
	ErrInvalidCursor = errors.New("invalid listing cursor")
)

// StoreError wraps an error with the operation and asset context.
type StoreError struct {
	Op  string // Operation that failed (e.g., "List", "Destroy")
	ID  string // Public ID, if the operation targets a single asset
	Err error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("mediastore: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("mediastore: %s %q: %v", e.Op, e.ID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Kind is the coarse resource classification the store requires for
// kind-specific operations (listing, destroy).
type Kind string

const (
	// KindImage covers photos, illustrations and generated thumbnails.
	KindImage Kind = "image"
	// KindVideo covers recordings and video introductions.
	KindVideo Kind = "video"
	// KindRaw covers documents and any non-media binary.
	KindRaw Kind = "raw"
)

// Kinds lists every resource kind in listing order.
var Kinds = []Kind{KindImage, KindVideo, KindRaw}

// ParseKind converts a stored kind annotation to a Kind.
// Unknown or empty annotations report ok=false.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "image":
		return KindImage, true
	case "video":
		return KindVideo, true
	case "raw":
		return KindRaw, true
	default:
		return "", false
	}
}

// AccessMode is the store-side visibility of an asset.
type AccessMode string

const (
	// AccessPublic assets are served directly by CDN URL.
	AccessPublic AccessMode = "public"
	// AccessPrivate assets require a signed delivery URL.
	AccessPrivate AccessMode = "private"
)

// AccessModes lists every access mode in listing order.
var AccessModes = []AccessMode{AccessPublic, AccessPrivate}

// Asset describes one stored blob as reported by the listing API.
type Asset struct {
	// PublicID is the opaque identifier documents reference, including the
	// folder path (e.g. "avatars/u123/profile").
	PublicID string

	// Kind is the resource kind the asset is stored under.
	Kind Kind

	// AccessMode is the visibility the asset is stored under.
	AccessMode AccessMode

	// Folder is the directory portion of the public ID ("" for root assets).
	Folder string

	// Bytes is the stored size.
	Bytes int64

	// Format is the file format suffix (e.g. "jpg", "mp4", "pdf").
	Format string

	// CreatedAt is the store-side creation time.
	CreatedAt time.Time
}

// Page is one page of a store listing.
type Page struct {
	Assets []Asset

	// NextCursor resumes the listing; empty means exhaustion.
	NextCursor string
}

// Store is the interface the lifecycle subsystem consumes.
//
// Thread Safety: Implementations must be safe for concurrent use.
type Store interface {
	// List returns one page of the full store listing for a
	// (kind, access mode) combination.
	//
	// cursor is the NextCursor of the previous page, or "" for the first
	// page. pageSize bounds the number of assets returned; implementations
	// may return fewer.
	List(ctx context.Context, kind Kind, access AccessMode, cursor string, pageSize int) (Page, error)

	// Destroy removes a single asset. Destroy is idempotent: destroying an
	// unknown public ID succeeds silently, which makes retries safe.
	Destroy(ctx context.Context, publicID string, kind Kind) error

	// DestroyBatch removes a batch of assets of one kind. Partial failures
	// are reported as a single error; callers treat the batch as
	// best-effort either way.
	DestroyBatch(ctx context.Context, publicIDs []string, kind Kind) error

	// Close releases resources associated with the store.
	Close() error
}
