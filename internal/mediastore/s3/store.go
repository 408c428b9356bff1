// Package s3 implements the mediastore.Store interface using the AWS SDK
// against S3-compatible storage.
package s3

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/mentora-io/assetgc/internal/mediastore"
)

// deleteBatchMax is the S3 DeleteObjects per-request limit.
const deleteBatchMax = 1000

// Config configures an S3-backed media store.
type Config struct {
	// Bucket is the name of the S3 bucket holding all media assets.
	Bucket string

	// Region is the AWS region (e.g., "us-east-1").
	// Required for AWS S3, optional for S3-compatible endpoints.
	Region string

	// Endpoint is the S3 endpoint URL (e.g., "http://localhost:9000" for MinIO).
	// If empty, uses the default AWS endpoint for the region.
	Endpoint string

	// AccessKeyID is the AWS access key ID.
	// If empty, uses the default credential chain.
	AccessKeyID string

	// SecretAccessKey is the AWS secret access key.
	// If empty, uses the default credential chain.
	SecretAccessKey string

	// UsePathStyle enables path-style addressing (required for MinIO and
	// some S3-compatible stores).
	UsePathStyle bool
}

// Store implements mediastore.Store using AWS S3.
type Store struct {
	client *s3.Client
	bucket string
	closed bool
	mu     sync.RWMutex
}

// New creates a new S3 media store with the given configuration.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket name is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{}

	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	} else {
		opts = append(opts, awsconfig.WithRegion("us-east-1"))
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: failed to load AWS config: %w", err)
	}

	s3Opts := []func(*s3.Options){
		func(o *s3.Options) {
			// Suppress "Response has no supported checksum" warnings.
			o.DisableLogOutputChecksumValidationSkipped = true
		},
	}

	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	if cfg.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)

	return &Store{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

func (s *Store) checkClosed() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return errors.New("s3: store is closed")
	}
	return nil
}

// List returns one page of the full listing for a (kind, access) combination.
// The cursor is the S3 continuation token of the previous page.
func (s *Store) List(ctx context.Context, kind mediastore.Kind, access mediastore.AccessMode, cursor string, pageSize int) (mediastore.Page, error) {
	if err := s.checkClosed(); err != nil {
		return mediastore.Page{}, err
	}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(listPrefix(kind, access)),
	}
	if pageSize > 0 {
		input.MaxKeys = aws.Int32(int32(pageSize))
	}
	if cursor != "" {
		input.ContinuationToken = aws.String(cursor)
	}

	output, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		return mediastore.Page{}, s.wrapError("List", "", err)
	}

	page := mediastore.Page{
		Assets: make([]mediastore.Asset, 0, len(output.Contents)),
	}

	for _, obj := range output.Contents {
		key := aws.ToString(obj.Key)
		publicID, objKind, objAccess, format, ok := parseKey(key)
		if !ok {
			// Keys outside the layout are not assets (e.g. lifecycle
			// markers written by other tooling); skip them.
			continue
		}

		asset := mediastore.Asset{
			PublicID:   publicID,
			Kind:       objKind,
			AccessMode: objAccess,
			Folder:     folderOf(publicID),
			Bytes:      aws.ToInt64(obj.Size),
			Format:     format,
		}
		if obj.LastModified != nil {
			asset.CreatedAt = *obj.LastModified
		}
		page.Assets = append(page.Assets, asset)
	}

	if aws.ToBool(output.IsTruncated) {
		page.NextCursor = aws.ToString(output.NextContinuationToken)
	}

	return page, nil
}

// Destroy removes a single asset. The format extension is not part of the
// public ID, so the key is resolved by prefix before deletion.
func (s *Store) Destroy(ctx context.Context, publicID string, kind mediastore.Kind) error {
	if err := s.checkClosed(); err != nil {
		return err
	}

	keys, err := s.resolveKeys(ctx, publicID, kind)
	if err != nil {
		return err
	}
	// Unknown public IDs succeed silently; deletion must be retry-safe.
	if len(keys) == 0 {
		return nil
	}

	for _, key := range keys {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			wrapped := s.wrapError("Destroy", publicID, err)
			if errors.Is(wrapped, mediastore.ErrNotFound) {
				continue
			}
			return wrapped
		}
	}

	return nil
}

// DestroyBatch removes a batch of assets of one kind using DeleteObjects.
func (s *Store) DestroyBatch(ctx context.Context, publicIDs []string, kind mediastore.Kind) error {
	if err := s.checkClosed(); err != nil {
		return err
	}

	var keys []string
	for _, id := range publicIDs {
		resolved, err := s.resolveKeys(ctx, id, kind)
		if err != nil {
			return err
		}
		keys = append(keys, resolved...)
	}
	if len(keys) == 0 {
		return nil
	}

	for start := 0; start < len(keys); start += deleteBatchMax {
		end := start + deleteBatchMax
		if end > len(keys) {
			end = len(keys)
		}

		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
		}

		output, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return s.wrapError("DestroyBatch", "", err)
		}
		if len(output.Errors) > 0 {
			first := output.Errors[0]
			return &mediastore.StoreError{
				Op: "DestroyBatch",
				ID: aws.ToString(first.Key),
				Err: fmt.Errorf("%d of %d deletions failed: %s: %s",
					len(output.Errors), len(objects),
					aws.ToString(first.Code), aws.ToString(first.Message)),
			}
		}
	}

	return nil
}

// resolveKeys finds the bucket keys for one public ID across access modes.
func (s *Store) resolveKeys(ctx context.Context, publicID string, kind mediastore.Kind) ([]string, error) {
	var keys []string
	for _, access := range mediastore.AccessModes {
		output, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket: aws.String(s.bucket),
			Prefix: aws.String(buildKeyPrefix(publicID, kind, access)),
		})
		if err != nil {
			return nil, s.wrapError("Destroy", publicID, err)
		}
		for _, obj := range output.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

// Close releases resources associated with the store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) wrapError(op, id string, err error) error {
	if err == nil {
		return nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusNotFound:
			return &mediastore.StoreError{Op: op, ID: id, Err: mediastore.ErrNotFound}
		case http.StatusForbidden:
			return &mediastore.StoreError{Op: op, ID: id, Err: mediastore.ErrAccessDenied}
		}
	}

	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return &mediastore.StoreError{Op: op, ID: id, Err: mediastore.ErrBucketNotFound}
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return &mediastore.StoreError{Op: op, ID: id, Err: mediastore.ErrNotFound}
	}

	return &mediastore.StoreError{Op: op, ID: id, Err: err}
}

// Ensure Store implements mediastore.Store.
var _ mediastore.Store = (*Store)(nil)
