// Package storage provides blob storage for note attachments: opaque refs in,
// bytes out, plus signed single-use upload URLs.
package storage

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// BlobInfo describes a stored blob.
type BlobInfo struct {
	Ref     string
	Size    int64
	ModTime time.Time
}

// BlobStore is the contract over a blob storage backend. Refs are opaque
// tokens; callers never see paths.
type BlobStore interface {
	// Put stores the content under ref and returns the byte count.
	Put(ctx context.Context, ref, contentType string, r io.Reader) (int64, error)
	// Open returns the blob's content and content type.
	Open(ctx context.Context, ref string) (io.ReadCloser, string, error)
	// Delete removes the blob. Missing refs are a CodeNotFound error.
	Delete(ctx context.Context, ref string) error
	// URL returns a fetch URL for the blob. Callers re-resolve per render;
	// nothing is cached.
	URL(ctx context.Context, ref string) (string, error)
	// List enumerates all stored blobs. Used by the reconciliation sweep.
	List(ctx context.Context) ([]BlobInfo, error)
}

// NewRef allocates a fresh blob reference.
func NewRef() string { return uuid.NewString() }
