package state

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrNotFound indicates that a state document does not exist yet.
// Callers treat this as an empty document, not a failure.
var ErrNotFound = errors.New("state: document not found")

// Store persists named JSON state documents.
type Store interface {
	// Read returns the raw bytes of a document, or ErrNotFound.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write replaces the contents of a document.
	Write(ctx context.Context, name string, data []byte) error
}

// FileStore keeps state documents as plain files under a directory.
type FileStore struct {
	Dir string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state document %s: %w", name, err)
	}
	return data, nil
}

func (s *FileStore) Write(_ context.Context, name string, data []byte) error {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	path := filepath.Join(s.Dir, name)
	// Write to a temp file first so a crash never leaves a truncated document.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state document %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace state document %s: %w", name, err)
	}
	return nil
}

// BucketStore keeps state documents as objects in an S3-compatible bucket.
type BucketStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketStore creates a bucket-backed store. Documents are stored under
// prefix within the bucket.
func NewBucketStore(client storage.Client, bucket, prefix string) *BucketStore {
	return &BucketStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *BucketStore) objectName(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *BucketStore) Read(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectName(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get state object %s: %w", name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		// Minio reports missing keys lazily, on first read.
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read state object %s: %w", name, err)
	}
	return data, nil
}

func (s *BucketStore) Write(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.objectName(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to put state object %s: %w", name, err)
	}
	return nil
}
