package trace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound is returned when a trace does not exist at its location.
var ErrNotFound = errors.New("trace: not found")

// Source fetches raw trace bytes from some location.
type Source interface {
	// Open returns the trace contents. The caller must close the reader.
	Open(ctx context.Context) (io.ReadCloser, error)

	// Ref returns the location the source reads from. It is used for
	// logging and to pick a decompressor by file extension.
	Ref() string

	// Close releases resources held by the source.
	Close() error
}

// Resolve builds a Source for ref. Supported forms are local paths,
// gs://bucket/object, and s3://bucket/key.
func Resolve(ctx context.Context, ref string) (Source, error) {
	switch {
	case strings.HasPrefix(ref, "gs://"):
		bucket, object, err := splitObjectRef(ref, "gs://")
		if err != nil {
			return nil, err
		}
		return NewGCSSource(ctx, bucket, object)
	case strings.HasPrefix(ref, "s3://"):
		bucket, key, err := splitObjectRef(ref, "s3://")
		if err != nil {
			return nil, err
		}
		return NewS3Source(ctx, bucket, key)
	default:
		return NewFileSource(ref), nil
	}
}

// splitObjectRef splits scheme://bucket/key into its bucket and key parts.
func splitObjectRef(ref, scheme string) (bucket, key string, err error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(ref, scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("trace: invalid object ref %q: want %sbucket/key", ref, scheme)
	}
	return bucket, key, nil
}

// Compile-time check that FileSource implements Source.
var _ Source = (*FileSource)(nil)

// FileSource reads a trace from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource creates a source for a local file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Open opens the file.
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	// Check for cancellation before starting.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	return f, nil
}

// Ref returns the file path.
func (s *FileSource) Ref() string { return s.path }

// Close releases resources.
func (s *FileSource) Close() error { return nil }
