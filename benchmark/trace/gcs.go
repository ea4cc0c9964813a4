package trace

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// Compile-time check that GCSSource implements Source.
var _ Source = (*GCSSource)(nil)

// GCSSource fetches a trace object from Google Cloud Storage.
type GCSSource struct {
	client *storage.Client
	object *storage.ObjectHandle
	ref    string
}

// NewGCSSource creates a source reading gs://bucket/object.
// The bucket must already exist.
func NewGCSSource(ctx context.Context, bucket, object string) (*GCSSource, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	return &GCSSource{
		client: client,
		object: client.Bucket(bucket).Object(object),
		ref:    "gs://" + bucket + "/" + object,
	}, nil
}

// Open starts reading the object.
func (s *GCSSource) Open(ctx context.Context) (io.ReadCloser, error) {
	// Check for cancellation before starting.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	reader, err := s.object.NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	return reader, nil
}

// Ref returns the gs:// URL of the object.
func (s *GCSSource) Ref() string { return s.ref }

// Close releases the client.
func (s *GCSSource) Close() error {
	return s.client.Close()
}
