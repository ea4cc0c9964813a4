package trace

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Compile-time check that S3Source implements Source.
var _ Source = (*S3Source)(nil)

// S3Source fetches a trace object from AWS S3.
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Source creates a source reading s3://bucket/key.
// The bucket must already exist.
func NewS3Source(ctx context.Context, bucket, key string, opts ...S3Option) (*S3Source, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	source := &S3Source{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
	}

	for _, opt := range opts {
		if err := opt(source); err != nil {
			return nil, err
		}
	}

	return source, nil
}

// S3Option configures an S3Source.
type S3Option func(*S3Source) error

// WithRegion sets the AWS region.
func WithRegion(region string) S3Option {
	return func(s *S3Source) error {
		cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
		if err != nil {
			return fmt.Errorf("loading AWS config with region: %w", err)
		}
		s.client = s3.NewFromConfig(cfg)
		return nil
	}
}

// WithEndpoint sets a custom endpoint (for S3-compatible services like MinIO).
func WithEndpoint(endpoint string) S3Option {
	return func(s *S3Source) error {
		cfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			return fmt.Errorf("loading AWS config for endpoint: %w", err)
		}
		s.client = s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
		return nil
	}
}

// Open starts reading the object.
func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	// Check for cancellation before starting.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	}

	result, err := s.client.GetObject(ctx, input)
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading trace object: %w", err)
	}
	return result.Body, nil
}

// Ref returns the s3:// URL of the object.
func (s *S3Source) Ref() string { return "s3://" + s.bucket + "/" + s.key }

// Close releases resources.
func (s *S3Source) Close() error {
	// The S3 client doesn't need explicit closing.
	return nil
}
