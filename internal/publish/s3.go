package publish

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"git.home.luguber.info/inful/previewbuilder/internal/errors"
	"git.home.luguber.info/inful/previewbuilder/internal/logfields"
)

// S3Publisher uploads artifacts to an S3 bucket with per-object content types.
type S3Publisher struct {
	client *s3.Client
	bucket string
}

// S3Options configures the publisher beyond the bucket name.
type S3Options struct {
	// Region is the bucket's deployment region.
	Region string
	// Endpoint overrides the S3 endpoint; used with local stacks and the
	// in-memory fake in tests. Empty means the real service.
	Endpoint string
}

// NewS3Publisher builds a publisher from the ambient AWS credential chain.
func NewS3Publisher(ctx context.Context, bucket string, opts S3Options) (*S3Publisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, errors.WrapPublish(err, "failed to load object storage configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// Custom endpoints rarely support virtual-hosted bucket addressing.
			o.UsePathStyle = true
		}
	})
	return &S3Publisher{client: client, bucket: bucket}, nil
}

// NewS3PublisherFromClient wires an existing client; used by tests.
func NewS3PublisherFromClient(client *s3.Client, bucket string) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket}
}

// Publish uploads each artifact under `<componentID>/<name>`.
func (p *S3Publisher) Publish(ctx context.Context, componentID string, artifacts []Artifact) ([]string, error) {
	keys := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		key := componentID + "/" + a.Name
		_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(p.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(a.Data),
			ContentType: aws.String(a.MediaType),
		})
		if err != nil {
			return nil, errors.WrapPublish(err, "failed to upload artifact").
				WithContext("key", key).
				WithContext("bucket", p.bucket)
		}
		slog.Debug("Published artifact", logfields.Bucket(p.bucket), logfields.Key(key))
		keys = append(keys, key)
	}
	return keys, nil
}
