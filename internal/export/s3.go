package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jonathan/career-roadmap/internal/config"
)

// Sink receives exported artifacts.
type Sink interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// putObjectAPI is the subset of the S3 client used by S3Sink.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads artifacts to an S3-compatible bucket.
type S3Sink struct {
	client   putObjectAPI
	bucket   string
	prefix   string
	attempts int
}

// NewS3Sink builds an S3 client from cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies. A
// custom endpoint selects an S3-compatible store such as R2 or MinIO.
func NewS3Sink(ctx context.Context, cfg config.S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Sink(client, cfg.Bucket, cfg.Prefix), nil
}

func newS3Sink(client putObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix, attempts: 3}
}

// Put uploads body under prefix/key, retrying transient failures.
func (s *S3Sink) Put(ctx context.Context, key string, body []byte, contentType string) error {
	fullKey := path.Join(s.prefix, key)
	_, err := retry(s.attempts, func() (*s3.PutObjectOutput, error) {
		return s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(fullKey),
			Body:        bytes.NewReader(body),
			ContentType: aws.String(contentType),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", fullKey, err)
	}
	return nil
}

// retry calls fn up to attempts times with a linear backoff.
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var result T
	var err error
	for i := 0; i < attempts; i++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if i < attempts-1 {
			time.Sleep(time.Duration(i+1) * retryBackoff)
		}
	}
	return result, err
}

var retryBackoff = 500 * time.Millisecond
