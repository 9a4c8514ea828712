// Package storage implements the salesingest.ObjectStore contract against
// S3-compatible object storage (MinIO in the reference deployment).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/retailops/salesingest/pkg/salesingest"
)

// MinIO does not care about the region but the SDK requires one.
const defaultRegion = "us-east-1"

// Client is an ObjectStore backed by the AWS S3 API.
// Safe for concurrent use.
type Client struct {
	s3 *s3.Client
}

// NewClient builds an S3 client for the configured endpoint using static
// credentials and path-style addressing (required by MinIO).
func NewClient(ctx context.Context, config salesingest.StorageConfig) (*Client, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("%w: storage endpoint is required", salesingest.ErrInvalidConfig)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(defaultRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKey, config.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build storage client config: %w", err)
	}

	endpoint := endpointURL(config)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Client{s3: client}, nil
}

// BucketExists reports whether the bucket exists.
func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: checking bucket %q: %v", salesingest.ErrSourceUnavailable, bucket, err)
	}
	return true, nil
}

// GetObject fetches the full object content in one blocking read.
func (c *Client) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: object %q not found in bucket %q", salesingest.ErrSourceUnavailable, key, bucket)
		}
		return nil, fmt.Errorf("%w: fetching %q from bucket %q: %v", salesingest.ErrSourceUnavailable, key, bucket, err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q from bucket %q: %v", salesingest.ErrSourceUnavailable, key, bucket, err)
	}
	return content, nil
}

// endpointURL renders the endpoint with an explicit scheme. The config
// carries host:port; use_ssl selects the scheme, mirroring MinIO clients.
func endpointURL(config salesingest.StorageConfig) string {
	scheme := "http"
	if config.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + config.Endpoint
}

// isNotFound classifies S3 absence errors across typed and generic forms.
func isNotFound(err error) bool {
	var noKey *s3types.NoSuchKey
	var noBucket *s3types.NoSuchBucket
	var notFound *s3types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &noBucket) || errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return true
		}
	}
	return false
}

// Verify Client implements ObjectStore at compile time
var _ salesingest.ObjectStore = (*Client)(nil)
