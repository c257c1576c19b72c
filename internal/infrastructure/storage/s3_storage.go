// Package storage provides object storage implementations for voucher
// attachments.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	appreturns "github.com/retailops/backoffice/internal/application/returns"
	infraconfig "github.com/retailops/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure S3VoucherStorage implements VoucherStorage
var _ appreturns.VoucherStorage = (*S3VoucherStorage)(nil)

// S3VoucherStorage stores voucher attachments in an S3-compatible bucket
// (AWS S3, MinIO, etc.) and serves them through a public base URL.
type S3VoucherStorage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

// S3VoucherStorageOption is a functional option for configuring S3VoucherStorage
type S3VoucherStorageOption func(*S3VoucherStorage)

// WithLogger sets a custom logger for S3VoucherStorage
func WithLogger(logger *zap.Logger) S3VoucherStorageOption {
	return func(s *S3VoucherStorage) {
		s.logger = logger
	}
}

// NewS3VoucherStorage creates a new S3VoucherStorage from configuration.
// It supports any S3-compatible storage backend.
func NewS3VoucherStorage(cfg *infraconfig.StorageConfig, opts ...S3VoucherStorageOption) (*S3VoucherStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	storage := &S3VoucherStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup.
func (s *S3VoucherStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores a voucher object and returns its public URL
func (s *S3VoucherStorage) Upload(ctx context.Context, name string, content io.Reader, size int64, contentType string) (string, error) {
	if name == "" {
		return "", errors.New("object name is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          content,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload voucher: %w", err)
	}

	return s.objectURL(name), nil
}

// Delete removes a voucher object
func (s *S3VoucherStorage) Delete(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("object name is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete voucher: %w", err)
	}
	return nil
}

func (s *S3VoucherStorage) objectURL(name string) string {
	escaped := url.PathEscape(name)
	// PathEscape also escapes the path separators we want to keep.
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, escaped)
}
