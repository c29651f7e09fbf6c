package storage

import (
	"alcyxob/gym-admin/internal/config"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Storage keeps payment screenshots and content thumbnails in one bucket
// of an S3-compatible service.
type s3Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	logger    zerolog.Logger
}

// NewS3Storage builds a client for cfg. A custom endpoint (MinIO, Spaces)
// is addressed path-style; without one the regular AWS resolution applies.
func NewS3Storage(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) (FileStorage, error) {
	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	endpoint := endpointURL(cfg)
	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	logger = logger.With().Str("component", "s3").Str("bucket", cfg.BucketName).Logger()
	logger.Info().Str("endpoint", endpoint).Msg("object storage ready")

	return &s3Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.BucketName,
		logger:    logger,
	}, nil
}

// endpointURL adds a scheme to a bare host:port endpoint, honouring use_ssl.
func endpointURL(cfg config.S3Config) string {
	ep := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if ep == "" || strings.Contains(ep, "://") {
		return ep
	}
	if cfg.UseSSL {
		return "https://" + ep
	}
	return "http://" + ep
}

func (s *s3Storage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
		// The uploader has to send the same Content-Type header.
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expiry(expires)))
	if err != nil {
		s.logger.Error().Err(err).Str("key", objectKey).Msg("presign upload failed")
		return "", fmt.Errorf("presign upload %q: %w", objectKey, err)
	}
	return req.URL, nil
}

func (s *s3Storage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expiry(expires)))
	if err != nil {
		s.logger.Error().Err(err).Str("key", objectKey).Msg("presign download failed")
		return "", fmt.Errorf("presign download %q: %w", objectKey, err)
	}
	return req.URL, nil
}

func (s *s3Storage) DeleteObject(ctx context.Context, objectKey string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}); err != nil {
		return fmt.Errorf("delete object %q: %w", objectKey, err)
	}
	s.logger.Debug().Str("key", objectKey).Msg("object deleted")
	return nil
}

func expiry(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultPresignedURLExpiry
	}
	return d
}
