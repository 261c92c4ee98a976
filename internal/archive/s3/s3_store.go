// Package s3 implements optional archival of generated markdown to an
// S3 bucket.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"mdocr/internal/config"
	"mdocr/internal/port"
)

type store struct {
	presigner     *s3.PresignClient
	uploader      *manager.Uploader
	bucket        string
	presignExpiry int64
}

// NewStore creates an S3-backed ArchiveStore.
func NewStore(cfg *config.ArchiveConfig) (port.ArchiveStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &store{
		presigner:     s3.NewPresignClient(client),
		uploader:      manager.NewUploader(client),
		bucket:        cfg.Bucket,
		presignExpiry: cfg.PresignExpiry,
	}, nil
}

func (s *store) Enabled() bool { return true }

// Archive uploads the markdown and returns a presigned retrieval URL.
func (s *store) Archive(ctx context.Context, input port.ArchiveInput) (string, error) {
	contentType := input.ContentType
	if contentType == "" {
		contentType = "text/markdown; charset=utf-8"
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(input.Key),
		Body:        bytes.NewReader(input.Body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload: %w", err)
	}

	presigned, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(input.Key),
	}, func(po *s3.PresignOptions) {
		po.Expires = time.Duration(s.presignExpiry) * time.Second
	})
	if err != nil {
		return "", fmt.Errorf("s3 presign: %w", err)
	}

	return presigned.URL, nil
}
