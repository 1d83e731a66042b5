package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrDisabled is returned by uploads when no bucket is configured.
var ErrDisabled = errors.New("object storage is not configured")

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type R2Options struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

// R2 uploads to a Cloudflare R2 bucket through its S3 API.
type R2 struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewR2(ctx context.Context, opts R2Options) (*R2, error) {
	if opts.AccountID == "" || opts.Bucket == "" {
		return nil, ErrDisabled
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load r2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", opts.AccountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2{client: client, bucket: opts.Bucket, publicURL: PublicBase(opts.PublicURL, opts.Bucket)}, nil
}

// PublicBase is the URL prefix objects are served from. Without a custom
// domain the bucket's r2.dev address is used.
func PublicBase(publicURL, bucket string) string {
	if publicURL != "" {
		return strings.TrimRight(publicURL, "/")
	}
	return fmt.Sprintf("https://%s.r2.dev", bucket)
}

func (r *R2) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if r == nil {
		return "", ErrDisabled
	}
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return r.publicURL + "/" + key, nil
}
