package utils

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "github.com/arrivaldo/code-challenge-backend/config"
)

// R2Storage is the blob-storage collaborator: stores uploaded media in a
// Cloudflare R2 bucket and deletes objects by key.
type R2Storage struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewR2Storage(ctx context.Context, cfg *appconfig.Config) (*R2Storage, error) {
	if cfg.R2Bucket == "" || cfg.R2AccountID == "" || cfg.R2PublicURL == "" {
		return nil, fmt.Errorf("missing required R2 configuration")
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)

	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:           endpoint,
			SigningRegion: "auto",
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"), // R2 only accepts "auto"
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2AccessKeyID,
			cfg.R2SecretAccessKey,
			"",
		)),
		awsconfig.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %v", err)
	}

	return &R2Storage{
		client:     s3.NewFromConfig(awsCfg),
		bucket:     cfg.R2Bucket,
		publicBase: strings.TrimRight(cfg.R2PublicURL, "/"),
	}, nil
}

// Upload stores the file under a fresh key and returns the public URL
// plus the key used for later deletion.
func (r *R2Storage) Upload(ctx context.Context, data []byte, filename, contentType string) (string, string, error) {
	key := uuid.NewString() + filepath.Ext(filename)

	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to R2: %v", err)
	}

	fileURL := fmt.Sprintf("%s/%s", r.publicBase, url.PathEscape(key))
	return fileURL, key, nil
}

// Delete removes an object by key. Records written before keys were
// stored carry the full public URL instead; accept both.
func (r *R2Storage) Delete(ctx context.Context, key string) error {
	if u, err := url.Parse(key); err == nil && u.Scheme != "" {
		key = filepath.Base(u.Path)
	}

	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete R2 object: %v", err)
	}
	return nil
}
