package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/meetscribe/meetscribe/pkg/config"
)

// AudioArchive stores accepted uploads in a MinIO bucket and hands out
// playable URLs. The archive is optional; when disabled, uploads are
// served from local disk instead.
type AudioArchive struct {
	client    *minio.Client
	bucket    string
	publicURL string // external base URL when MinIO sits behind a reverse proxy
}

// NewAudioArchive creates the archive client and ensures the bucket exists
func NewAudioArchive(cfg *config.StorageConfig) (*AudioArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	archive := &AudioArchive{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := archive.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return archive, nil
}

func (a *AudioArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Store uploads an audio file from disk into the bucket
func (a *AudioArchive) Store(ctx context.Context, objectName, filePath, contentType string) error {
	_, err := a.client.FPutObject(ctx, a.bucket, objectName, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload audio: %w", err)
	}
	return nil
}

// PlayableURL returns a presigned GET URL for an archived object. When a
// public URL is configured the internal endpoint is swapped out so the
// link works from a browser behind the reverse proxy.
func (a *AudioArchive) PlayableURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := a.client.PresignedGetObject(ctx, a.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	urlStr := u.String()
	if a.publicURL != "" {
		internalBase := u.Scheme + "://" + u.Host
		urlStr = strings.Replace(urlStr, internalBase, strings.TrimRight(a.publicURL, "/"), 1)
	}
	return urlStr, nil
}

// Remove deletes an archived object
func (a *AudioArchive) Remove(ctx context.Context, objectName string) error {
	return a.client.RemoveObject(ctx, a.bucket, objectName, minio.RemoveObjectOptions{})
}
