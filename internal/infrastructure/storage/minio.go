package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-digest/pkg/config"
)

var contentTypes = map[string]string{
	".mp3": "audio/mpeg",
	".mp4": "video/mp4",
	".wav": "audio/wav",
	".m4a": "audio/mp4",
}

// objectClient is the part of *minio.Client the store uses
type objectClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinIOStore mirrors staged uploads into a MinIO bucket while they are processed.
// The local copy is what transcribers read.
type MinIOStore struct {
	local  *DiskStore
	client objectClient
	bucket string
	logger *zap.Logger
}

var _ FileStore = (*MinIOStore)(nil)

// NewMinIOStore creates a new MinIO-backed store and ensures the bucket exists
func NewMinIOStore(ctx context.Context, cfg *config.StorageConfig, local *DiskStore, logger *zap.Logger) (*MinIOStore, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return newMinIOStore(ctx, minioClient, cfg.BucketName, local, logger)
}

func newMinIOStore(ctx context.Context, client objectClient, bucket string, local *DiskStore, logger *zap.Logger) (*MinIOStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := &MinIOStore{
		local:  local,
		client: client,
		bucket: bucket,
		logger: logger,
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return store, nil
}

func (m *MinIOStore) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Save stages the file locally, then uploads the staged copy to the bucket
func (m *MinIOStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	path, err := m.local.Save(ctx, name, r)
	if err != nil {
		return "", err
	}

	contentType := contentTypes[strings.ToLower(filepath.Ext(name))]
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := m.client.FPutObject(ctx, m.bucket, objectName(name), path, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		m.local.Remove(ctx, name)
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	m.logger.Debug("📦 Upload mirrored to MinIO",
		zap.String("bucket", m.bucket),
		zap.String("object", objectName(name)),
	)
	return path, nil
}

// Remove deletes both the local copy and the object.
// Both removals are attempted; their failures are joined.
func (m *MinIOStore) Remove(ctx context.Context, name string) error {
	localErr := m.local.Remove(ctx, name)

	var objectErr error
	if err := m.client.RemoveObject(ctx, m.bucket, objectName(name), minio.RemoveObjectOptions{}); err != nil {
		objectErr = fmt.Errorf("failed to remove object: %w", err)
	}
	return errors.Join(localErr, objectErr)
}

func objectName(name string) string {
	return "uploads/" + filepath.Base(name)
}
