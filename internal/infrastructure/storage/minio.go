package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/config"
)

// MinIOStore keeps assets as objects in a MinIO (S3 compatible) bucket.
// Object keys are the refs themselves.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

var _ AssetStore = (*MinIOStore)(nil)

// NewMinIOStore connects and creates the bucket when it does not exist
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("[STORAGE] bucket created")
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinIOStore) Store(ctx context.Context, file *File, category Category) (Ref, error) {
	if !file.Present() {
		return "", storageErr("no file supplied", nil)
	}
	if !category.Valid() {
		return "", storageErr(fmt.Sprintf("unknown category %q", category), nil)
	}

	ref := newRef(category, file.Name)

	src, err := file.Open()
	if err != nil {
		return "", storageErr("open upload", err)
	}
	defer src.Close()

	size := file.Size
	if size <= 0 {
		size = -1
	}

	_, err = s.client.PutObject(ctx, s.bucket, ref.String(), src, size, minio.PutObjectOptions{
		ContentType: ContentTypeFor(ref.Name()),
	})
	if err != nil {
		return "", storageErr("upload to minio", err)
	}

	return ref, nil
}

func (s *MinIOStore) Retrieve(ctx context.Context, ref Ref) (io.ReadCloser, Object, error) {
	// a ref that cannot exist in the store does not resolve
	if _, err := ParseRef(string(ref)); err != nil {
		return nil, Object{}, ErrAssetNotFound
	}

	obj, err := s.client.GetObject(ctx, s.bucket, ref.String(), minio.GetObjectOptions{})
	if err != nil {
		return nil, Object{}, storageErr("get object", err)
	}

	// GetObject is lazy; Stat surfaces a missing key
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, Object{}, ErrAssetNotFound
		}
		return nil, Object{}, storageErr("stat object", err)
	}

	return obj, Object{
		Ref:         ref,
		ContentType: ContentTypeFor(ref.Name()),
		Size:        info.Size,
		ModTime:     info.LastModified,
	}, nil
}

func (s *MinIOStore) Discard(ctx context.Context, ref Ref) error {
	if _, err := ParseRef(string(ref)); err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, ref.String(), minio.RemoveObjectOptions{}); err != nil {
		return storageErr("remove object", err)
	}
	return nil
}

// HealthCheck verifies the bucket is reachable
func (s *MinIOStore) HealthCheck(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.bucket); err != nil {
		return fmt.Errorf("minio unreachable: %w", err)
	}
	return nil
}

// New picks the asset backend configured by STORAGE_DRIVER
func New(ctx context.Context, cfg *config.Config) (AssetStore, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMinIO:
		return NewMinIOStore(ctx, cfg.MinIO)
	default:
		return NewLocalStore(cfg.Storage.LocalRoot)
	}
}
