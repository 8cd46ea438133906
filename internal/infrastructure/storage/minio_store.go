package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"proassignment/internal/config"
	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// objectAPI is the part of *minio.Client the store uses.
type objectAPI interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (*minio.Object, error)
	StatObject(ctx context.Context, bucket, object string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// MinIOStore keeps uploads as objects under the same keys the local store uses.
type MinIOStore struct {
	client objectAPI
	bucket string
	now    func() time.Time
}

var _ interfaces.IFileStore = (*MinIOStore)(nil)

func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		log.Printf("[files][storage] bucket created bucket=%s", cfg.Bucket)
	}
	return newMinIOStore(client, cfg.Bucket), nil
}

func newMinIOStore(client objectAPI, bucket string) *MinIOStore {
	return &MinIOStore{client: client, bucket: bucket, now: func() time.Time { return time.Now().UTC() }}
}

func (s *MinIOStore) Save(ctx context.Context, category, name string, r io.Reader, size int64, contentType string) (entities.FileRef, error) {
	key := newKey(category, name)
	if size <= 0 {
		size = -1
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return entities.FileRef{}, err
	}
	log.Printf("[files][storage] uploaded bucket=%s key=%s size=%d", s.bucket, key, info.Size)
	return entities.FileRef{
		Name:        name,
		Path:        key,
		Size:        info.Size,
		ContentType: contentType,
		UploadedAt:  s.now(),
	}, nil
}

func (s *MinIOStore) Open(ctx context.Context, p string) (io.ReadCloser, int64, error) {
	rel, ok := normalizeKey(p)
	if !ok {
		return nil, 0, interfaces.ErrStoredFileMissing
	}
	key := KeyPrefix + "/" + rel

	stat, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, interfaces.ErrStoredFileMissing
		}
		return nil, 0, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}
	return obj, stat.Size, nil
}
