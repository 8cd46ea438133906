package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"proassignment/internal/usecase/interfaces"

	"github.com/minio/minio-go/v7"
)

type fakeObjects struct {
	puts    map[string]string
	statErr error
}

func (f *fakeObjects) PutObject(_ context.Context, bucket, object string, reader io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	b, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.puts[object] = opts.ContentType
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: int64(len(b))}, nil
}

func (f *fakeObjects) GetObject(context.Context, string, string, minio.GetObjectOptions) (*minio.Object, error) {
	return nil, errors.New("not used")
}

func (f *fakeObjects) StatObject(_ context.Context, _, object string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if f.statErr != nil {
		return minio.ObjectInfo{}, f.statErr
	}
	return minio.ObjectInfo{Key: object}, nil
}

func TestMinIOStore_Save(t *testing.T) {
	f := &fakeObjects{puts: map[string]string{}}
	s := newMinIOStore(f, "proassignment")

	ref, err := s.Save(context.Background(), "completed", "final.docx", strings.NewReader("done"), 4, "application/msword")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.HasPrefix(ref.Path, "uploads/completed/") || ref.Size != 4 {
		t.Fatalf("unexpected ref %+v", ref)
	}
	if f.puts[ref.Path] != "application/msword" {
		t.Fatalf("content type not forwarded")
	}
}

func TestMinIOStore_OpenMissing(t *testing.T) {
	f := &fakeObjects{statErr: minio.ErrorResponse{Code: "NoSuchKey"}}
	s := newMinIOStore(f, "proassignment")
	if _, _, err := s.Open(context.Background(), `payment-proofs\slip.png`); !errors.Is(err, interfaces.ErrStoredFileMissing) {
		t.Fatalf("expected ErrStoredFileMissing, got %v", err)
	}

	f.statErr = errors.New("connection refused")
	if _, _, err := s.Open(context.Background(), "uploads/payment-proofs/slip.png"); err == nil || errors.Is(err, interfaces.ErrStoredFileMissing) {
		t.Fatalf("expected the raw storage error, got %v", err)
	}
}
