package storage

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"proassignment/internal/config"
	"proassignment/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// KeyPrefix starts every storage key handed out by Save.
const KeyPrefix = "uploads"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// New builds the file store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (interfaces.IFileStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "local":
		return NewLocalStore(cfg), nil
	case "minio":
		return NewMinIOStore(ctx, cfg.MinIO)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// newKey returns uploads/<category>/<uuid>-<name> with a sanitized name.
func newKey(category, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeName.ReplaceAllString(base, "_")
	if base == "" || base == "." || base == "_" {
		base = "file"
	}
	return path.Join(KeyPrefix, category, uuid.NewString()+"-"+base)
}

// normalizeKey turns a stored path of any vintage into a slash-separated key
// without the uploads/ prefix. It refuses keys that climb out of the root.
func normalizeKey(p string) (string, bool) {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" || p == "." {
		return "", false
	}
	for _, prefix := range []string{KeyPrefix + "/", "public/" + KeyPrefix + "/"} {
		if strings.HasPrefix(p, prefix) {
			return strings.TrimPrefix(p, prefix), true
		}
	}
	return p, true
}
