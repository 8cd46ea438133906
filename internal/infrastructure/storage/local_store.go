package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"proassignment/internal/config"
	"proassignment/internal/domain/entities"
	"proassignment/internal/usecase/interfaces"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
)

const thumbDir = "thumbs"

// LocalStore keeps uploads on disk under Root. Documents written by older
// deployments may carry absolute paths, Windows separators or bare file names;
// Open searches Root and every legacy root for them.
type LocalStore struct {
	Root        string
	LegacyRoots []string
	Thumbnails  bool
	ThumbWidth  int
	now         func() time.Time
}

var _ interfaces.IFileStore = (*LocalStore)(nil)

func NewLocalStore(cfg config.StorageConfig) *LocalStore {
	root := cfg.UploadRoot
	if root == "" {
		root = KeyPrefix
	}
	width := cfg.ThumbWidth
	if width <= 0 {
		width = 320
	}
	return &LocalStore{
		Root:        root,
		LegacyRoots: cfg.LegacyRoots,
		Thumbnails:  cfg.Thumbnails,
		ThumbWidth:  width,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *LocalStore) Save(ctx context.Context, category, name string, r io.Reader, size int64, contentType string) (entities.FileRef, error) {
	key := newKey(category, name)
	rel, _ := normalizeKey(key)
	dest := filepath.Join(s.Root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return entities.FileRef{}, err
	}
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return entities.FileRef{}, err
	}
	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		return entities.FileRef{}, err
	}
	log.Printf("[files][storage] saved key=%s size=%d", key, written)

	if s.Thumbnails && strings.HasPrefix(contentType, "image/") {
		s.thumbnail(dest)
	}

	return entities.FileRef{
		Name:        name,
		Path:        key,
		Size:        written,
		ContentType: contentType,
		UploadedAt:  s.now(),
	}, nil
}

// thumbnail writes a resized copy next to the original. Failures only log:
// the upload itself already succeeded.
func (s *LocalStore) thumbnail(src string) {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		log.WithError(err).WithField("file", src).Warn("[files][storage] thumbnail decode failed")
		return
	}
	dir := filepath.Join(filepath.Dir(src), thumbDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.WithError(err).Warn("[files][storage] thumbnail dir failed")
		return
	}
	thumb := imaging.Resize(img, s.ThumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(dir, filepath.Base(src))); err != nil {
		log.WithError(err).WithField("file", src).Warn("[files][storage] thumbnail save failed")
	}
}

// ThumbnailPath returns the key of the thumbnail generated for key.
func ThumbnailPath(key string) string {
	dir, file := path.Split(key)
	return path.Join(dir, thumbDir, file)
}

func (s *LocalStore) Open(_ context.Context, p string) (io.ReadCloser, int64, error) {
	for _, candidate := range s.candidates(p) {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		f, err := os.Open(candidate)
		if err != nil {
			return nil, 0, err
		}
		return f, info.Size(), nil
	}
	log.WithField("path", p).Warn("[files][storage] stored file missing")
	return nil, 0, interfaces.ErrStoredFileMissing
}

// candidates lists where p may live, in lookup order. Absolute paths are only
// honoured inside a known root.
func (s *LocalStore) candidates(p string) []string {
	roots := append([]string{s.Root}, s.LegacyRoots...)
	var out []string
	add := func(c string) {
		for _, seen := range out {
			if seen == c {
				return
			}
		}
		out = append(out, c)
	}

	raw := strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if filepath.IsAbs(filepath.FromSlash(raw)) || isWindowsAbs(raw) {
		abs := filepath.Clean(filepath.FromSlash(raw))
		for _, root := range roots {
			if within(root, abs) {
				add(abs)
			}
		}
		if idx := strings.Index(raw, "/"+KeyPrefix+"/"); idx >= 0 {
			raw = raw[idx+1:]
		} else {
			raw = path.Base(raw)
		}
	}

	key, ok := normalizeKey(raw)
	if !ok {
		return out
	}
	base := path.Base(key)
	for _, root := range roots {
		add(filepath.Join(root, filepath.FromSlash(key)))
	}
	for _, root := range roots {
		add(filepath.Join(root, base))
		if matches, _ := filepath.Glob(filepath.Join(root, "*", globEscape(base))); len(matches) > 0 {
			add(matches[0])
		}
	}
	return out
}

func within(root, abs string) bool {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(rootAbs, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isWindowsAbs(p string) bool {
	return len(p) > 2 && p[1] == ':' && p[2] == '/'
}

func globEscape(s string) string {
	r := strings.NewReplacer("*", `\*`, "?", `\?`, "[", `\[`)
	return r.Replace(s)
}

