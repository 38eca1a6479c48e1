package media

import (
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrNotImage 表示上传的文件不是图片类型
var ErrNotImage = errors.New("only image uploads are allowed")

// legacyPrefix 兼容历史数据中直接以 /uploads/ 开头的路径。
const legacyPrefix = "/uploads/"

// Store manages uploaded image files on local disk. Files are written
// under Dir with generated names and referenced by documents through a
// URL path beginning with URLPrefix.
type Store struct {
	Dir       string
	URLPrefix string
}

// NewStore creates a media store rooted at dir, served under urlPrefix.
func NewStore(dir, urlPrefix string) *Store {
	return &Store{
		Dir:       dir,
		URLPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}
}

// Save writes an uploaded file to the store directory and returns the
// URL path to persist on the owning document.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 生成唯一文件名：日期-uuid.扩展名
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return s.URLPrefix + "/" + name, nil
}

// SaveAll saves every file in order and returns the stored URL paths.
// On failure, files written so far are removed.
func (s *Store) SaveAll(fhs []*multipart.FileHeader) ([]string, error) {
	saved := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		url, err := s.Save(fh)
		if err != nil {
			for _, prev := range saved {
				_ = s.Remove(prev)
			}
			return nil, err
		}
		saved = append(saved, url)
	}
	return saved, nil
}

// Dimensions decodes the stored image's bounds. Best effort: unknown
// formats report zero values.
func (s *Store) Dimensions(urlPath string) (width, height int) {
	if !s.IsManaged(urlPath) {
		return 0, 0
	}

	f, err := os.Open(filepath.Join(s.Dir, path.Base(urlPath)))
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// IsManaged reports whether a document image path belongs to this store.
// External URLs and absolute links stay untouched by cleanup.
func (s *Store) IsManaged(urlPath string) bool {
	return strings.HasPrefix(urlPath, s.URLPrefix+"/") || strings.HasPrefix(urlPath, legacyPrefix)
}

// Remove deletes the file backing a managed image path. Unmanaged paths
// and already-missing files are not errors.
func (s *Store) Remove(urlPath string) error {
	if !s.IsManaged(urlPath) {
		return nil
	}

	// 只取文件名，避免路径穿越
	target := filepath.Join(s.Dir, path.Base(urlPath))
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.Remove(target)
}

// RemoveAll removes every managed path, returning the first error while
// still attempting the rest.
func (s *Store) RemoveAll(urlPaths []string) error {
	var firstErr error
	for _, p := range urlPaths {
		if err := s.Remove(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
