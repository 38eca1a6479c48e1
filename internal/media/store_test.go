package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
)

// 1x1 透明 PNG
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func pngBytes(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(tinyPNG)
	if err != nil {
		t.Fatalf("failed to decode test png: %v", err)
	}
	return data
}

// fileHeader 通过一次真实的 multipart 解析构造 FileHeader。
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestSaveAndDimensions(t *testing.T) {
	store := NewStore(t.TempDir(), "/api/uploads/")

	url, err := store.Save(fileHeader(t, "photo.PNG", "image/png", pngBytes(t)))
	if err != nil {
		t.Fatalf("failed to save upload: %v", err)
	}
	if !strings.HasPrefix(url, "/api/uploads/") {
		t.Fatalf("unexpected url path: %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("extension must be lowercased: %q", url)
	}

	if _, err := os.Stat(filepath.Join(store.Dir, path.Base(url))); err != nil {
		t.Fatalf("stored file missing on disk: %v", err)
	}

	w, h := store.Dimensions(url)
	if w != 1 || h != 1 {
		t.Fatalf("expected 1x1 dimensions, got %dx%d", w, h)
	}
}

func TestSaveRejectsNonImage(t *testing.T) {
	store := NewStore(t.TempDir(), "/api/uploads")

	_, err := store.Save(fileHeader(t, "notes.txt", "text/plain", []byte("hello")))
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
}

func TestSaveAllRollsBackOnFailure(t *testing.T) {
	store := NewStore(t.TempDir(), "/api/uploads")

	fhs := []*multipart.FileHeader{
		fileHeader(t, "a.png", "image/png", pngBytes(t)),
		fileHeader(t, "b.txt", "text/plain", []byte("nope")),
	}
	if _, err := store.SaveAll(fhs); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}

	entries, err := os.ReadDir(store.Dir)
	if err != nil {
		t.Fatalf("failed to read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected rollback to remove saved files, found %d", len(entries))
	}
}

func TestRemoveManagedAndUnmanaged(t *testing.T) {
	store := NewStore(t.TempDir(), "/api/uploads")

	url, err := store.Save(fileHeader(t, "photo.png", "image/png", pngBytes(t)))
	if err != nil {
		t.Fatalf("failed to save upload: %v", err)
	}

	// 外部链接不归本地存储管，删除是空操作
	if err := store.Remove("https://cdn.example.com/photo.png"); err != nil {
		t.Fatalf("unmanaged path must be a no-op: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir, path.Base(url))); err != nil {
		t.Fatalf("stored file must survive unmanaged remove: %v", err)
	}

	if err := store.Remove(url); err != nil {
		t.Fatalf("failed to remove managed file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir, path.Base(url))); !os.IsNotExist(err) {
		t.Fatalf("managed file must be gone after remove")
	}

	// 已删除的文件再次删除不是错误
	if err := store.Remove(url); err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
}

func TestRemoveLegacyPrefix(t *testing.T) {
	store := NewStore(t.TempDir(), "/api/uploads")

	url, err := store.Save(fileHeader(t, "old.png", "image/png", pngBytes(t)))
	if err != nil {
		t.Fatalf("failed to save upload: %v", err)
	}

	legacy := "/uploads/" + path.Base(url)
	if !store.IsManaged(legacy) {
		t.Fatalf("legacy path must count as managed")
	}
	if err := store.Remove(legacy); err != nil {
		t.Fatalf("failed to remove legacy path: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir, path.Base(url))); !os.IsNotExist(err) {
		t.Fatalf("file must be gone after legacy remove")
	}
}

func TestRemoveBlocksPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "uploads"), "/api/uploads")

	outside := filepath.Join(dir, "secret.txt")
	if err := os.WriteFile(outside, []byte("keep"), 0o644); err != nil {
		t.Fatalf("failed to write sentinel file: %v", err)
	}
	if err := os.MkdirAll(store.Dir, 0o755); err != nil {
		t.Fatalf("failed to create upload dir: %v", err)
	}

	if err := store.Remove("/api/uploads/../secret.txt"); err != nil {
		t.Fatalf("traversal remove errored: %v", err)
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside the store must survive: %v", err)
	}
}
