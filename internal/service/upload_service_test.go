package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/linkcard-next/internal/config"
)

func setupUploadServiceTest(t *testing.T) *UploadService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.MaxSize = 5 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	cfg.Upload.AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	return NewUploadService(cfg)
}

// buildFileHeader 通过 multipart 编解码构造 FileHeader。
func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer failed: %v", err)
	}

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form failed: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	files := form.File["file"]
	if len(files) != 1 {
		t.Fatalf("file headers want 1 got %d", len(files))
	}
	return files[0]
}

// pngBytes 最小合法 PNG 文件头
func pngBytes(size int) []byte {
	header := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	if size < len(header) {
		size = len(header)
	}
	content := make([]byte, size)
	copy(content, header)
	return content
}

func TestSaveFileSuccess(t *testing.T) {
	svc := setupUploadServiceTest(t)
	header := buildFileHeader(t, "avatar.png", pngBytes(1024))

	url, err := svc.SaveFile(header, "profile")
	if err != nil {
		t.Fatalf("save file failed: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/profile/") {
		t.Fatalf("url want /uploads/profile/ prefix got %s", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("url want .png suffix got %s", url)
	}

	// 文件应落在配置目录下
	relative := strings.TrimPrefix(url, "/uploads/")
	savedPath := filepath.Join(svc.cfg.Upload.Dir, filepath.FromSlash(relative))
	if _, err := os.Stat(savedPath); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
}

func TestSaveFileRejectsOversize(t *testing.T) {
	svc := setupUploadServiceTest(t)
	header := buildFileHeader(t, "big.png", pngBytes(6*1024*1024))

	if _, err := svc.SaveFile(header, "profile"); !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("oversize file want ErrUploadTooLarge got %v", err)
	}
}

func TestSaveFileRejectsDisallowedExtension(t *testing.T) {
	svc := setupUploadServiceTest(t)
	header := buildFileHeader(t, "script.exe", pngBytes(64))

	if _, err := svc.SaveFile(header, "profile"); !errors.Is(err, ErrUploadTypeInvalid) {
		t.Fatalf("exe upload want ErrUploadTypeInvalid got %v", err)
	}
}

func TestSaveFileRejectsFakeImage(t *testing.T) {
	svc := setupUploadServiceTest(t)
	// 扩展名合法但内容不是图片
	header := buildFileHeader(t, "fake.png", []byte("<html><body>not an image</body></html>"))

	if _, err := svc.SaveFile(header, "profile"); !errors.Is(err, ErrUploadTypeInvalid) {
		t.Fatalf("fake image want ErrUploadTypeInvalid got %v", err)
	}
}

func TestSaveFileNormalizesScene(t *testing.T) {
	svc := setupUploadServiceTest(t)
	header := buildFileHeader(t, "avatar.png", pngBytes(64))

	url, err := svc.SaveFile(header, "../escape")
	if err != nil {
		t.Fatalf("save file failed: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/common/") {
		t.Fatalf("unknown scene should fall back to common, got %s", url)
	}
}
