package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/night-assist/assist-service/internal/config"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

// FileStore persists uploaded product images on disk, enforcing the MIME
// allow-list and the size cap before anything touches the filesystem.
type FileStore struct {
	dir         string
	maxSize     int64
	allowedMIME map[string]struct{}
}

// NewFileStore prepares the upload directory.
func NewFileStore(cfg config.UploadConfig) (*FileStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedMIME))
	for _, m := range cfg.AllowedMIME {
		allowed[m] = struct{}{}
	}
	return &FileStore{dir: cfg.Dir, maxSize: cfg.MaxSizeBytes, allowedMIME: allowed}, nil
}

// Save validates and writes the uploaded file, returning its stored path.
// Stored names are uuid-prefixed so original names cannot collide.
func (fs *FileStore) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > fs.maxSize {
		return "", apperrors.NewValidationError("file too large", map[string]any{
			"max_size_bytes": fs.maxSize,
		})
	}

	contentType := file.Header.Get("Content-Type")
	if _, ok := fs.allowedMIME[contentType]; !ok {
		return "", apperrors.NewValidationError("unsupported file type", map[string]any{
			"content_type": contentType,
		})
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + "_" + filepath.Base(file.Filename)
	path := filepath.Join(fs.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, fs.maxSize)); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (fs *FileStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the upload directory, used for static file serving.
func (fs *FileStore) Dir() string {
	return fs.dir
}
