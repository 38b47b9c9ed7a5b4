package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/port"
)

const (
	MaxImageSize = 5 << 20
	PublicPrefix = "/uploads"
)

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// LocalStorage writes uploads under root and serves them from PublicPrefix.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

func (s *LocalStorage) Root() string {
	return s.root
}

// SaveImage sniffs the content, never trusting the file name or the declared type.
func (s *LocalStorage) SaveImage(ctx context.Context, folder string, file port.Upload) (string, error) {
	if file.Content == nil {
		return "", domain.ErrImageRequired
	}

	if file.Size > MaxImageSize {
		return "", domain.ErrImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file.Content, MaxImageSize+1))

	if err != nil {
		return "", err
	}

	if len(data) == 0 {
		return "", domain.ErrImageRequired
	}

	if len(data) > MaxImageSize {
		return "", domain.ErrImageTooLarge
	}

	ext, ok := imageExtensions[mimetype.Detect(data).String()]

	if !ok {
		return "", domain.ErrInvalidImage
	}

	dir := filepath.Join(s.root, filepath.Base(folder))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext

	if err := writeFile(filepath.Join(dir, name), data); err != nil {
		return "", err
	}

	return PublicPrefix + "/" + filepath.Base(folder) + "/" + name, nil
}

func writeFile(path string, data []byte) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)

	if err != nil {
		return err
	}

	if _, err := io.Copy(out, bytes.NewReader(data)); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// Delete removes a file previously returned by SaveImage. Unknown paths are ignored.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if !strings.HasPrefix(path, PublicPrefix+"/") {
		return nil
	}

	relative := filepath.Clean(strings.TrimPrefix(path, PublicPrefix+"/"))

	if strings.HasPrefix(relative, "..") || filepath.IsAbs(relative) {
		return nil
	}

	err := os.Remove(filepath.Join(s.root, relative))

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}
