package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/port"
)

func pngBytes(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestLocalStorage_SaveImage(t *testing.T) {
	root := t.TempDir()
	storage := NewLocalStorage(root)
	data := pngBytes(t)

	path, err := storage.SaveImage(context.Background(), "avatars", port.Upload{
		Filename: "foto.txt",
		Size:     int64(len(data)),
		Content:  bytes.NewReader(data),
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/avatars/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	stored, err := os.ReadFile(filepath.Join(root, strings.TrimPrefix(path, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	require.NoError(t, storage.Delete(context.Background(), path))

	_, err = os.Stat(filepath.Join(root, strings.TrimPrefix(path, "/uploads/")))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RejectsNonImages(t *testing.T) {
	storage := NewLocalStorage(t.TempDir())

	_, err := storage.SaveImage(context.Background(), "avatars", port.Upload{
		Filename: "avatar.png",
		Content:  strings.NewReader("GIF89a not really a png"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	_, err = storage.SaveImage(context.Background(), "avatars", port.Upload{Filename: "empty.png", Content: strings.NewReader("")})
	assert.ErrorIs(t, err, domain.ErrImageRequired)
}

func TestLocalStorage_RejectsLargeFiles(t *testing.T) {
	storage := NewLocalStorage(t.TempDir())

	_, err := storage.SaveImage(context.Background(), "avatars", port.Upload{
		Size:    MaxImageSize + 1,
		Content: bytes.NewReader(pngBytes(t)),
	})

	assert.ErrorIs(t, err, domain.ErrImageTooLarge)
}

func TestLocalStorage_DeleteIgnoresForeignPaths(t *testing.T) {
	storage := NewLocalStorage(t.TempDir())

	assert.NoError(t, storage.Delete(context.Background(), "/etc/passwd"))
	assert.NoError(t, storage.Delete(context.Background(), "/uploads/../../etc/passwd"))
	assert.NoError(t, storage.Delete(context.Background(), "/uploads/avatars/missing.png"))
}
