package port

import (
	"context"
	"io"
)

type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type FileStorage interface {
	// SaveImage stores a PNG or JPEG and returns its public path.
	SaveImage(ctx context.Context, folder string, file Upload) (string, error)
	Delete(ctx context.Context, path string) error
}
