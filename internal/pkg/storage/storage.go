package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrFileTooLarge = errors.New("file exceeds the allowed size")
	ErrInvalidPath  = errors.New("invalid file path")
)

type FileStorage interface {
	// Save writes at most maxBytes from r under key and returns the stored key.
	// A maxBytes of 0 disables the limit.
	Save(ctx context.Context, r io.Reader, key string, maxBytes int64) (string, error)

	// Delete removes a stored file. Missing files are not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL the file is served from.
	URL(key string) string
}
