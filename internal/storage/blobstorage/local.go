package blobstorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"artfeed/internal/storage"
)

// LocalStorage writes blobs under a base directory on disk.
type LocalStorage struct {
	baseDir string
	baseURL string
}

func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalStorage{
		baseDir: baseDir,
		baseURL: baseURL,
	}, nil
}

func (s *LocalStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	const op = "storage.blobstorage.LocalStorage.Put"

	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := s.FullPath(key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("%s: failed to create directories: %w", op, err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("%s: failed to create destination file: %w", op, err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var copyErr error

	go func() {
		_, copyErr = io.Copy(dst, r)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(fullPath)
			return fmt.Errorf("%s: failed to copy file: %w", op, copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(fullPath)
		return ctx.Err()
	}

	return nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	const op = "storage.blobstorage.LocalStorage.Delete"

	if err := os.Remove(s.FullPath(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", op, storage.ErrFileNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *LocalStorage) URL(key string) string {
	return joinURL(s.baseURL, key)
}

func (s *LocalStorage) FullPath(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key))
}
