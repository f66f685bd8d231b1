package blobstorage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// BlobStorage keeps image files addressed by a relative key.
type BlobStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// ImageKey builds "images/<owner>/<uuid><ext>" for a new upload.
func ImageKey(ownerID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join("images", ownerID, uuid.NewString()+ext)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
