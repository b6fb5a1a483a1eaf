package firebase

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
)

// SavePublic writes the object, grants public read, and returns the
// well-known storage URL for the bucket/key pair.
func (b *Backend) SavePublic(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	obj := b.bucket.Object(key)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucketName, key), nil
}
