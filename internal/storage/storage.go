// Package storage puts credit documents into object storage and returns the
// URL they are served from.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrDisabled is returned when no object storage backend is configured.
var ErrDisabled = errors.New("storage: object storage is not configured")

type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// ObjectKey builds the key for a credit document, keeping only the file
// extension from the client supplied name.
func ObjectKey(creditID, documentID, fileName string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(fileName, "\\", "/")))
	return path.Join("credits", creditID, "documents", documentID+ext)
}

func publicURL(base, bucket, key string) string {
	if base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	return bucket + "/" + key
}
