package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/config"
)

type MinioStore struct {
	client *minio.Client
	bucket string
	scheme string
	host   string
}

func NewMinioStore(ctx context.Context, st config.Storage) (*MinioStore, error) {
	const op = "storage.NewMinioStore"

	client, err := minio.New(st.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(st.MinioAccessKey, st.MinioSecretKey, ""),
		Secure: st.MinioUseSSL,
		Region: st.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, st.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("%s: bucket check: %w", op, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, st.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%s: make bucket: %w", op, err)
		}
	}

	scheme := "http"
	if st.MinioUseSSL {
		scheme = "https"
	}
	return &MinioStore{client: client, bucket: st.MinioBucket, scheme: scheme, host: st.MinioEndpoint}, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	const op = "storage.MinioStore.Put"

	if size <= 0 {
		size = -1
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return publicURL(s.scheme+"://"+s.host+"/"+s.bucket, s.bucket, key), nil
}
