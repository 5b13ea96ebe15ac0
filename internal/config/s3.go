// internal/config/s3.go
package config

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	StorageNone  = "none"
	StorageS3    = "s3"
	StorageMinio = "minio"
)

// Storage selects and configures the object store used for credit documents.
type Storage struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"none"`

	S3Region          string `yaml:"s3_region" env:"AWS_REGION" env-default:"us-east-1"`
	S3AccessKeyID     string `yaml:"s3_access_key_id" env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `yaml:"s3_secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
	S3Bucket          string `yaml:"s3_bucket" env:"S3_BUCKET_NAME" env-default:"pymes-documents"`
	S3Endpoint        string `yaml:"s3_endpoint" env:"S3_ENDPOINT"`
	S3PublicBaseURL   string `yaml:"s3_public_base_url" env:"S3_PUBLIC_BASE_URL"`

	MinioEndpoint  string `yaml:"minio_endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	MinioAccessKey string `yaml:"minio_access_key" env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `yaml:"minio_secret_key" env:"MINIO_SECRET_KEY"`
	MinioBucket    string `yaml:"minio_bucket" env:"MINIO_BUCKET" env-default:"pymes-documents"`
	MinioRegion    string `yaml:"minio_region" env:"MINIO_REGION" env-default:"us-east-1"`
	MinioUseSSL    bool   `yaml:"minio_use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
}

// S3Config holds a ready S3 client and the bucket it writes to.
type S3Config struct {
	Client        *s3.Client
	Bucket        string
	PublicBaseURL string
}

// NewS3Config creates a new S3 configuration from the storage settings.
func NewS3Config(ctx context.Context, st Storage) (*S3Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(st.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			st.S3AccessKeyID,
			st.S3SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if st.S3Endpoint != "" {
			o.BaseEndpoint = &st.S3Endpoint
			o.UsePathStyle = true
		}
	})

	return &S3Config{
		Client:        client,
		Bucket:        st.S3Bucket,
		PublicBaseURL: st.S3PublicBaseURL,
	}, nil
}
