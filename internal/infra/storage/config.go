package storage

import (
	"os"

	"github.com/shanedonnelly/devops/pkg/env"
)

type Config struct {
	Bucket   string
	Endpoint string
	Region   string
}

// NewConfig reads the object store settings. S3_ENDPOINT points the client at
// a MinIO deployment; when empty the SDK resolves the regular AWS endpoint.
func NewConfig() *Config {
	return &Config{
		Bucket:   env.GetEnv("S3_BUCKET", "site-configs"),
		Endpoint: os.Getenv("S3_ENDPOINT"),
		Region:   env.GetEnv("AWS_DEFAULT_REGION", "us-east-1"),
	}
}
