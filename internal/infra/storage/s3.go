package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/application/interfaces"
)

// ConfigStorage keeps one <slug>.json document per site in a single bucket.
type ConfigStorage struct {
	client *s3.Client
	bucket string
}

var _ interfaces.ConfigStore = (*ConfigStorage)(nil)

func NewConfigStorage(awsCfg aws.Config, cfg *Config) *ConfigStorage {
	return &ConfigStorage{
		client: initClient(awsCfg, cfg),
		bucket: cfg.Bucket,
	}
}

func initClient(awsCfg aws.Config, cfg *Config) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.Region = cfg.Region
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
}

// EnsureBucket lazily creates the config bucket on startup.
func (s *ConfigStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("error ensuring bucket exists: %v", err)
	}
	slog.Info("bucket created", "bucket", s.bucket)
	return nil
}

func (s *ConfigStorage) PutConfig(ctx context.Context, slug string, config dto.SiteConfig) error {
	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("err marshalling config, %v", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key(slug)),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("error uploading config %v: %v", slug, err)
	}
	return nil
}

func (s *ConfigStorage) GetConfig(ctx context.Context, slug string) (*dto.SiteConfig, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(slug)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("error downloading config %v: %v", slug, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading config contents, %v", err)
	}

	var config dto.SiteConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("err unmarshalling config %v: %v", slug, err)
	}
	return &config, nil
}

func (s *ConfigStorage) DeleteConfig(ctx context.Context, slug string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(slug)),
	})
	if err != nil {
		return fmt.Errorf("error deleting config %v: %v", slug, err)
	}
	return nil
}

func key(slug string) string {
	return slug + ".json"
}
