package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"skillbridge/readiness-api/internal/config"
)

// StorageService stores résumé binaries under slash-separated object keys.
type StorageService interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) error
	Download(ctx context.Context, key string) ([]byte, error)
	PublicURL(key string) string
}

// NewStorageService picks the backend named by cfg.Storage.Driver.
func NewStorageService(ctx context.Context, cfg *config.Config) (StorageService, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverS3:
		return NewS3StorageService(ctx, cfg.S3, cfg.Storage.PublicBaseURL)
	case config.StorageDriverLocal, "":
		return NewLocalStorageService(cfg.Storage.UploadPath, cfg.Storage.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

type localStorageService struct {
	uploadPath    string
	publicBaseURL string
}

// NewLocalStorageService keeps objects on disk below uploadPath, creating it if needed.
func NewLocalStorageService(uploadPath, publicBaseURL string) (StorageService, error) {
	if err := os.MkdirAll(uploadPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &localStorageService{
		uploadPath:    uploadPath,
		publicBaseURL: publicBaseURL,
	}, nil
}

func (s *localStorageService) filePath(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid object key: %q", key)
	}
	return filepath.Join(s.uploadPath, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (s *localStorageService) Upload(ctx context.Context, key string, contentType string, data []byte) error {
	filePath, err := s.filePath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}

	return nil
}

func (s *localStorageService) Download(ctx context.Context, key string) ([]byte, error) {
	filePath, err := s.filePath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

func (s *localStorageService) PublicURL(key string) string {
	return joinURL(s.publicBaseURL, key)
}

type s3StorageService struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3StorageService works against AWS S3 and S3-compatible stores (R2, MinIO)
// when cfg.Endpoint is set.
func NewS3StorageService(ctx context.Context, cfg config.S3Config, publicBaseURL string) (StorageService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &s3StorageService{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: publicBaseURL,
	}, nil
}

func (s *s3StorageService) Upload(ctx context.Context, key string, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

func (s *s3StorageService) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *s3StorageService) PublicURL(key string) string {
	return joinURL(s.publicBaseURL, key)
}

// joinURL returns "" when no public base is configured.
func joinURL(base, key string) string {
	if base == "" {
		return ""
	}

	segments := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
