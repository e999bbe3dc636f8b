package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"bizportal/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Sink stores a rendered image under a fixed name and returns its URL.
type Sink interface {
	Put(ctx context.Context, name string, png []byte) (string, error)
}

// FileSink writes <dir>/<name>.png and serves it under urlPrefix.
type FileSink struct {
	dir       string
	urlPrefix string
}

func NewFileSink(dir, urlPrefix string) *FileSink {
	return &FileSink{dir: dir, urlPrefix: urlPrefix}
}

func (s *FileSink) Put(_ context.Context, name string, png []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	// Write then rename so concurrent readers never see a partial image.
	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp chart: %w", err)
	}
	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write chart: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close chart: %w", err)
	}

	final := filepath.Join(s.dir, name+".png")
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("move chart: %w", err)
	}

	return path.Join(s.urlPrefix, name+".png"), nil
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads charts to a bucket under prefix/<name>.png.
type S3Sink struct {
	client  objectPutter
	bucket  string
	prefix  string
	baseURL string
}

func NewS3Sink(client objectPutter, bucket, prefix, baseURL string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *S3Sink) Put(ctx context.Context, name string, png []byte) (string, error) {
	key := path.Join(s.prefix, name+".png")

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(png),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key), nil
}

// NewS3Client builds a client for AWS or an S3-compatible endpoint such as
// MinIO.
func NewS3Client(ctx context.Context, cfg utils.S3Config) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3BaseURL is the public URL prefix of objects for cfg.
func S3BaseURL(cfg utils.S3Config) string {
	if cfg.BaseEndpoint != "" {
		return cfg.BaseEndpoint
	}
	return fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Region)
}
