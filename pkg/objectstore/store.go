// Package objectstore wraps the object-storage operations the workflow
// needs: bucket ensure/create, file upload and download, prefix listing.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// Store is a thin wrapper over one bucket. Every call is a single
// synchronous S3 operation; resilience is the caller's or the service's
// concern, not this package's.
type Store struct {
	client *s3.Client
	bucket string
	region string
	logger *zap.Logger
}

// New builds a Store for bucket using the default credentials chain.
// endpoint, when non-empty, points the client at an S3-compatible service
// (MinIO) with path-style addressing.
func New(ctx context.Context, region, bucket, endpoint string, logger *zap.Logger) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("could not load AWS config: %w", err)
	}

	opts := []func(*s3.Options){}
	if endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return &Store{
		client: s3.NewFromConfig(awsCfg, opts...),
		bucket: bucket,
		region: region,
		logger: logger,
	}, nil
}

// EnsureBucket creates the bucket when it does not already exist.
func (s *Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		s.logger.Debug("bucket exists", zap.String("bucket", s.bucket))
		return nil
	}

	var notFound *s3types.NotFound
	if !errors.As(err, &notFound) {
		return fmt.Errorf("could not check bucket %s: %w", s.bucket, err)
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	// us-east-1 rejects an explicit location constraint.
	if s.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(s.region),
		}
	}

	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("could not create bucket %s: %w", s.bucket, err)
	}

	s.logger.Info("created bucket",
		zap.String("bucket", s.bucket),
		zap.String("region", s.region),
	)
	return nil
}

// Upload stores a local file at key.
func (s *Store) Upload(ctx context.Context, localPath, key string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", localPath, err)
	}
	defer f.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("could not upload %s to s3://%s/%s: %w", localPath, s.bucket, key, err)
	}

	s.logger.Info("uploaded",
		zap.String("file", localPath),
		zap.String("key", key),
	)
	return nil
}

// Download fetches key into localPath, creating parent directories.
func (s *Store) Download(ctx context.Context, key, localPath string) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("could not get s3://%s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("could not create directory for %s: %w", localPath, err)
	}

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", localPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		return fmt.Errorf("could not write %s: %w", localPath, err)
	}

	s.logger.Info("downloaded",
		zap.String("key", key),
		zap.String("file", localPath),
	)
	return nil
}

// DownloadPrefix fetches every object under prefix into dir, preserving the
// key structure below the prefix. It returns the number of objects fetched.
func (s *Store) DownloadPrefix(ctx context.Context, prefix, dir string) (int, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	count := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return count, fmt.Errorf("could not list s3://%s/%s: %w", s.bucket, prefix, err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}

			rel := strings.TrimPrefix(strings.TrimPrefix(key, prefix), "/")
			if rel == "" {
				rel = path.Base(key)
			}

			if err := s.Download(ctx, key, filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
				return count, err
			}
			count++
		}
	}

	return count, nil
}
