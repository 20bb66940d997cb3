package vizstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/lung-visualizer/internal/domain/lungviz"
	apperrors "github.com/yanqian/lung-visualizer/pkg/errors"
	"github.com/yanqian/lung-visualizer/pkg/util"
)

const expiresAtMeta = "Expires-At"

// R2Config holds the S3-compatible connection settings.
type R2Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Prefix    string
}

// R2Store caches illustrations as objects in Cloudflare R2 via the S3 API.
// Expiry is recorded in object metadata and checked on read.
type R2Store struct {
	client *minio.Client
	bucket string
	prefix string
	logger *slog.Logger
	now    util.Clock

	bucketMu    sync.Mutex
	bucketReady bool
}

// NewR2Store constructs the storage adapter.
func NewR2Store(cfg R2Config, logger *slog.Logger) (*R2Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("r2 bucket cannot be empty")
	}
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(cfg.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       useSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init r2 client: %w", err)
	}
	return &R2Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: logger.With("component", "vizstore.r2"),
		now:    util.NowUTC,
	}, nil
}

// ensureBucket checks for the bucket, creating it when missing. Only a
// successful check is remembered; failures are retried on the next call.
func (s *R2Store) ensureBucket(ctx context.Context) error {
	s.bucketMu.Lock()
	defer s.bucketMu.Unlock()
	if s.bucketReady {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
			return err
		}
	}
	s.bucketReady = true
	return nil
}

// Get implements lungviz.Store.
func (s *R2Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	name := s.objectName(key)
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.CodeCacheError, "r2 get failed", err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, apperrors.Wrap(apperrors.CodeCacheError, "r2 stat failed", err)
	}
	if expiresAt, ok := parseExpiry(info.UserMetadata); ok && expiresAt.Before(s.now()) {
		if rmErr := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); rmErr != nil {
			s.logger.Warn("failed to remove expired illustration", "key", name, "error", rmErr)
		}
		return nil, false, nil
	}
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.CodeCacheError, "r2 read failed", err)
	}
	return data, true, nil
}

// Put implements lungviz.Store.
func (s *R2Store) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.ensureBucket(ctx); err != nil {
		return apperrors.Wrap(apperrors.CodeCacheError, "r2 bucket unavailable", err)
	}
	opts := minio.PutObjectOptions{
		ContentType:      contentTypeFor(key),
		DisableMultipart: true,
	}
	if ttl > 0 {
		opts.UserMetadata = map[string]string{expiresAtMeta: s.now().Add(ttl).UTC().Format(time.RFC3339)}
	}
	if _, err := s.client.PutObject(ctx, s.bucket, s.objectName(key), bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return apperrors.Wrap(apperrors.CodeCacheError, "r2 put failed", err)
	}
	return nil
}

func (s *R2Store) objectName(key string) string {
	name := strings.ReplaceAll(key, ":", "/")
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

func parseExpiry(meta map[string]string) (time.Time, bool) {
	for k, v := range meta {
		if !strings.EqualFold(k, expiresAtMeta) && !strings.EqualFold(k, "X-Amz-Meta-"+expiresAtMeta) {
			continue
		}
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, false
		}
		return ts, true
	}
	return time.Time{}, false
}

func contentTypeFor(key string) string {
	format, _, _ := strings.Cut(key, ":")
	parsed, err := lungviz.ParseFormat(format, lungviz.FormatPNG)
	if err != nil {
		return "application/octet-stream"
	}
	return parsed.ContentType()
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if host, _, found := strings.Cut(raw, "/"); found {
		raw = host
	}
	return raw
}

var _ lungviz.Store = (*R2Store)(nil)
