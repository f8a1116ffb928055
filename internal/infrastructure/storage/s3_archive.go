// Package storage archives raw audit payloads to S3-compatible object
// storage. Archiving is best-effort: the pipeline never waits on or fails
// because of the archive.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/buildingcarbon/backend/internal/domain/building"
	infraconfig "github.com/buildingcarbon/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// s3API is the slice of the S3 client the archive uses. Narrow on purpose so
// tests can stub it.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// archivedPayload is the JSON envelope written per filing.
type archivedPayload struct {
	BBL        string         `json:"bbl"`
	AuditID    int            `json:"audit_id"`
	Period     string         `json:"period"`
	Payload    map[string]any `json:"payload"`
	ArchivedAt time.Time      `json:"archived_at"`
}

// S3AuditArchive stores raw audit payloads keyed by BBL and audit id. It is
// compatible with any S3-compatible backend (AWS S3, MinIO, RustFS, etc.)
type S3AuditArchive struct {
	client s3API
	bucket string
	logger *zap.Logger
}

// S3AuditArchiveOption is a functional option for configuring S3AuditArchive
type S3AuditArchiveOption func(*S3AuditArchive)

// WithLogger sets a custom logger for S3AuditArchive
func WithLogger(logger *zap.Logger) S3AuditArchiveOption {
	return func(a *S3AuditArchive) {
		a.logger = logger
	}
}

// NewS3AuditArchive creates an archive from configuration.
func NewS3AuditArchive(cfg *infraconfig.StorageConfig, opts ...S3AuditArchiveOption) (*S3AuditArchive, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	if endpoint != "" {
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return NewS3AuditArchiveWithClient(client, cfg.Bucket, opts...), nil
}

// NewS3AuditArchiveWithClient creates an archive around an existing client.
func NewS3AuditArchiveWithClient(client s3API, bucket string, opts ...S3AuditArchiveOption) *S3AuditArchive {
	a := &S3AuditArchive{
		client: client,
		bucket: bucket,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ObjectKey returns the archive key for one filing.
func ObjectKey(bbl building.BBL, period building.ReportingPeriod, auditID int) string {
	return fmt.Sprintf("audits/%s/%s/%d.json", bbl, period, auditID)
}

// Archive writes the record's raw audit payload. A record without an audit
// filing is a no-op.
func (a *S3AuditArchive) Archive(ctx context.Context, rec *building.Record) error {
	if rec.AuditID == nil {
		return nil
	}

	body, err := json.Marshal(archivedPayload{
		BBL:        string(rec.BBL),
		AuditID:    *rec.AuditID,
		Period:     string(rec.AuditPeriod),
		Payload:    rec.AuditPayload,
		ArchivedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal audit payload: %w", err)
	}

	key := ObjectKey(rec.BBL, rec.AuditPeriod, *rec.AuditID)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to archive audit payload: %w", err)
	}

	a.logger.Debug("archived audit payload",
		zap.String("bbl", string(rec.BBL)),
		zap.String("key", key))
	return nil
}

// Retrieve reads an archived payload back.
func (a *S3AuditArchive) Retrieve(ctx context.Context, bbl building.BBL, period building.ReportingPeriod, auditID int) (map[string]any, error) {
	key := ObjectKey(bbl, period, auditID)
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("no archived payload for %s", key)
		}
		return nil, fmt.Errorf("failed to fetch archived payload: %w", err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read archived payload: %w", err)
	}

	var envelope archivedPayload
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode archived payload: %w", err)
	}
	return envelope.Payload, nil
}
