package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/artium/indicacoes-api/pkg/logger"
	"github.com/artium/indicacoes-api/pkg/metrics"
	"github.com/artium/indicacoes-api/pkg/slug"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

const defaultRegion = "us-east-1"

// ObjectAPI is the subset of the S3 client used for resumes
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config points the client at an S3-compatible bucket
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
}

// Client stores referral documents in object storage
type Client struct {
	api        ObjectAPI
	bucketName string
	baseURL    string
}

// NewClient creates an S3 client. An empty endpoint means AWS itself.
func NewClient(cfg Config) *Client {
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	opts := s3.Options{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token not needed
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	logger.Info("Object storage client initialized",
		zap.String("bucket", cfg.BucketName),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("region", region),
	)

	return NewClientWithAPI(s3.New(opts), cfg.BucketName, publicBaseURL(cfg.Endpoint, cfg.BucketName, region))
}

// NewClientWithAPI wires a client around an existing ObjectAPI
func NewClientWithAPI(api ObjectAPI, bucketName, baseURL string) *Client {
	return &Client{
		api:        api,
		bucketName: bucketName,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func publicBaseURL(endpoint, bucket, region string) string {
	if endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(endpoint, "/"), bucket)
}

// UploadDocument stores data under key and returns the object URL
func (c *Client) UploadDocument(ctx context.Context, key string, data []byte, contentType, originalName string) (string, error) {
	start := time.Now()
	operation := "uploadDocument"

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(c.bucketName),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String(contentType),
		ContentLength:      aws.Int64(int64(len(data))),
		ContentDisposition: aws.String(contentDisposition(originalName)),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall(ctx, "object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall(ctx, "object_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(data)),
	)

	return c.ObjectURL(key), nil
}

// ObjectURL returns the public URL for key
func (c *Client) ObjectURL(key string) string {
	return c.baseURL + "/" + key
}

// DocumentKey builds resumes/<yyyy>/<mm>/<id>-<slug><ext>
func DocumentKey(referralID, ownerName, fileName string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	base := slug.Generate(ownerName)
	if base == "" {
		base = "curriculo"
	}

	at = at.UTC()
	return path.Join("resumes",
		fmt.Sprintf("%04d", at.Year()),
		fmt.Sprintf("%02d", int(at.Month())),
		fmt.Sprintf("%s-%s%s", referralID, base, ext),
	)
}

// contentDisposition keeps the visitor's file name for downloads
func contentDisposition(name string) string {
	if name == "" {
		return "attachment"
	}
	ascii := slug.GenerateFileName(name)
	return fmt.Sprintf(`attachment; filename="%s"`, ascii)
}
