package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultPresignExpiry is how long a document link stays valid
const DefaultPresignExpiry = 7 * 24 * time.Hour

// ErrNoBucket is returned when no bucket is configured
var ErrNoBucket = errors.New("storage: bucket not configured")

// Config holds S3 settings
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Endpoint        string
	PresignExpiry   time.Duration
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Presigner turns stored object keys into time limited GET URLs
type Presigner struct {
	client presignAPI
	bucket string
	expiry time.Duration
}

// NewS3Presigner builds a presigner from static credentials. A custom endpoint switches to path-style addressing.
func NewS3Presigner(cfg Config) (*Presigner, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}
	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	expiry := cfg.PresignExpiry
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}
	return &Presigner{
		client: s3.NewPresignClient(client),
		bucket: cfg.Bucket,
		expiry: expiry,
	}, nil
}

// PresignGet returns a signed GET URL for key. An empty key yields an empty URL.
func (p *Presigner) PresignGet(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", fmt.Errorf("storage: presign %s: %w", key, err)
	}
	return req.URL, nil
}
