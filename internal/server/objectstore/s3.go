// Package objectstore manages recipe images kept in an S3-compatible bucket.
package objectstore

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DefaultPresignExpiry is the lifetime of presigned image URLs.
const DefaultPresignExpiry = 15 * time.Minute

// ObjectAPI is the part of *s3.Client the store needs.
type ObjectAPI interface {
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Presigner is the part of *s3.PresignClient the store needs.
type Presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Options configures the S3 image store. Empty credentials use the
// default AWS credential chain.
type Options struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	// PresignExpiry defaults to DefaultPresignExpiry.
	PresignExpiry time.Duration
}

// S3ImageStore deletes recipe images and presigns GET URLs for them.
type S3ImageStore struct {
	api     ObjectAPI
	presign Presigner
	bucket  string
	expiry  time.Duration
}

// NewS3ImageStore builds a client against opts. A non-empty BaseEndpoint
// switches to path-style addressing for MinIO and similar backends.
func NewS3ImageStore(ctx context.Context, opts Options) (*S3ImageStore, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3ImageStoreWithClients(client, s3.NewPresignClient(client), opts), nil
}

// NewS3ImageStoreWithClients builds a store over already configured clients.
func NewS3ImageStoreWithClients(api ObjectAPI, presign Presigner, opts Options) *S3ImageStore {
	expiry := opts.PresignExpiry
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}
	return &S3ImageStore{api: api, presign: presign, bucket: opts.Bucket, expiry: expiry}
}

func (s *S3ImageStore) Delete(ctx context.Context, key string) error {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %q: %w", key, err)
	}
	return nil
}

// PresignGet returns a time-limited download URL for key.
func (s *S3ImageStore) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign %q: %w", key, err)
	}
	return req.URL, nil
}
