package objectstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	deleted []string
	expires time.Duration
	err     error
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, f.err
}

func (f *fakeS3) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	var o s3.PresignOptions
	for _, fn := range optFns {
		fn(&o)
	}
	f.expires = o.Expires
	return &v4.PresignedHTTPRequest{URL: "https://s3.local/" + aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)}, nil
}

func TestS3ImageStore_DeleteAndPresign(t *testing.T) {
	f := &fakeS3{}
	s := NewS3ImageStoreWithClients(f, f, Options{Bucket: "images"})

	require.NoError(t, s.Delete(context.Background(), "r1.png"))
	assert.Equal(t, []string{"images/r1.png"}, f.deleted)

	url, err := s.PresignGet(context.Background(), "r1.png")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/images/r1.png", url)
	assert.Equal(t, DefaultPresignExpiry, f.expires)
}

func TestS3ImageStore_WrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	f := &fakeS3{err: boom}
	s := NewS3ImageStoreWithClients(f, f, Options{Bucket: "b", PresignExpiry: time.Minute})

	assert.ErrorIs(t, s.Delete(context.Background(), "k"), boom)
	_, err := s.PresignGet(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
}

func TestNewS3ImageStore_UsesEndpoint(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{Region: "us-east-1"}, nil
	}
	var pathStyle bool
	var endpoint string
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var o s3.Options
		for _, fn := range optFns {
			fn(&o)
		}
		pathStyle = o.UsePathStyle
		endpoint = aws.ToString(o.BaseEndpoint)
		return s3.NewFromConfig(cfg, optFns...)
	}

	s, err := NewS3ImageStore(context.Background(), Options{
		Bucket: "b", Region: "us-east-1", BaseEndpoint: "http://127.0.0.1:9000", AccessKey: "a", SecretKey: "s",
	})
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.True(t, pathStyle)
	assert.Equal(t, "http://127.0.0.1:9000", endpoint)
}

func TestNewS3ImageStore_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(context.Context, ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("nope")
	}

	_, err := NewS3ImageStore(context.Background(), Options{})
	assert.ErrorContains(t, err, "aws config error")
}
