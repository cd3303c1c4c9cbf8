package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		User:     "minioadmin",
		Password: "minioadmin",
		Bucket:   "gigbook",
		Region:   "us-east-1",
		Endpoint: "http://127.0.0.1:9000",
	}
}

func newTestStore(t *testing.T) *S3Store {
	t.Helper()
	s, err := NewS3Store(context.Background(), testOptions())
	require.NoError(t, err)
	return s
}

func TestPresignPut_PathStyleURL(t *testing.T) {
	s := newTestStore(t)

	raw, err := s.PresignPut(context.Background(), "users/u1/2024/03/01/abc", "image/png", 1024)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/gigbook/users/u1/2024/03/01/abc", u.Path)
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestPresignGet(t *testing.T) {
	s := newTestStore(t)

	raw, err := s.PresignGet(context.Background(), "users/u1/report.xlsx")
	require.NoError(t, err)
	assert.Contains(t, raw, "/gigbook/users/u1/report.xlsx")
	assert.Contains(t, raw, "X-Amz-Signature=")
}

func TestPresign_Errors(t *testing.T) {
	s := newTestStore(t)

	origPut, origGet := presignPutObject, presignGetObject
	t.Cleanup(func() { presignPutObject, presignGetObject = origPut, origGet })

	presignPutObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("put-fail")
	}
	presignGetObject = func(*s3.PresignClient, context.Context, *s3.GetObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("get-fail")
	}

	_, err := s.PresignPut(context.Background(), "k", "", 0)
	assert.ErrorContains(t, err, "put-fail")
	_, err = s.PresignGet(context.Background(), "k")
	assert.ErrorContains(t, err, "get-fail")
}

func TestNewS3Store_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := NewS3Store(context.Background(), testOptions())
	assert.ErrorContains(t, err, "load-fail")
}

func TestNewS3Store_AppliesEndpoint(t *testing.T) {
	orig := newS3ClientFromConfig
	t.Cleanup(func() { newS3ClientFromConfig = orig })

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return s3.NewFromConfig(cfg, optFns...)
	}

	_, err := NewS3Store(context.Background(), testOptions())
	require.NoError(t, err)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestPut(t *testing.T) {
	s := newTestStore(t)

	orig := putObject
	t.Cleanup(func() { putObject = orig })

	var gotKey, gotType string
	var gotBody []byte
	putObject = func(_ *s3.Client, _ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotKey, gotType = *in.Key, *in.ContentType
		gotBody, _ = io.ReadAll(in.Body)
		return &s3.PutObjectOutput{}, nil
	}

	require.NoError(t, s.Put(context.Background(), "users/u1/x.xlsx", "application/octet-stream", []byte("data")))
	assert.Equal(t, "users/u1/x.xlsx", gotKey)
	assert.Equal(t, "application/octet-stream", gotType)
	assert.Equal(t, "data", string(gotBody))

	putObject = func(*s3.Client, context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("denied")
	}
	assert.ErrorContains(t, s.Put(context.Background(), "k", "t", nil), "denied")
}

func TestNewKey(t *testing.T) {
	now := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	key := NewKey("u1", now)

	assert.True(t, strings.HasPrefix(key, "users/u1/2024/03/07/"), key)
	assert.Regexp(t, regexp.MustCompile(`[0-9a-f-]{36}$`), key)
	assert.NotEqual(t, key, NewKey("u1", now))
}
