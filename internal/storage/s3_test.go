package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestNewS3Disabled(t *testing.T) {
	_, err := NewS3(config.StorageConfig{Bucket: "photos"})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNewS3DefaultsPublicURL(t *testing.T) {
	s, err := NewS3(config.StorageConfig{
		Region: "sa-east-1", Bucket: "photos", AccessKey: "k", SecretKey: "s",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://photos.s3.sa-east-1.amazonaws.com", s.publicURL)
}

func TestPut(t *testing.T) {
	fake := &fakeS3{}
	s := &S3Store{client: fake, bucket: "photos", publicURL: "https://cdn.example.com"}

	url, err := s.Put(context.Background(), "a/b.webp", []byte("data"), "image/webp")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/a/b.webp", url)
	assert.Equal(t, "photos", aws.ToString(fake.in.Bucket))
	assert.Equal(t, "image/webp", aws.ToString(fake.in.ContentType))
	assert.Equal(t, []byte("data"), fake.body)

	fake.err = errors.New("access denied")
	_, err = s.Put(context.Background(), "a/b.webp", []byte("data"), "image/webp")
	assert.ErrorContains(t, err, "access denied")
}

func TestBarberPhotoKey(t *testing.T) {
	key := BarberPhotoKey(3, 8)
	assert.True(t, strings.HasPrefix(key, "barbershops/3/barbers/8/"))
	assert.True(t, strings.HasSuffix(key, ".webp"))
	assert.NotEqual(t, key, BarberPhotoKey(3, 8))
}
