package objectstore

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kiranshivaraju/cardapio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestPut_UploadsAndReturnsPublicURL(t *testing.T) {
	fake := &fakeS3{}
	st := newS3Store(fake, "menu-images", "https://cdn.example.com/menu-images/")

	url, err := st.Put(context.Background(), "user_1/1700000000000.jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/menu-images/user_1/1700000000000.jpg", url)
	require.NotNil(t, fake.input)
	assert.Equal(t, "menu-images", *fake.input.Bucket)
	assert.Equal(t, "user_1/1700000000000.jpg", *fake.input.Key)
	assert.Equal(t, "image/jpeg", *fake.input.ContentType)
	assert.Equal(t, int64(10), *fake.input.ContentLength)
	assert.Equal(t, []byte("jpeg-bytes"), fake.body)
}

func TestPut_Error(t *testing.T) {
	fake := &fakeS3{err: errors.New("access denied")}
	st := newS3Store(fake, "menu-images", "https://cdn.example.com")

	_, err := st.Put(context.Background(), "k.jpg", "image/jpeg", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "user_2abc/1700000000123.webp", ObjectKey("user_2abc", now, "webp"))
}

func TestNewS3Store_CustomEndpoint(t *testing.T) {
	st, err := NewS3Store(context.Background(), config.StorageConfig{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		Bucket:          "menu-images",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		PublicURL:       "http://localhost:9000/menu-images",
	})
	require.NoError(t, err)

	client, ok := st.client.(*s3.Client)
	require.True(t, ok)
	opts := client.Options()
	assert.True(t, opts.UsePathStyle)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *opts.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000/menu-images/a.png", st.URL("a.png"))
}
