package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = b
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3_RoundTrip(t *testing.T) {
	fake := newFakeS3()
	s := &S3{client: fake, bucket: "jobboard"}
	files := NewFiles(s, "/uploads", 0)
	ctx := context.Background()

	st, err := files.Save(ctx, KindPhoto, "u1", Upload{Filename: "me.png", Data: pngData})
	require.NoError(t, err)

	key, err := files.Key(st.Path)
	require.NoError(t, err)
	assert.Equal(t, pngData, fake.objects[key])
	assert.Equal(t, "image/png", fake.types[key])

	rc, ct, err := files.Open(ctx, st.Path)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "image/png", ct)

	require.NoError(t, files.Remove(ctx, st.Path))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3_PutError(t *testing.T) {
	fake := newFakeS3()
	fake.err = errors.New("denied")
	files := NewFiles(&S3{client: fake, bucket: "b"}, "/uploads", 0)

	_, err := files.Save(context.Background(), KindResume, "u1", Upload{Filename: "cv.pdf", Data: pdfData})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}

func TestNewS3_UsesSeams(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	defer func() { loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew }()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	var gotEndpoint string
	var pathStyle bool
	fake := newFakeS3()
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		var o s3.Options
		for _, fn := range optFns {
			fn(&o)
		}
		gotEndpoint = aws.ToString(o.BaseEndpoint)
		pathStyle = o.UsePathStyle
		return fake
	}

	s, err := NewS3(context.Background(), S3Options{Bucket: "b", Region: "us-east-1", BaseEndpoint: "http://127.0.0.1:9000/"})
	require.NoError(t, err)
	assert.Equal(t, "b", s.bucket)
	assert.Equal(t, "http://127.0.0.1:9000/", gotEndpoint)
	assert.True(t, pathStyle)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	_, err = NewS3(context.Background(), S3Options{})
	assert.Error(t, err)
}
