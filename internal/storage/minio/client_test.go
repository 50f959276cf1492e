package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type putCall struct {
	bucket      string
	key         string
	size        int64
	contentType string
	body        []byte
}

// fakeObjects implements objectAPI without a network.
type fakeObjects struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr error
	puts   []putCall

	getRC  io.ReadCloser
	getErr error

	removeErr error
	removed   []string

	statErr error
}

func (f *fakeObjects) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeObjects) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeObjects) PutObject(_ context.Context, bucket, key string, reader io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	if f.putErr != nil {
		return minioLib.UploadInfo{}, f.putErr
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return minioLib.UploadInfo{}, err
	}
	f.puts = append(f.puts, putCall{bucket: bucket, key: key, size: size, contentType: opts.ContentType, body: body})
	return minioLib.UploadInfo{Bucket: bucket, Key: key, Size: int64(len(body))}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, _, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}

func (f *fakeObjects) RemoveObject(_ context.Context, _, key string, _ minioLib.RemoveObjectOptions) error {
	f.removed = append(f.removed, key)
	return f.removeErr
}

func (f *fakeObjects) StatObject(_ context.Context, _, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func TestNewClient_Bucket(t *testing.T) {
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		api := &fakeObjects{bucketExists: true}
		c, err := newClient(ctx, api, "images")
		require.NoError(t, err)
		assert.Equal(t, "images", c.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("created", func(t *testing.T) {
		api := &fakeObjects{}
		_, err := newClient(ctx, api, "images")
		require.NoError(t, err)
		assert.Equal(t, "images", api.madeBucket)
	})

	t.Run("check fails", func(t *testing.T) {
		c, err := newClient(ctx, &fakeObjects{bucketExistsErr: errors.New("boom")}, "images")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ensure bucket exists")
	})

	t.Run("create fails", func(t *testing.T) {
		c, err := newClient(ctx, &fakeObjects{makeBucketErr: errors.New("fail")}, "images")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create bucket")
	})
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores body and content type", func(t *testing.T) {
		api := &fakeObjects{}
		c := &Client{api: api, bucket: "images"}

		err := c.Upload(ctx, "events/1/image", bytes.NewReader([]byte("png")), 3, "image/png")
		require.NoError(t, err)
		require.Len(t, api.puts, 1)
		assert.Equal(t, putCall{bucket: "images", key: "events/1/image", size: 3, contentType: "image/png", body: []byte("png")}, api.puts[0])
	})

	t.Run("default content type", func(t *testing.T) {
		api := &fakeObjects{}
		c := &Client{api: api, bucket: "images"}

		require.NoError(t, c.Upload(ctx, "k", bytes.NewReader(nil), -1, ""))
		assert.Equal(t, "application/octet-stream", api.puts[0].contentType)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeObjects{putErr: errors.New("put-fail")}, bucket: "images"}
		err := c.Upload(ctx, "k", bytes.NewReader([]byte("data")), 4, "image/png")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		c := &Client{api: &fakeObjects{getRC: io.NopCloser(bytes.NewReader([]byte("abc")))}, bucket: "images"}
		rc, err := c.Download(ctx, "k")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(data))
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeObjects{getErr: errors.New("get-fail")}, bucket: "images"}
		rc, err := c.Download(ctx, "k")
		assert.Nil(t, rc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	api := &fakeObjects{}
	c := &Client{api: api, bucket: "images"}
	require.NoError(t, c.Delete(ctx, "events/1/image"))
	assert.Equal(t, []string{"events/1/image"}, api.removed)

	c = &Client{api: &fakeObjects{removeErr: errors.New("remove-fail")}, bucket: "images"}
	err := c.Delete(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete object")
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		statErr error
		want    bool
		wantErr bool
	}{
		{name: "exists", want: true},
		{name: "not found", statErr: minioLib.ErrorResponse{Code: "NoSuchKey"}},
		{name: "other error", statErr: errors.New("stat-fail"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{api: &fakeObjects{statErr: tt.statErr}, bucket: "images"}
			ok, err := c.Exists(ctx, "k")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to stat object")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestClient_Ping(t *testing.T) {
	ctx := context.Background()

	c := &Client{api: &fakeObjects{bucketExists: true}, bucket: "images"}
	assert.NoError(t, c.Ping(ctx))

	c = &Client{api: &fakeObjects{bucketExistsErr: errors.New("down")}, bucket: "images"}
	assert.Error(t, c.Ping(ctx))
}
