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

	"github.com/dtroode/shopfront/internal/model"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr    error
	putName   string
	putBody   []byte
	putSize   int64
	putOpts   minioLib.PutObjectOptions
	getRC     io.ReadCloser
	getErr    error
	getName   string
	removeErr error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, name string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putName = name
	f.putSize = size
	f.putOpts = opts
	f.putBody, _ = io.ReadAll(r)
	return minioLib.UploadInfo{}, f.putErr
}
func (f *fakeMinio) GetObject(_ context.Context, _ string, name string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	f.getName = name
	return f.getRC, f.getErr
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, _ string, _ minioLib.RemoveObjectOptions) error {
	return f.removeErr
}

// failingReader fails the first Read the way a lazily-fetched minio object does.
type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }
func (r failingReader) Close() error             { return nil }

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "b", "kv/")
	require.NoError(t, err)
	assert.Equal(t, "b", c.bucket)
	assert.Empty(t, api.madeBucket)
}

func TestNewClientWithAPI_CreateBucket(t *testing.T) {
	api := &fakeMinio{bucketExists: false}
	c, err := NewClientWithAPI(context.Background(), api, "bucket", "")
	require.NoError(t, err)
	assert.Equal(t, "bucket", c.bucket)
	assert.Equal(t, "bucket", api.madeBucket)
}

func TestNewClientWithAPI_Errors(t *testing.T) {
	t.Run("bucket exists error", func(t *testing.T) {
		c, err := NewClientWithAPI(context.Background(), &fakeMinio{bucketExistsErr: errors.New("boom")}, "bucket", "")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ensure bucket exists")
	})

	t.Run("make bucket error", func(t *testing.T) {
		c, err := NewClientWithAPI(context.Background(), &fakeMinio{makeBucketErr: errors.New("fail")}, "bucket", "")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ensure bucket exists")
	})
}

func TestClient_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b", prefix: "kv/"}
		require.NoError(t, c.Put(ctx, "users", []byte(`[]`)))
		assert.Equal(t, "kv/users.json", api.putName)
		assert.Equal(t, []byte(`[]`), api.putBody)
		assert.Equal(t, int64(2), api.putSize)
		assert.Equal(t, "application/json", api.putOpts.ContentType)
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{putErr: errors.New("put-fail")}, bucket: "b"}
		err := c.Put(ctx, "users", []byte(`[]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{getRC: io.NopCloser(bytes.NewReader([]byte(`{"a":1}`)))}
		c := &Client{api: api, bucket: "b", prefix: "kv/"}
		got, err := c.Get(ctx, "currentUser")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), got)
		assert.Equal(t, "kv/currentUser.json", api.getName)
	})

	t.Run("missing on read", func(t *testing.T) {
		api := &fakeMinio{getRC: failingReader{err: minioLib.ErrorResponse{Code: "NoSuchKey"}}}
		c := &Client{api: api, bucket: "b"}
		_, err := c.Get(ctx, "currentUser")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("missing on get", func(t *testing.T) {
		c := &Client{api: &fakeMinio{getErr: minioLib.ErrorResponse{Code: "NoSuchKey"}}, bucket: "b"}
		_, err := c.Get(ctx, "currentUser")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("get error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{getErr: errors.New("get-fail")}, bucket: "b"}
		_, err := c.Get(ctx, "currentUser")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get object")
	})

	t.Run("read error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{getRC: failingReader{err: errors.New("reset")}}, bucket: "b"}
		_, err := c.Get(ctx, "currentUser")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		c := &Client{api: &fakeMinio{}, bucket: "b"}
		assert.NoError(t, c.Delete(ctx, "currentUser"))
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{removeErr: errors.New("remove-fail")}, bucket: "b"}
		err := c.Delete(ctx, "currentUser")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete object")
	})
}
