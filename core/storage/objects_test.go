package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"atlan-sdk/core/storage"
	"atlan-sdk/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "reports").Return(true, nil)
		require.NoError(t, storage.EnsureBucket(ctx, m, "reports", ""))
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "reports").Return(false, nil)
		m.On("MakeBucket", ctx, "reports", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)
		require.NoError(t, storage.EnsureBucket(ctx, m, "reports", "eu-west-1"))
		m.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", ctx, "reports").Return(false, errors.New("denied"))
		assert.ErrorContains(t, storage.EnsureBucket(ctx, m, "reports", ""), "denied")
	})
}

func TestPutJSON(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	var uploaded string
	m.On("PutObject", ctx, "reports", "run.json", mock.Anything, mock.AnythingOfType("int64"),
		minio.PutObjectOptions{ContentType: "application/json"}).
		Run(func(args mock.Arguments) {
			data, _ := io.ReadAll(args.Get(3).(io.Reader))
			uploaded = string(data)
		}).
		Return(minio.UploadInfo{Key: "run.json"}, nil)

	info, err := storage.PutJSON(ctx, m, "reports", "run.json", map[string]int{"created": 2})
	require.NoError(t, err)
	assert.Equal(t, "run.json", info.Key)
	assert.JSONEq(t, `{"created":2}`, uploaded)
}

func TestReadObject(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	m.On("GetObject", ctx, "in", "a.json", minio.GetObjectOptions{}).
		Return(io.NopCloser(strings.NewReader(`[1]`)), nil)
	m.On("GetObject", ctx, "in", "missing.json", minio.GetObjectOptions{}).
		Return(nil, errors.New("no such key"))

	data, err := storage.ReadObject(ctx, m, "in", "a.json")
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(data))

	_, err = storage.ReadObject(ctx, m, "in", "missing.json")
	assert.ErrorContains(t, err, "no such key")
}

func TestListNames(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "assets/b.json"}
	ch <- minio.ObjectInfo{Key: "assets/readme.txt"}
	ch <- minio.ObjectInfo{Key: "assets/a.json"}
	close(ch)
	m.On("ListObjects", ctx, "in", minio.ListObjectsOptions{Prefix: "assets/", Recursive: true}).Return((<-chan minio.ObjectInfo)(ch))

	names, err := storage.ListNames(ctx, m, "in", "assets/", ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/a.json", "assets/b.json"}, names)
}
