package state

import (
	"bytes"
	"context"
	"io"
	"testing"

	"catalog-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBucketStore_ReadPrefixesObjectName(t *testing.T) {
	client := new(mocks.Client)
	store := NewBucketStore(client, "bucket", "state")

	client.On("GetObject", mock.Anything, "bucket", "state/sync-cache.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(`{"a":1}`))), nil)

	data, err := store.Read(context.Background(), "sync-cache.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))
	client.AssertExpectations(t)
}

func TestBucketStore_Write(t *testing.T) {
	client := new(mocks.Client)
	store := NewBucketStore(client, "bucket", "state")

	client.On("PutObject", mock.Anything, "bucket", "state/doc.json",
		mock.Anything, int64(2), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	require.NoError(t, store.Write(context.Background(), "doc.json", []byte(`{}`)))
	client.AssertExpectations(t)
}

func TestBucketStore_WriteError(t *testing.T) {
	client := new(mocks.Client)
	store := NewBucketStore(client, "bucket", "")

	client.On("PutObject", mock.Anything, "bucket", "doc.json",
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	assert.Error(t, store.Write(context.Background(), "doc.json", []byte(`{}`)))
}
