package mocks

import (
	"context"

	"catalog-sync/core/destination"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of destination.Client
type Client struct {
	mock.Mock
}

func (m *Client) GetItem(ctx context.Context, collectionID, itemID string) (*destination.Item, error) {
	args := m.Called(ctx, collectionID, itemID)
	if item, ok := args.Get(0).(*destination.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) ListItems(ctx context.Context, collectionID string, offset int) (*destination.ItemPage, error) {
	args := m.Called(ctx, collectionID, offset)
	if page, ok := args.Get(0).(*destination.ItemPage); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateItem(ctx context.Context, collectionID string, fields map[string]any, draft bool) (*destination.Item, error) {
	args := m.Called(ctx, collectionID, fields, draft)
	if item, ok := args.Get(0).(*destination.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) UpdateItem(ctx context.Context, collectionID, itemID string, fields map[string]any, draft *bool) (*destination.Item, error) {
	args := m.Called(ctx, collectionID, itemID, fields, draft)
	if item, ok := args.Get(0).(*destination.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CreateAsset(ctx context.Context, siteID, fileName, fileHash string) (*destination.AssetUpload, error) {
	args := m.Called(ctx, siteID, fileName, fileHash)
	if upload, ok := args.Get(0).(*destination.AssetUpload); ok {
		return upload, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) UploadAsset(ctx context.Context, upload *destination.AssetUpload, fileName string, data []byte) error {
	args := m.Called(ctx, upload, fileName, data)
	return args.Error(0)
}

func (m *Client) ListAssets(ctx context.Context, siteID string, offset int) (*destination.AssetPage, error) {
	args := m.Called(ctx, siteID, offset)
	if page, ok := args.Get(0).(*destination.AssetPage); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}
