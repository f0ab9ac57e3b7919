package sync

import (
	"context"
	"testing"

	"catalog-sync/core/destination"
	"catalog-sync/core/destination/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocator_ScanWalksPagination(t *testing.T) {
	dst := new(mocks.Client)
	locator := NewLocator(dst)

	dst.On("ListItems", mock.Anything, "coll", 0).Return(&destination.ItemPage{
		Items: []destination.Item{
			{ID: "D1", FieldData: map[string]any{destination.FieldSourceID: "1"}},
			{ID: "D2", FieldData: map[string]any{destination.FieldSourceID: "2"}},
		},
		Total: 3,
	}, nil)
	dst.On("ListItems", mock.Anything, "coll", 2).Return(&destination.ItemPage{
		Items: []destination.Item{
			{ID: "D3", FieldData: map[string]any{destination.FieldSourceID: "3"}},
		},
		Total: 3,
	}, nil)

	item, err := locator.FindBySourceID(context.Background(), "coll", "3")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "D3", item.ID)
}

func TestLocator_ScanExhaustsWithoutMatch(t *testing.T) {
	dst := new(mocks.Client)
	locator := NewLocator(dst)

	dst.On("ListItems", mock.Anything, "coll", 0).Return(&destination.ItemPage{
		Items: []destination.Item{
			{ID: "D1", FieldData: map[string]any{destination.FieldSourceID: "1"}},
		},
		Total: 1,
	}, nil)

	item, err := locator.FindBySourceID(context.Background(), "coll", "nope")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestLocator_PrefersCachedID(t *testing.T) {
	dst := new(mocks.Client)
	locator := NewLocator(dst)

	dst.On("GetItem", mock.Anything, "coll", "D1").
		Return(&destination.Item{ID: "D1"}, nil)

	item, err := locator.Locate(context.Background(), "coll", "D1", "100")
	require.NoError(t, err)
	require.NotNil(t, item)
	dst.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestLocator_FallsBackToScanOnDirectMiss(t *testing.T) {
	dst := new(mocks.Client)
	locator := NewLocator(dst)

	dst.On("GetItem", mock.Anything, "coll", "D1").Return(nil, nil)
	dst.On("ListItems", mock.Anything, "coll", 0).Return(&destination.ItemPage{
		Items: []destination.Item{
			{ID: "D5", FieldData: map[string]any{destination.FieldSourceID: "100"}},
		},
		Total: 1,
	}, nil)

	item, err := locator.Locate(context.Background(), "coll", "D1", "100")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "D5", item.ID)
}
