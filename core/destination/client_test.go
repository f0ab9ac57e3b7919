package destination

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetItem_NotFoundIsAbsentNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	item, err := client.GetItem(context.Background(), "coll", "gone")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestGetItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/coll/items/D1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"id": "D1", "isDraft": false, "fieldData": {"source-id": "100", "name": "Chair"}}`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	item, err := client.GetItem(context.Background(), "coll", "D1")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "D1", item.ID)
	assert.Equal(t, "100", item.SourceID())
}

func TestUpdateItem_SendsOverlayOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/collections/coll/items/D1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// Only the overlay goes over the wire; visibility stays untouched
		// when no draft flag is given.
		assert.Equal(t, map[string]any{"name": "New"}, body["fieldData"])
		_, hasDraft := body["isDraft"]
		assert.False(t, hasDraft)

		fmt.Fprint(w, `{"id": "D1", "fieldData": {"name": "New"}}`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	item, err := client.UpdateItem(context.Background(), "coll", "D1", map[string]any{"name": "New"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "D1", item.ID)
}

func TestUpdateItem_DraftFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["isDraft"])
		fmt.Fprint(w, `{"id": "D1"}`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	draft := true
	_, err := client.UpdateItem(context.Background(), "coll", "D1", map[string]any{}, &draft)
	require.NoError(t, err)
}

func TestCreateItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/coll/items", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, false, body["isDraft"])

		fmt.Fprint(w, `{"id": "D2", "fieldData": {"source-id": "100"}}`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	item, err := client.CreateItem(context.Background(), "coll", map[string]any{"source-id": "100"}, false)
	require.NoError(t, err)
	assert.Equal(t, "D2", item.ID)
}

func TestListItems_Pagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("offset"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"items": [{"id": "D1"}], "count": 1, "offset": 25, "total": 26}`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	page, err := client.ListItems(context.Background(), "coll", 25)
	require.NoError(t, err)
	assert.Equal(t, 26, page.Total)
	require.Len(t, page.Items, 1)
}

func TestAssetCreateAndUpload(t *testing.T) {
	var uploaded bool
	uploadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		// Upload parameters returned by asset creation are forwarded as
		// form fields alongside the binary.
		assert.Equal(t, "policy-123", r.FormValue("policy"))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "chair.jpg", header.Filename)
		uploaded = true
	}))
	defer uploadSrv.Close()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site1/assets", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "chair.jpg", body["fileName"])
		assert.Equal(t, "abc123", body["fileHash"])

		resp := map[string]any{
			"id":            "A1",
			"hostedUrl":     "https://cdn.example.com/chair.jpg",
			"uploadUrl":     uploadSrv.URL,
			"uploadDetails": map[string]string{"policy": "policy-123"},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer apiSrv.Close()

	client := NewClient(Config{BaseURL: apiSrv.URL, Token: "tok"})
	upload, err := client.CreateAsset(context.Background(), "site1", "chair.jpg", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "A1", upload.ID)

	require.NoError(t, client.UploadAsset(context.Background(), upload, "chair.jpg", []byte("bytes")))
	assert.True(t, uploaded)
}

func TestListAssets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site1/assets", r.URL.Path)
		fmt.Fprint(w, `{"assets": [{"id": "A1", "fileHash": "abc", "hostedUrl": "https://cdn/x.jpg"}], "total": 1}`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "tok"})
	page, err := client.ListAssets(context.Background(), "site1", 0)
	require.NoError(t, err)
	require.Len(t, page.Assets, 1)
	assert.Equal(t, "abc", page.Assets[0].FileHash)
}
