package destination

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"time"
)

// ListPageSize is the page size used for collection and asset listings.
const ListPageSize = 100

// Client defines the interface for destination CMS operations.
type Client interface {
	// GetItem performs a direct point lookup. A 404 is not an error; it
	// returns (nil, nil) so callers can treat absence as a normal branch.
	GetItem(ctx context.Context, collectionID, itemID string) (*Item, error)
	// ListItems returns one page of a collection, starting at offset.
	ListItems(ctx context.Context, collectionID string, offset int) (*ItemPage, error)
	// CreateItem creates a new item from a field overlay.
	CreateItem(ctx context.Context, collectionID string, fields map[string]any, draft bool) (*Item, error)
	// UpdateItem patches an item with a field overlay. Fields absent from
	// the overlay are left untouched by the destination. A nil draft leaves
	// the visibility flag as-is.
	UpdateItem(ctx context.Context, collectionID, itemID string, fields map[string]any, draft *bool) (*Item, error)
	// CreateAsset registers asset metadata and returns a one-time upload
	// target for the binary.
	CreateAsset(ctx context.Context, siteID, fileName, fileHash string) (*AssetUpload, error)
	// UploadAsset posts the binary to the upload target returned by CreateAsset.
	UploadAsset(ctx context.Context, upload *AssetUpload, fileName string, data []byte) error
	// ListAssets returns one page of the site's asset library.
	ListAssets(ctx context.Context, siteID string, offset int) (*AssetPage, error)
}

type httpClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a destination API client from configuration.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Transport: transport},
	}
}

// errNotFound is an internal marker for 404 responses; exported methods
// translate it to a nil result.
var errNotFound = fmt.Errorf("destination: not found")

func (c *httpClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("destination request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("destination API returned %d for %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode destination response: %w", err)
		}
	}
	return nil
}

func (c *httpClient) GetItem(ctx context.Context, collectionID, itemID string) (*Item, error) {
	var item Item
	err := c.do(ctx, http.MethodGet, "/collections/"+collectionID+"/items/"+itemID, nil, &item)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *httpClient) ListItems(ctx context.Context, collectionID string, offset int) (*ItemPage, error) {
	var page ItemPage
	path := fmt.Sprintf("/collections/%s/items?offset=%d&limit=%d", collectionID, offset, ListPageSize)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *httpClient) CreateItem(ctx context.Context, collectionID string, fields map[string]any, draft bool) (*Item, error) {
	payload := map[string]any{
		"isDraft":   draft,
		"fieldData": fields,
	}
	var item Item
	if err := c.do(ctx, http.MethodPost, "/collections/"+collectionID+"/items", payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *httpClient) UpdateItem(ctx context.Context, collectionID, itemID string, fields map[string]any, draft *bool) (*Item, error) {
	// Overlay semantics: only fieldData keys present in the payload change.
	payload := map[string]any{
		"fieldData": fields,
	}
	if draft != nil {
		payload["isDraft"] = *draft
	}
	var item Item
	if err := c.do(ctx, http.MethodPatch, "/collections/"+collectionID+"/items/"+itemID, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *httpClient) CreateAsset(ctx context.Context, siteID, fileName, fileHash string) (*AssetUpload, error) {
	payload := map[string]any{
		"fileName": fileName,
		"fileHash": fileHash,
	}
	var upload AssetUpload
	if err := c.do(ctx, http.MethodPost, "/sites/"+siteID+"/assets", payload, &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}

func (c *httpClient) UploadAsset(ctx context.Context, upload *AssetUpload, fileName string, data []byte) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	// Upload parameters from asset creation go in first, then the file part.
	for key, value := range upload.UploadDetails {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write upload field %s: %w", key, err)
		}
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("failed to create upload file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to write upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, upload.UploadURL, &buf)
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("asset upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("asset upload target returned %d", resp.StatusCode)
	}
	return nil
}

func (c *httpClient) ListAssets(ctx context.Context, siteID string, offset int) (*AssetPage, error) {
	var page AssetPage
	path := fmt.Sprintf("/sites/%s/assets?offset=%d&limit=%d", siteID, offset, ListPageSize)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
