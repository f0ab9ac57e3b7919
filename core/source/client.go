package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"
)

const maxPageSize = 250

// Client defines the interface for source platform operations.
type Client interface {
	// ListProducts returns every product in the catalog, walking the
	// paginated listing until it is exhausted.
	ListProducts(ctx context.Context) ([]Product, error)
	// GetProduct reads a single product by ID.
	GetProduct(ctx context.Context, id string) (*Product, error)
	// UpdateVendor sets the vendor field on a product.
	UpdateVendor(ctx context.Context, id, vendor string) error
	// SetMetafield writes a structured metadata key/value onto a product.
	SetMetafield(ctx context.Context, id, namespace, key, value string) error
}

type httpClient struct {
	baseURL  string
	token    string
	pageSize int
	http     *http.Client
}

// NewClient creates a source API client from configuration.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	// Same strict-timeout transport shape as the storage client.
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
		baseURL:  cfg.BaseURL,
		token:    cfg.Token,
		pageSize: pageSize,
		http:     &http.Client{Transport: transport},
	}
}

// wireImage and wireProduct mirror the source API's JSON shapes; numeric IDs
// are converted to opaque strings at the client boundary.
type wireImage struct {
	ID       int64  `json:"id"`
	Src      string `json:"src"`
	Position int    `json:"position"`
}

type wireVariant struct {
	Price             string `json:"price"`
	InventoryQuantity int    `json:"inventory_quantity"`
}

type wireProduct struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Vendor    string        `json:"vendor"`
	BodyHTML  string        `json:"body_html"`
	Handle    string        `json:"handle"`
	CreatedAt time.Time     `json:"created_at"`
	Variants  []wireVariant `json:"variants"`
	Images    []wireImage   `json:"images"`
}

func (w wireProduct) toProduct() Product {
	p := Product{
		ID:          strconv.FormatInt(w.ID, 10),
		Title:       w.Title,
		Vendor:      w.Vendor,
		Description: w.BodyHTML,
		Handle:      w.Handle,
		CreatedAt:   w.CreatedAt,
	}
	if len(w.Variants) > 0 {
		p.Price = w.Variants[0].Price
	}
	for _, v := range w.Variants {
		p.Quantity += v.InventoryQuantity
	}
	for _, img := range w.Images {
		p.Images = append(p.Images, Image{
			ID:  strconv.FormatInt(img.ID, 10),
			URL: img.Src,
		})
	}
	return p
}

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
	req.Header.Set("X-Access-Token", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("source request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("source API returned %d for %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode source response: %w", err)
		}
	}
	return nil
}

func (c *httpClient) ListProducts(ctx context.Context) ([]Product, error) {
	var all []Product
	sinceID := int64(0)

	for {
		var page struct {
			Products []wireProduct `json:"products"`
		}
		path := fmt.Sprintf("/products.json?limit=%d&since_id=%d", c.pageSize, sinceID)
		if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}

		for _, w := range page.Products {
			all = append(all, w.toProduct())
			if w.ID > sinceID {
				sinceID = w.ID
			}
		}

		if len(page.Products) < c.pageSize {
			return all, nil
		}
	}
}

func (c *httpClient) GetProduct(ctx context.Context, id string) (*Product, error) {
	var body struct {
		Product wireProduct `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, "/products/"+id+".json", nil, &body); err != nil {
		return nil, err
	}
	p := body.Product.toProduct()
	return &p, nil
}

func (c *httpClient) UpdateVendor(ctx context.Context, id, vendor string) error {
	payload := map[string]any{
		"product": map[string]any{
			"vendor": vendor,
		},
	}
	return c.do(ctx, http.MethodPut, "/products/"+id+".json", payload, nil)
}

func (c *httpClient) SetMetafield(ctx context.Context, id, namespace, key, value string) error {
	payload := map[string]any{
		"metafield": map[string]any{
			"namespace": namespace,
			"key":       key,
			"value":     value,
			"type":      "single_line_text_field",
		},
	}
	return c.do(ctx, http.MethodPost, "/products/"+id+"/metafields.json", payload, nil)
}
