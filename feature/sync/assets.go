package sync

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"catalog-sync/core/destination"
	"catalog-sync/core/source"
	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ResolvedImage is the outcome of resolving one image reference.
//
// Hosted distinguishes the two valid results: true means the URL points at a
// deduplicated destination asset; false means resolution degraded and the URL
// is the raw source reference. There is no error result at this level: a
// failed pipeline is a degraded success, never a record failure.
type ResolvedImage struct {
	URL     string
	AssetID string
	Hosted  bool
}

// AssetResolver deduplicates binary assets by content hash. For a given site,
// a given content hash is uploaded at most once across the cache's lifetime:
// both the local cache and the remote asset listing are consulted before any
// upload is attempted.
type AssetResolver struct {
	dst    destination.Client
	store  storage.Client // optional, for s3:// references
	bucket string
	cache  *AssetCache
	http   *http.Client
	logger *zap.Logger
}

// NewAssetResolver creates a resolver. store may be nil when object storage
// is not configured; s3:// references then degrade to the raw URL.
func NewAssetResolver(dst destination.Client, store storage.Client, bucket string, cache *AssetCache, logger *zap.Logger) *AssetResolver {
	return &AssetResolver{
		dst:    dst,
		store:  store,
		bucket: bucket,
		cache:  cache,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Resolve downloads the image, hashes its content and returns the hosted
// destination asset for that hash, uploading the binary only if no copy
// exists yet. Every failure degrades to the raw reference URL.
func (r *AssetResolver) Resolve(ctx context.Context, siteID string, img source.Image) ResolvedImage {
	fallback := ResolvedImage{URL: img.URL}

	data, err := r.download(ctx, img.URL)
	if err != nil {
		r.logger.Warn("Image download failed, using raw reference",
			zap.String("url", img.URL), zap.Error(err))
		return fallback
	}

	sum := sha1.Sum(data)
	hash := hex.EncodeToString(sum[:])

	// Local cache hit: no network call at all.
	if entry, ok := r.cache.Get(siteID, hash); ok {
		return ResolvedImage{URL: entry.HostedURL, AssetID: entry.AssetID, Hosted: true}
	}

	// The local cache is not authoritative across restarts or fresh
	// environments; check the remote listing before concluding the binary
	// is new.
	if entry, found, err := r.findRemote(ctx, siteID, hash); err != nil {
		r.logger.Warn("Asset listing failed, using raw reference",
			zap.String("hash", hash), zap.Error(err))
		return fallback
	} else if found {
		r.cache.Put(siteID, hash, entry)
		r.cache.Save(ctx)
		return ResolvedImage{URL: entry.HostedURL, AssetID: entry.AssetID, Hosted: true}
	}

	// Genuinely new content: create the asset record, then upload the
	// binary to the one-time target it returned. No partial cache entry is
	// written on failure.
	fileName := assetFileName(img.URL, hash)
	upload, err := r.dst.CreateAsset(ctx, siteID, fileName, hash)
	if err != nil {
		r.logger.Warn("Asset creation failed, using raw reference",
			zap.String("hash", hash), zap.Error(err))
		return fallback
	}
	if err := r.dst.UploadAsset(ctx, upload, fileName, data); err != nil {
		r.logger.Warn("Asset upload failed, using raw reference",
			zap.String("hash", hash), zap.Error(err))
		return fallback
	}

	entry := AssetCacheEntry{AssetID: upload.ID, HostedURL: upload.HostedURL}
	r.cache.Put(siteID, hash, entry)
	r.cache.Save(ctx)

	return ResolvedImage{URL: entry.HostedURL, AssetID: entry.AssetID, Hosted: true}
}

// findRemote walks the paginated asset listing looking for a content hash.
func (r *AssetResolver) findRemote(ctx context.Context, siteID, hash string) (AssetCacheEntry, bool, error) {
	offset := 0
	for {
		page, err := r.dst.ListAssets(ctx, siteID, offset)
		if err != nil {
			return AssetCacheEntry{}, false, err
		}
		for _, asset := range page.Assets {
			if asset.FileHash == hash {
				return AssetCacheEntry{AssetID: asset.ID, HostedURL: asset.HostedURL}, true, nil
			}
		}
		offset += len(page.Assets)
		if len(page.Assets) == 0 || offset >= page.Total {
			return AssetCacheEntry{}, false, nil
		}
	}
}

// download fetches an image reference. References may be http(s) URLs,
// s3://bucket/key objects or local file paths.
func (r *AssetResolver) download(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, "s3://"):
		return r.downloadObject(ctx, ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return r.downloadHTTP(ctx, ref)
	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read local image %s: %w", ref, err)
		}
		return data, nil
	}
}

func (r *AssetResolver) downloadHTTP(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image host returned %d for %s", resp.StatusCode, ref)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	return data, nil
}

func (r *AssetResolver) downloadObject(ctx context.Context, ref string) ([]byte, error) {
	if r.store == nil {
		return nil, fmt.Errorf("object storage not configured for %s", ref)
	}
	trimmed := strings.TrimPrefix(ref, "s3://")
	bucket, key, ok := strings.Cut(trimmed, "/")
	if !ok {
		return nil, fmt.Errorf("malformed object reference %s", ref)
	}
	if bucket == "" {
		bucket = r.bucket
	}
	obj, err := r.store.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", ref, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", ref, err)
	}
	return data, nil
}

// assetFileName derives an upload file name from the reference, falling back
// to the content hash when the reference has no usable name.
func assetFileName(ref, hash string) string {
	if u, err := url.Parse(ref); err == nil {
		if name := path.Base(u.Path); name != "" && name != "." && name != "/" {
			return name
		}
	}
	return hash + ".bin"
}
