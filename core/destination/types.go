package destination

import "strconv"

// Item is a record in a destination CMS collection.
//
// FieldData carries the collection's schema fields. The sync engine only ever
// writes field overlays; fields it does not own (editor-managed copy, the
// published slug) must survive every update untouched.
type Item struct {
	// ID is the destination-assigned item identifier.
	ID string `json:"id"`
	// IsDraft is the visibility flag; draft items are not published.
	IsDraft bool `json:"isDraft"`
	// FieldData holds the collection fields keyed by field slug.
	FieldData map[string]any `json:"fieldData"`
}

// SourceID returns the back-reference to the source record, if present.
func (i *Item) SourceID() string {
	if i == nil || i.FieldData == nil {
		return ""
	}
	if v, ok := i.FieldData[FieldSourceID].(string); ok {
		return v
	}
	return ""
}

// Field slugs the sync engine reads or writes. Everything else in FieldData
// belongs to the destination and is preserved as-is.
const (
	FieldName     = "name"
	FieldSlug     = "slug"
	FieldSourceID = "source-id"
	FieldVendor   = "vendor"
	FieldBody     = "description"
	FieldPrice    = "price"
	FieldCategory = "category"
	FieldSold     = "sold"
	FieldImage    = "main-image"
)

// GalleryField returns the field slug for gallery slot n (1-based).
func GalleryField(n int) string {
	return "gallery-" + strconv.Itoa(n)
}

// ItemPage is one page of a collection listing.
type ItemPage struct {
	Items  []Item `json:"items"`
	Count  int    `json:"count"`
	Offset int    `json:"offset"`
	Total  int    `json:"total"`
}

// Asset is a hosted binary in the destination's asset library.
type Asset struct {
	// ID is the destination-assigned asset identifier.
	ID string `json:"id"`
	// HostedURL is the public URL the asset is served from.
	HostedURL string `json:"hostedUrl"`
	// FileHash is the content hash the asset was registered under.
	FileHash string `json:"fileHash"`
	// OriginalFileName is the name supplied at creation time.
	OriginalFileName string `json:"originalFileName"`
}

// AssetPage is one page of an asset listing.
type AssetPage struct {
	Assets []Asset `json:"assets"`
	Count  int     `json:"count"`
	Offset int     `json:"offset"`
	Total  int     `json:"total"`
}

// AssetUpload is the one-time upload target returned by asset creation.
// The binary must be posted to UploadURL with UploadDetails as form fields.
type AssetUpload struct {
	ID            string            `json:"id"`
	HostedURL     string            `json:"hostedUrl"`
	UploadURL     string            `json:"uploadUrl"`
	UploadDetails map[string]string `json:"uploadDetails"`
}
