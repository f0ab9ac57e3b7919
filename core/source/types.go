package source

import "time"

// Image is a single product image reference. Order within a product is
// significant and owned by the source system.
type Image struct {
	// ID is the stable identifier of the image.
	ID string `json:"id"`
	// URL is the location the binary can be downloaded from.
	URL string `json:"url"`
}

// Product is the authoritative upstream catalog record being mirrored.
// The sync engine only reads it; all mutable fields are owned by the source.
type Product struct {
	// ID is the opaque identity of the record, stable across syncs.
	ID string `json:"id"`
	// Title is the display name.
	Title string `json:"title"`
	// Vendor is the brand or supplier name.
	Vendor string `json:"vendor"`
	// Description is the rich (HTML) description body.
	Description string `json:"description"`
	// Handle is the stable URL slug assigned by the source.
	Handle string `json:"handle"`
	// Price is the decimal price string of the primary variant.
	Price string `json:"price"`
	// Quantity is the total sellable inventory across variants.
	Quantity int `json:"quantity"`
	// Images is the ordered image list; position matters for sync.
	Images []Image `json:"images"`
	// CreatedAt is the creation timestamp in the source system.
	CreatedAt time.Time `json:"created_at"`
}
