package sync

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"strconv"

	"catalog-sync/core/source"
)

// Field and record separators keep the projection unambiguous: two different
// field sequences can never concatenate to the same byte stream.
const (
	unitSep = "\x1f"
	recSep  = "\x1e"
)

// Fingerprint computes a deterministic digest of every product field whose
// change must trigger a destination update: name, vendor, description, price,
// quantity, the ordered image list and the handle.
//
// Image order is significant; reordering the same set of images produces a
// different fingerprint. The digest is SHA-1, which is collision-resistant
// enough that fingerprint equality is the sole signal used to skip a write.
func Fingerprint(p source.Product) string {
	h := sha1.New()

	field := func(name, value string) {
		io.WriteString(h, name)
		io.WriteString(h, unitSep)
		io.WriteString(h, value)
		io.WriteString(h, recSep)
	}

	field("title", p.Title)
	field("vendor", p.Vendor)
	field("description", p.Description)
	field("price", p.Price)
	field("quantity", strconv.Itoa(p.Quantity))
	field("handle", p.Handle)
	for i, img := range p.Images {
		field("image."+strconv.Itoa(i), imageRef(img))
	}

	return hex.EncodeToString(h.Sum(nil))
}

// imageRef returns the identifier used for an image in the projection,
// preferring the stable image ID over the URL.
func imageRef(img source.Image) string {
	if img.ID != "" {
		return img.ID
	}
	return img.URL
}
