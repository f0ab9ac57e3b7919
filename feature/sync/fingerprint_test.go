package sync

import (
	"testing"

	"catalog-sync/core/source"

	"github.com/stretchr/testify/assert"
)

func baseProduct() source.Product {
	return source.Product{
		ID:          "100",
		Title:       "Steel Frame",
		Vendor:      "Acme",
		Description: "<p>Good as new</p>",
		Handle:      "steel-frame",
		Price:       "249.00",
		Quantity:    3,
		Images: []source.Image{
			{ID: "i1", URL: "https://img.example.com/1.jpg"},
			{ID: "i2", URL: "https://img.example.com/2.jpg"},
		},
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint(baseProduct())
	b := Fingerprint(baseProduct())
	assert.Equal(t, a, b)
}

func TestFingerprint_FieldSensitivity(t *testing.T) {
	base := Fingerprint(baseProduct())

	tests := []struct {
		name   string
		mutate func(*source.Product)
	}{
		{"title", func(p *source.Product) { p.Title = "Alloy Frame" }},
		{"vendor", func(p *source.Product) { p.Vendor = "Other" }},
		{"description", func(p *source.Product) { p.Description = "worn" }},
		{"price", func(p *source.Product) { p.Price = "199.00" }},
		{"quantity", func(p *source.Product) { p.Quantity = 0 }},
		{"handle", func(p *source.Product) { p.Handle = "steel-frame-2" }},
		{"image added", func(p *source.Product) {
			p.Images = append(p.Images, source.Image{ID: "i3"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProduct()
			tt.mutate(&p)
			assert.NotEqual(t, base, Fingerprint(p))
		})
	}
}

func TestFingerprint_ImageOrderMatters(t *testing.T) {
	p := baseProduct()
	base := Fingerprint(p)

	// Same set, different sequence
	p.Images[0], p.Images[1] = p.Images[1], p.Images[0]
	assert.NotEqual(t, base, Fingerprint(p))
}

func TestFingerprint_NoConcatenationAmbiguity(t *testing.T) {
	a := baseProduct()
	a.Title = "ab"
	a.Vendor = "c"

	b := baseProduct()
	b.Title = "a"
	b.Vendor = "bc"

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}
