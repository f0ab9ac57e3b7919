package sync

import (
	"time"

	"catalog-sync/core/source"
)

// Operation is the single action the engine picks for one source record.
type Operation string

const (
	// OpCreate creates a brand-new destination item.
	OpCreate Operation = "create"
	// OpUpdate patches an existing destination item with changed fields.
	OpUpdate Operation = "update"
	// OpSold marks a destination item as sold (edge-triggered).
	OpSold Operation = "sold"
	// OpSkip issues no destination write; only cache freshness is refreshed.
	OpSkip Operation = "skip"
	// OpSkipMissing records that a previously-synced item vanished from the
	// destination out-of-band. No create is issued, ever.
	OpSkipMissing Operation = "skip-missing"
)

// Summary aggregates one full sync pass. It is always produced, even when
// individual records fail; a pass never fails as a whole because of them.
type Summary struct {
	Created        int `json:"created"`
	Updated        int `json:"updated"`
	Sold           int `json:"sold"`
	Skipped        int `json:"skipped"`
	SkippedMissing int `json:"skipped_missing"`
	Swept          int `json:"swept"`
	Errors         int `json:"errors"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DryRun     bool      `json:"dry_run"`
}

func (s *Summary) record(op Operation) {
	switch op {
	case OpCreate:
		s.Created++
	case OpUpdate:
		s.Updated++
	case OpSold:
		s.Sold++
	case OpSkip:
		s.Skipped++
	case OpSkipMissing:
		s.SkippedMissing++
	}
}

// Options controls a single pass.
type Options struct {
	// DryRun decides operations without issuing destination writes or
	// mutating the persistent caches.
	DryRun bool
}

// Vertical names. Each vertical maps to its own destination collection and
// its own mark-sold shape.
const (
	VerticalApparel   = "apparel"
	VerticalEquipment = "equipment"
)

// Route describes how one vertical maps onto the destination.
type Route struct {
	// CollectionID is the destination collection items of this vertical live in.
	CollectionID string
	// HideWhenSold selects the mark-sold shape: when true, sold items are
	// unpublished and get the "sold" category; when false, a boolean sold
	// field is set and visibility is preserved.
	HideWhenSold bool
}

// Router maps a vertical label to its destination route.
type Router map[string]Route

// Classifier assigns a vertical label to a source product. It must be a pure
// function; the engine never depends on how the label was derived.
type Classifier func(source.Product) string

// StaticClassifier returns a classifier that assigns every product to the
// same vertical.
func StaticClassifier(vertical string) Classifier {
	return func(source.Product) string { return vertical }
}
