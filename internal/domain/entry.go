package domain

import (
	"math"
	"strings"
)

// DefaultAccessibility is applied when a draft leaves accessibility unset.
const DefaultAccessibility = 0.5

// Entry is one user-created activity.
//
// Entries are immutable once created: the store hands out copies and
// there is no edit operation.
type Entry struct {
	// ID is assigned by the store at creation and never reassigned.
	ID int64 `json:"id"`

	// Label describes the activity. Non-empty after trimming.
	Label string `json:"label"`

	// Price is kept as the raw text the user typed.
	// Only non-emptiness is checked, no numeric parsing.
	Price string `json:"price"`

	Category        Category `json:"category"`
	BookingRequired bool     `json:"bookingRequired"`

	// Accessibility is always within [0, 1].
	Accessibility float64 `json:"accessibility"`
}

// Draft carries the fields for a new entry.
// Zero values mean "omitted" and are replaced by defaults, except
// Accessibility which uses a pointer so that an explicit 0.0 survives.
type Draft struct {
	Label           string
	Price           string
	Category        Category
	BookingRequired bool
	Accessibility   *float64
}

// Accessibility returns a pointer to v, for filling Draft.Accessibility.
func Accessibility(v float64) *float64 {
	return &v
}

// Validate checks the required text fields.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Label) == "" {
		return &ValidationError{Field: "label"}
	}
	if strings.TrimSpace(d.Price) == "" {
		return &ValidationError{Field: "price"}
	}
	return nil
}

// Build turns a validated draft into an entry with the given id.
// Label and price are stored exactly as supplied.
func (d Draft) Build(id int64) Entry {
	category := d.Category
	if category == "" {
		category = DefaultCategory
	}

	accessibility := DefaultAccessibility
	if d.Accessibility != nil && !math.IsNaN(*d.Accessibility) {
		accessibility = ClampAccessibility(*d.Accessibility)
	}

	return Entry{
		ID:              id,
		Label:           d.Label,
		Price:           d.Price,
		Category:        category,
		BookingRequired: d.BookingRequired,
		Accessibility:   accessibility,
	}
}

// ClampAccessibility forces v into [0, 1].
func ClampAccessibility(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return DefaultAccessibility
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
