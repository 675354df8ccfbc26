package domain

import "strings"

// Category classifies an activity.
//
// The set is fixed, but the store does not reject unknown values:
// presentation layers constrain the choice.
type Category string

const (
	CategoryEducation    Category = "education"
	CategoryRecreational Category = "recreational"
	CategorySocial       Category = "social"
	CategoryDIY          Category = "diy"
	CategoryCharity      Category = "charity"
	CategoryCooking      Category = "cooking"
	CategoryRelaxation   Category = "relaxation"
	CategoryMusic        Category = "music"
	CategoryBusywork     Category = "busywork"
)

// DefaultCategory is used when a draft leaves the category empty.
const DefaultCategory = CategoryEducation

var categories = []Category{
	CategoryEducation,
	CategoryRecreational,
	CategorySocial,
	CategoryDIY,
	CategoryCharity,
	CategoryCooking,
	CategoryRelaxation,
	CategoryMusic,
	CategoryBusywork,
}

var displayNames = map[Category]string{
	CategoryEducation:    "Education",
	CategoryRecreational: "Recreational",
	CategorySocial:       "Social",
	CategoryDIY:          "DIY",
	CategoryCharity:      "Charity",
	CategoryCooking:      "Cooking",
	CategoryRelaxation:   "Relaxation",
	CategoryMusic:        "Music",
	CategoryBusywork:     "Busywork",
}

// Categories returns the known categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Known reports whether c belongs to the fixed set.
func (c Category) Known() bool {
	_, ok := displayNames[c]
	return ok
}

// DisplayName returns the human label, or the raw value for unknown categories.
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// ParseCategory normalizes user input ("DIY", " Music ") to a Category.
// Unknown values are returned lowercased and trimmed, not rejected.
func ParseCategory(s string) Category {
	return Category(strings.ToLower(strings.TrimSpace(s)))
}
