package domain

import (
	"errors"
	"math"
	"testing"
)

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name      string
		draft     Draft
		wantField string
	}{
		{name: "valid", draft: Draft{Label: "Read book", Price: "0"}},
		{name: "empty label", draft: Draft{Label: "", Price: "5"}, wantField: "label"},
		{name: "blank label", draft: Draft{Label: "  \t", Price: "5"}, wantField: "label"},
		{name: "empty price", draft: Draft{Label: "x", Price: ""}, wantField: "price"},
		{name: "blank price", draft: Draft{Label: "x", Price: " "}, wantField: "price"},
		{name: "both empty reports label first", draft: Draft{}, wantField: "label"},
		{name: "non numeric price accepted", draft: Draft{Label: "x", Price: "free"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", verr.Field, tt.wantField)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("errors.Is(err, ErrValidation) = false, want true")
			}
		})
	}
}

func TestDraftBuildDefaults(t *testing.T) {
	e := Draft{Label: "x", Price: "1"}.Build(7)

	if e.ID != 7 {
		t.Errorf("ID = %d, want 7", e.ID)
	}
	if e.Category != CategoryEducation {
		t.Errorf("Category = %q, want %q", e.Category, CategoryEducation)
	}
	if e.BookingRequired {
		t.Error("BookingRequired = true, want false")
	}
	if e.Accessibility != 0.5 {
		t.Errorf("Accessibility = %v, want 0.5", e.Accessibility)
	}
}

func TestDraftBuildKeepsFieldsAsGiven(t *testing.T) {
	e := Draft{
		Label:           " Visit gym ",
		Price:           "20",
		Category:        CategoryRecreational,
		BookingRequired: true,
		Accessibility:   Accessibility(0.8),
	}.Build(1)

	if e.Label != " Visit gym " {
		t.Errorf("Label = %q, want untrimmed value", e.Label)
	}
	if e.Price != "20" || e.Category != CategoryRecreational || !e.BookingRequired || e.Accessibility != 0.8 {
		t.Errorf("Build() = %+v, fields not preserved", e)
	}
}

func TestDraftBuildAccessibility(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want float64
	}{
		{name: "omitted", in: nil, want: 0.5},
		{name: "lower bound", in: Accessibility(0), want: 0},
		{name: "upper bound", in: Accessibility(1), want: 1},
		{name: "below range", in: Accessibility(-0.2), want: 0},
		{name: "above range", in: Accessibility(3), want: 1},
		{name: "nan", in: Accessibility(math.NaN()), want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Draft{Label: "x", Price: "1", Accessibility: tt.in}.Build(1)
			if e.Accessibility != tt.want {
				t.Errorf("Accessibility = %v, want %v", e.Accessibility, tt.want)
			}
		})
	}
}

func TestUnknownCategoryIsKept(t *testing.T) {
	e := Draft{Label: "x", Price: "1", Category: "gardening"}.Build(1)
	if e.Category != "gardening" {
		t.Errorf("Category = %q, want %q", e.Category, "gardening")
	}
	if e.Category.Known() {
		t.Error("Known() = true for unknown category")
	}
}

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"DIY":       CategoryDIY,
		" Music ":   CategoryMusic,
		"busywork":  CategoryBusywork,
		"Gardening": "gardening",
	}
	for in, want := range tests {
		if got := ParseCategory(in); got != want {
			t.Errorf("ParseCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCategoriesOrder(t *testing.T) {
	got := Categories()
	if len(got) != 9 {
		t.Fatalf("Categories() len = %d, want 9", len(got))
	}
	if got[0] != CategoryEducation || got[8] != CategoryBusywork {
		t.Errorf("Categories() order = %v", got)
	}

	// callers get a copy
	got[0] = "mutated"
	if Categories()[0] != CategoryEducation {
		t.Error("Categories() exposed internal slice")
	}

	if CategoryDIY.DisplayName() != "DIY" {
		t.Errorf("DisplayName() = %q, want DIY", CategoryDIY.DisplayName())
	}
}
