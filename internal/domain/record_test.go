package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRecordFromDocument(t *testing.T) {
	created := time.Date(2024, 4, 20, 16, 20, 0, 0, time.UTC)
	doc := Document{
		"id":         "ignored",
		"category":   "ignored",
		"name":       "Zkittlez",
		"type":       "Indica",
		"isFeatured": true,
		"isOnSale":   "true",
		"isLowStock": float64(0),
		"staffNotes": "ask for the jar",
		"createdAt":  created.Format(time.RFC3339),
		"stock":      float64(12),
	}

	got := RecordFromDocument(CategoryFlower, "z1", doc)
	want := Record{
		ID:         "z1",
		Category:   CategoryFlower,
		IsFeatured: true,
		IsOnSale:   true,
		StaffNotes: "ask for the jar",
		CreatedAt:  &created,
		Fields:     map[string]string{"name": "Zkittlez", "type": "Indica", "stock": "12"},
		Numeric:    map[string]bool{"stock": true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RecordFromDocument() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordKeepsNumericFields(t *testing.T) {
	doc := Document{"name": "Gelato", "price": float64(25), "thc": 27.5, "units": 3}

	rec := RecordFromDocument(CategoryPreRolls, "p1", doc)
	want := map[string]string{"name": "Gelato", "price": "25", "thc": "27.5", "units": "3"}
	if diff := cmp.Diff(want, rec.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p1", CategoryPreRolls, "Gelato"}, rec.StringValues()); diff != "" {
		t.Errorf("StringValues() searched numeric fields (-want +got):\n%s", diff)
	}

	stored := rec.Document()
	if stored["price"] != float64(25) || stored["name"] != "Gelato" {
		t.Errorf("Document() price=%#v name=%#v", stored["price"], stored["name"])
	}
}

func TestRecordFlagCoercion(t *testing.T) {
	tests := []struct {
		value interface{}
		want  bool
	}{
		{nil, false},
		{true, true},
		{false, false},
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"0", false},
		{"False", false},
		{"no", false},
		{"yes", false},
		{"", false},
		{float64(1), true},
		{float64(0), false},
		{map[string]interface{}{}, false},
	}

	for _, tt := range tests {
		rec := RecordFromDocument(CategoryFlower, "f", Document{KeyIsSoldOut: tt.value})
		if rec.IsSoldOut != tt.want {
			t.Errorf("isSoldOut %#v = %v, want %v", tt.value, rec.IsSoldOut, tt.want)
		}
	}
}

func TestRecordDocumentRoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 6, time.UTC)
	rec := Record{
		ID:         "e1",
		Category:   CategoryEdibles,
		IsSoldOut:  true,
		StaffNotes: "back room",
		CreatedAt:  &now,
		UpdatedAt:  &now,
		Fields:     map[string]string{"name": "Gummies", "price": "$20"},
	}

	got := RecordFromDocument(rec.Category, rec.ID, rec.Document())
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStringValuesAndPublic(t *testing.T) {
	rec := Record{
		ID:         "c1",
		Category:   CategoryConcentrates,
		StaffNotes: "secret",
		Fields:     map[string]string{"name": "Badder", "description": "small batch live resin"},
	}

	want := []string{"c1", CategoryConcentrates, "small batch live resin", "Badder", "secret"}
	if diff := cmp.Diff(want, rec.StringValues()); diff != "" {
		t.Errorf("StringValues() mismatch (-want +got):\n%s", diff)
	}

	pub := rec.Public()
	if pub.StaffNotes != "" || rec.StaffNotes != "secret" {
		t.Errorf("Public() = %q, original %q", pub.StaffNotes, rec.StaffNotes)
	}
	if got := pub.Field(StaffNotesField); got != "" {
		t.Errorf("Field(staffNotes) = %q after Public()", got)
	}
}
