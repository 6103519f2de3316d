package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Document keys with fixed meaning.
const (
	KeyID         = "id"
	KeyCategory   = "category"
	KeyIsFeatured = "isFeatured"
	KeyIsOnSale   = "isOnSale"
	KeyIsLowStock = "isLowStock"
	KeyIsSoldOut  = "isSoldOut"
	KeyCreatedAt  = "createdAt"
	KeyUpdatedAt  = "updatedAt"
)

// Record is a normalized product. Category-specific values live in Fields,
// keyed by schema field id. Status flags are always explicit.
//
// Numeric document values are kept in Fields in their decimal form and
// marked in Numeric; they sort and display like strings but are not searched.
type Record struct {
	ID         string
	Category   string
	IsFeatured bool
	IsOnSale   bool
	IsLowStock bool
	IsSoldOut  bool
	StaffNotes string
	CreatedAt  *time.Time
	UpdatedAt  *time.Time
	Fields     map[string]string
	Numeric    map[string]bool
}

// Key identifies a record across categories.
type Key struct {
	ID       string
	Category string
}

func (r Record) Key() Key { return Key{ID: r.ID, Category: r.Category} }

func (r Record) Name() string { return r.Fields["name"] }

// Field returns a string value by id, including the universal string keys.
func (r Record) Field(id string) string {
	switch id {
	case KeyID:
		return r.ID
	case KeyCategory:
		return r.Category
	case StaffNotesField:
		return r.StaffNotes
	}
	return r.Fields[id]
}

// StringValues lists every string-valued attribute in a stable order.
func (r Record) StringValues() []string {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := []string{r.ID, r.Category}
	for _, k := range keys {
		if r.Numeric[k] {
			continue
		}
		out = append(out, r.Fields[k])
	}
	if r.StaffNotes != "" {
		out = append(out, r.StaffNotes)
	}
	return out
}

// Public strips admin-only data.
func (r Record) Public() Record {
	r.StaffNotes = ""
	return r
}

// RecordFromDocument builds a record from a stored document. The id and
// category come from the storage location, never from the payload.
func RecordFromDocument(category, id string, doc Document) Record {
	rec := Record{
		ID:         id,
		Category:   category,
		IsFeatured: truthy(doc[KeyIsFeatured]),
		IsOnSale:   truthy(doc[KeyIsOnSale]),
		IsLowStock: truthy(doc[KeyIsLowStock]),
		IsSoldOut:  truthy(doc[KeyIsSoldOut]),
		CreatedAt:  timestamp(doc[KeyCreatedAt]),
		UpdatedAt:  timestamp(doc[KeyUpdatedAt]),
		Fields:     make(map[string]string),
	}
	for k, v := range doc {
		switch k {
		case KeyID, KeyCategory, KeyIsFeatured, KeyIsOnSale, KeyIsLowStock, KeyIsSoldOut, KeyCreatedAt, KeyUpdatedAt:
			continue
		}
		if n, ok := number(v); ok && k != StaffNotesField {
			if rec.Numeric == nil {
				rec.Numeric = make(map[string]bool)
			}
			rec.Fields[k] = strconv.FormatFloat(n, 'f', -1, 64)
			rec.Numeric[k] = true
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if k == StaffNotesField {
			rec.StaffNotes = s
			continue
		}
		rec.Fields[k] = s
	}
	return rec
}

// Document is the inverse of RecordFromDocument.
func (r Record) Document() Document {
	doc := make(Document, len(r.Fields)+8)
	for k, v := range r.Fields {
		doc[k] = v
		if r.Numeric[k] {
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				doc[k] = n
			}
		}
	}
	doc[KeyCategory] = r.Category
	doc[KeyIsFeatured] = r.IsFeatured
	doc[KeyIsOnSale] = r.IsOnSale
	doc[KeyIsLowStock] = r.IsLowStock
	doc[KeyIsSoldOut] = r.IsSoldOut
	doc[StaffNotesField] = r.StaffNotes
	if r.CreatedAt != nil {
		doc[KeyCreatedAt] = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if r.UpdatedAt != nil {
		doc[KeyUpdatedAt] = r.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return doc
}

// MarshalJSON flattens the record the way renderers expect it.
func (r Record) MarshalJSON() ([]byte, error) {
	doc := r.Document()
	doc[KeyID] = r.ID
	if r.StaffNotes == "" {
		delete(doc, StaffNotesField)
	}
	return json.Marshal(doc)
}

// truthy normalizes a status flag. Absent or unrecognized values are false.
// Strings are read with strconv.ParseBool ("true", "1", "T" are true; "0",
// "False", "no" are not) and numbers are true when non-zero.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	}
	if n, ok := number(v); ok {
		return n != 0
	}
	return false
}

func number(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		n, err := t.Float64()
		return n, err == nil
	}
	return 0, false
}

func timestamp(v interface{}) *time.Time {
	switch t := v.(type) {
	case time.Time:
		return &t
	case *time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(t)); err == nil {
			return &parsed
		}
	}
	return nil
}
