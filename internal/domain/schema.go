package domain

import (
	"fmt"
	"strings"
)

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
)

// StaffNotesField is the admin-only notes field appended by AddStaffNotes.
const StaffNotesField = "staffNotes"

// FieldDefinition describes one input of a category form and whether it can
// drive sorting. AllowedValues is set iff Kind is FieldSelect.
type FieldDefinition struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	Kind          FieldKind `json:"kind"`
	Required      bool      `json:"required"`
	Sortable      bool      `json:"sortable"`
	IsPrice       bool      `json:"isPrice"`
	AllowedValues []string  `json:"allowedValues,omitempty"`
	Placeholder   string    `json:"placeholder,omitempty"`
	AdminOnly     bool      `json:"adminOnly,omitempty"`
}

// ShortLabel is the label up to the first parenthesis, as shown on sort
// options and detail rows.
func (f FieldDefinition) ShortLabel() string {
	return strings.TrimSpace(strings.SplitN(f.Label, "(", 2)[0])
}

type categorySchema struct {
	name   string
	fields []FieldDefinition
}

// Registry is the static catalog schema. It is built once at startup and
// only read afterwards.
type Registry struct {
	categories []categorySchema
}

func text(id, label string, required, sortable bool) FieldDefinition {
	return FieldDefinition{ID: id, Label: label, Kind: FieldText, Required: required, Sortable: sortable}
}

func textarea(id, label string, required bool) FieldDefinition {
	return FieldDefinition{ID: id, Label: label, Kind: FieldTextarea, Required: required}
}

func sel(id, label string, required bool, values ...string) FieldDefinition {
	return FieldDefinition{ID: id, Label: label, Kind: FieldSelect, Required: required, Sortable: true, AllowedValues: values}
}

func price(id, label string, required bool, placeholder string) FieldDefinition {
	return FieldDefinition{ID: id, Label: label, Kind: FieldText, Required: required, Sortable: true, IsPrice: true, Placeholder: placeholder}
}

// NewRegistry returns the dispensary menu schema in definition order.
func NewRegistry() *Registry {
	return &Registry{categories: []categorySchema{
		{CategoryFlower, []FieldDefinition{
			text("name", "Strain Name / THC%", true, true),
			sel("type", "Type (Indica/Sativa/Hybrid)", true, "Indica", "Sativa", "Hybrid"),
			text("grower", "Grower/Brand Name", true, true),
			textarea("description", "Description (Effect/Notes)", false),
			text("terpenes", "Key Terpenes (e.g., Myrcene, Linalool)", false, false),
			price("price_1g", "Price (1 gram)", true, "$9 - $12"),
			price("price_35g", "Price (3.5g / Eighth)", true, "$25 - $40"),
			price("price_7g", "Price (7g / Quarter)", false, "$50 - $80"),
			{ID: "flowHubId", Label: "FlowHub Product ID (for sync)", Kind: FieldText, Placeholder: "Optional - for POS integration"},
			{ID: "metrcLabel", Label: "Metrc Package Label", Kind: FieldText, Placeholder: "Optional - for compliance tracking"},
		}},
		{CategoryConcentrates, []FieldDefinition{
			text("name", "Product Name (e.g., Live Resin)", true, true),
			text("brand", "Brand", true, true),
			sel("type", "Type", false, "Indica", "Sativa", "Hybrid", "N/A"),
			sel("format", "Format (Resin/Rosin)", true, "Live Resin", "Live Rosin", "Other"),
			text("potency", "THC/Potency %", false, false),
			textarea("description", "Description/Texture", false),
			price("price", "Price (per unit)", true, ""),
		}},
		{CategoryCartridges, []FieldDefinition{
			text("name", "Strain/Flavor", true, true),
			text("brand", "Brand", true, true),
			sel("type", "Type", false, "Indica", "Sativa", "Hybrid", "N/A"),
			sel("format_type", "Content Type (Rosin/Resin)", true, "Live Rosin", "Live Resin", "Distillate", "Oil"),
			sel("volume", "Volume (g)", true, "0.5g", "1g", "2g"),
			sel("device_type", "Device (510/AIO)", true, "510 Screw On", "All-In-One"),
			text("potency", "THC/Potency %", false, false),
			price("price", "Price", true, ""),
			textarea("description", "Description", false),
		}},
		{CategoryEdibles, []FieldDefinition{
			text("name", "Product Name", true, true),
			text("brand", "Brand", true, true),
			sel("type", "Type", false, "Indica", "Sativa", "Hybrid", "N/A"),
			sel("cannabinoids", "Minor Cannabinoids", false, "THC", "CBD", "CBG", "CBN", "CBC", "Other"),
			text("dosage", "Total Dosage (e.g., 100mg)", false, false),
			text("flavor", "Flavor/Type", false, false),
			sel("edibleForm", "Form", true, "Gummies", "Chocolates", "Mints", "Drinks", "FECO", "Other"),
			textarea("description", "Description", false),
			price("price", "Price", true, ""),
		}},
		{CategoryTopicals, []FieldDefinition{
			text("name", "Product Name", true, true),
			text("brand", "Brand", true, true),
			sel("form", "Product Form", true, "Lotion", "Balm", "Salt", "Oil", "Other"),
			text("size", "Size/Volume", false, false),
			text("cbd_ratio", "CBD:THC Ratio", false, false),
			textarea("description", "Description", false),
			price("price", "Price", true, ""),
		}},
		{CategoryTinctures, []FieldDefinition{
			text("name", "Product Name", true, true),
			text("brand", "Brand", true, true),
			sel("ratio", "Cannabinoid Ratio", true, "1:1", "5:1 CBD", "CBD Only", "THC Only", "Other"),
			text("potency", "Potency (mg)", false, false),
			text("size", "Size (ml)", false, false),
			textarea("description", "Description", false),
			price("price", "Price", true, ""),
		}},
		{CategoryPreRolls, []FieldDefinition{
			text("name", "Strain Name", true, true),
			sel("type", "Type", false, "Indica", "Sativa", "Hybrid", "N/A"),
			sel("weight", "Weight (g)", true, "0.5g", "1g", "1.5g", "Other"),
			sel("packaging", "Packaging", true, "Singles", "Packs", "Other"),
			sel("infused", "Infused?", true, "No", "Yes"),
			text("potency", "Potency/Notes", false, false),
			textarea("description", "Description", false),
			price("price", "Price", true, ""),
		}},
		{CategorySpecials, []FieldDefinition{
			text("name", "Special Name (e.g., BOGO Deal)", true, true),
			text("category_target", "Target Category (e.g., Edibles)", false, false),
			textarea("description", "Full Deal Details", true),
			price("price", "New Price/Discount", true, ""),
		}},
	}}
}

// Clone returns a deep copy so callers can extend it without touching the
// shared registry.
func (r *Registry) Clone() *Registry {
	out := &Registry{categories: make([]categorySchema, len(r.categories))}
	for i, c := range r.categories {
		fields := make([]FieldDefinition, len(c.fields))
		copy(fields, c.fields)
		out.categories[i] = categorySchema{name: c.name, fields: fields}
	}
	return out
}

// AddStaffNotes appends the admin-only staffNotes field to every category.
// Calling it more than once has no further effect.
func (r *Registry) AddStaffNotes() *Registry {
	for i := range r.categories {
		if hasField(r.categories[i].fields, StaffNotesField) {
			continue
		}
		r.categories[i].fields = append(r.categories[i].fields, FieldDefinition{
			ID:        StaffNotesField,
			Label:     "Staff Notes",
			Kind:      FieldTextarea,
			AdminOnly: true,
		})
	}
	return r
}

// FieldsFor returns the ordered fields of a category. Unknown and virtual
// categories yield nil.
func (r *Registry) FieldsFor(category string) []FieldDefinition {
	for _, c := range r.categories {
		if c.name == category {
			return c.fields
		}
	}
	return nil
}

// Field looks up a single field definition.
func (r *Registry) Field(category, id string) (FieldDefinition, bool) {
	for _, f := range r.FieldsFor(category) {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// AllCategories returns the concrete categories in definition order.
func (r *Registry) AllCategories() []string {
	out := make([]string, len(r.categories))
	for i, c := range r.categories {
		out[i] = c.name
	}
	return out
}

// NavCategories is the fixed tab order: All Products, Specials, then the rest.
func (r *Registry) NavCategories() []string {
	out := []string{CategoryAllProducts, CategorySpecials}
	for _, c := range r.categories {
		if c.name != CategorySpecials {
			out = append(out, c.name)
		}
	}
	return out
}

// AddableCategories are the targets offered when adding an item from an
// aggregate view.
func (r *Registry) AddableCategories() []string {
	var out []string
	for _, c := range r.categories {
		if c.name != CategorySpecials {
			out = append(out, c.name)
		}
	}
	return out
}

// IsConcrete reports whether records can be stored under the category.
func (r *Registry) IsConcrete(category string) bool {
	for _, c := range r.categories {
		if c.name == category {
			return true
		}
	}
	return false
}

// IsKnown accepts concrete categories and the All Products view.
func (r *Registry) IsKnown(category string) bool {
	return category == CategoryAllProducts || r.IsConcrete(category)
}

// PrimaryPriceField is the most granular price field of a category.
func (r *Registry) PrimaryPriceField(category string) string {
	for _, f := range r.FieldsFor(category) {
		if f.IsPrice {
			return f.ID
		}
	}
	return SortKeyPrice
}

// IsPriceKey reports whether sorting by key compares parsed prices.
func (r *Registry) IsPriceKey(category, key string) bool {
	if key == SortKeyPrice {
		return true
	}
	if f, ok := r.Field(category, key); ok {
		return f.IsPrice
	}
	// Aggregate views have no fields of their own.
	for _, c := range r.categories {
		for _, f := range c.fields {
			if f.ID == key && f.IsPrice {
				return true
			}
		}
	}
	return false
}

// IsVirtual reports whether the category is computed from the others.
func IsVirtual(category string) bool {
	return category == CategoryAllProducts || category == CategorySpecials
}

// IsAggregate reports whether the view spans records of several categories.
func IsAggregate(category string) bool {
	return IsVirtual(category)
}

// CollectionPath is the document collection holding a category's records.
func CollectionPath(appID, category string) string {
	return fmt.Sprintf("artifacts/%s/public/data/%s", appID, category)
}

func hasField(fields []FieldDefinition, id string) bool {
	for _, f := range fields {
		if f.ID == id {
			return true
		}
	}
	return false
}
