package domain

// Categories
const (
	CategoryFlower       = "Flower"
	CategoryConcentrates = "Concentrates"
	CategoryCartridges   = "Cartridges"
	CategoryEdibles      = "Edibles"
	CategoryTopicals     = "Topicals"
	CategoryTinctures    = "Tinctures"
	CategoryPreRolls     = "Pre-Rolls"
	CategorySpecials     = "Specials"

	// Virtual categories are materialized from the others and never stored.
	CategoryAllProducts = "All Products"
)

// FilterAll is the sentinel for an inactive filter.
const FilterAll = "All"

// Sort directions
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Synthetic sort keys
const (
	SortKeyName      = "name"
	SortKeyPrice     = "price"
	SortKeyType      = "type"
	SortKeyCreatedAt = "createdAt"
	SortKeyUpdatedAt = "updatedAt"
)

// Staff roles
const (
	RoleAdmin     = "admin"
	RoleBudtender = "budtender"
)

// View modes
const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// Badges
const (
	BadgeFeatured = "FEATURED"
	BadgeSoldOut  = "SOLD OUT"
	BadgeLowStock = "LOW STOCK"
	BadgeOnSale   = "ON SALE"
)

// StaffRoles lists every role allowed to use the admin console.
var StaffRoles = []string{
	RoleAdmin,
	RoleBudtender,
}

// ViewModes lists the accepted view-mode preference values.
var ViewModes = []ViewMode{
	ViewModeGrid,
	ViewModeList,
}

// typeFilterCategories expose the Indica/Sativa/Hybrid type facet.
var typeFilterCategories = map[string]bool{
	CategoryAllProducts:  true,
	CategoryFlower:       true,
	CategoryCartridges:   true,
	CategoryConcentrates: true,
	CategoryPreRolls:     true,
	CategoryEdibles:      true,
}

// SupportsTypeFilter reports whether the category exposes the type facet.
func SupportsTypeFilter(category string) bool {
	return typeFilterCategories[category]
}
