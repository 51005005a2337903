package domain

// Product represents a product in the storefront catalog.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Period      string  `json:"period,omitempty"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Badge       string  `json:"badge,omitempty"`
	Rating      Rating  `json:"rating"`
	InStock     bool    `json:"in_stock"`
	Featured    bool    `json:"featured"`
}

// Rating is the aggregate customer rating for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Category is a browsable storefront category.
type Category struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog sort orders.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRating    = "rating"
	SortName      = "name"
	SortFeatured  = "featured"
)

// ValidSortOrders returns the set of valid catalog sort orders.
func ValidSortOrders() []string {
	return []string{SortPriceAsc, SortPriceDesc, SortRating, SortName, SortFeatured}
}

// IsValidSortOrder checks whether the given string is a valid sort order.
func IsValidSortOrder(s string) bool {
	for _, v := range ValidSortOrders() {
		if v == s {
			return true
		}
	}
	return false
}
