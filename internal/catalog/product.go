package catalog

// Product is one browsable catalog entry. The catalog is supplied up front
// and never mutated; everything beyond id/name/brand/category/price is
// optional display data.
type Product struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Brand       string            `json:"brand"`
	Category    string            `json:"category"`
	Price       Price             `json:"price"`
	Description string            `json:"description,omitempty"`
	Images      []string          `json:"images,omitempty"`
	Colors      []string          `json:"colors,omitempty"`
	Sizes       []string          `json:"sizes,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Rating      float64           `json:"rating,omitempty"`
	Reviews     int               `json:"reviews,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"`
}

const (
	CategoryAll         = "All"
	CategoryElectronics = "Electronics"
	CategoryFashion     = "Fashion"
	CategoryFootwear    = "Footwear"
)

// Categories lists the selectable categories, CategoryAll first.
func Categories() []string {
	return []string{CategoryAll, CategoryElectronics, CategoryFashion, CategoryFootwear}
}
