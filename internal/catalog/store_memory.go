package catalog

import (
	"context"
	"sync"
)

// MemSource holds the catalog in memory. With no arguments it carries the
// built-in storefront seed; tests pass their own products.
type MemSource struct {
	mu   sync.RWMutex
	list []Product
	byID map[int]Product
}

func NewMemSource(products ...Product) *MemSource {
	if len(products) == 0 {
		products = seedCatalog()
	}

	s := &MemSource{
		list: products,
		byID: make(map[int]Product, len(products)),
	}
	for _, p := range products {
		s.byID[p.ID] = p
	}
	return s
}

func (s *MemSource) Ping(ctx context.Context) error { return nil }

func (s *MemSource) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.list))
	copy(out, s.list)
	return out, nil
}

func (s *MemSource) Get(ctx context.Context, id int) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	return p, ok, nil
}

func seedCatalog() []Product {
	return []Product{
		{
			ID: 1, Name: "Nothing Phone (2a)", Brand: "Nothing", Category: CategoryElectronics,
			Price: "₹23,999", Description: "Transparent design, Glyph interface, 50MP dual camera.",
			Images: []string{"/images/nothing_phone_2a.png"},
			Colors: []string{"Black", "White"},
			Tags:   []string{"New"}, Rating: 4.5, Reviews: 1289,
			Specs: map[string]string{"Display": "6.7\" AMOLED", "Battery": "5000mAh"},
		},
		{
			ID: 2, Name: "Sony WH-1000XM5", Brand: "Sony", Category: CategoryElectronics,
			Price: "₹29,990", Description: "Industry-leading noise cancelling over-ear headphones.",
			Images: []string{"/images/sony_xm5.png"},
			Colors: []string{"Black", "Silver", "Midnight Blue"},
			Rating: 4.8, Reviews: 3412,
			Specs:  map[string]string{"Battery": "30h", "Weight": "250g"},
		},
		{
			ID: 3, Name: "boAt Stone 1200", Brand: "boAt", Category: CategoryElectronics,
			Price: "₹2,999", Description: "14W portable party speaker with RGB LEDs.",
			Images: []string{"/images/boat_stone_1200.png"},
			Colors: []string{"Black", "Blue", "Red"},
			Rating: 4.1, Reviews: 8904,
		},
		{
			ID: 4, Name: "MacBook Air M3", Brand: "Apple", Category: CategoryElectronics,
			Price: "₹99,900", Description: "13-inch, 8-core CPU, all-day battery.",
			Images: []string{"/images/macbook_air_m3.png"},
			Colors: []string{"Midnight", "Starlight", "Space Grey"},
			Tags:   []string{"Premium"}, Rating: 4.9, Reviews: 756,
		},
		{
			ID: 5, Name: "Modern Fusion Kurta", Brand: "NAVYA Studio", Category: CategoryFashion,
			Price: "₹4,499", Description: "Hand-block printed cotton kurta with mandarin collar.",
			Images: []string{"/images/modern_fusion_kurta.png"},
			Colors: []string{"Indigo", "Ivory"},
			Sizes:  []string{"S", "M", "L", "XL"},
			Rating: 4.3, Reviews: 231,
		},
		{
			ID: 6, Name: "Oversized Graphic Tee", Brand: "NAVYA Studio", Category: CategoryFashion,
			Price: "₹1,299", Description: "240 GSM heavyweight cotton, drop shoulder fit.",
			Images: []string{"/images/oversized_tee.png"},
			Colors: []string{"Washed Black", "Bone"},
			Sizes:  []string{"S", "M", "L", "XL", "XXL"},
			Tags:   []string{"Bestseller"}, Rating: 4.4, Reviews: 1876,
		},
		{
			ID: 7, Name: "Raw Denim Jacket", Brand: "Levi's", Category: CategoryFashion,
			Price: "₹6,999", Description: "Unwashed selvedge denim trucker jacket.",
			Images: []string{"/images/raw_denim_jacket.png"},
			Sizes:  []string{"M", "L", "XL"},
			Rating: 4.6, Reviews: 412,
		},
		{
			ID: 8, Name: "Air Jordan 1 Mid", Brand: "Nike", Category: CategoryFootwear,
			Price: "₹12,495", Description: "Iconic mid-top silhouette in premium leather.",
			Images: []string{"/images/aj1_mid.png"},
			Colors: []string{"Chicago", "Shadow"},
			Sizes:  []string{"UK 7", "UK 8", "UK 9", "UK 10"},
			Tags:   []string{"Hot"}, Rating: 4.7, Reviews: 2310,
		},
		{
			ID: 9, Name: "Gel-Kayano 31", Brand: "ASICS", Category: CategoryFootwear,
			Price: "₹16,999", Description: "Max-stability daily trainer with FF Blast+ Eco.",
			Images: []string{"/images/gel_kayano_31.png"},
			Sizes:  []string{"UK 7", "UK 8", "UK 9", "UK 10", "UK 11"},
			Rating: 4.5, Reviews: 689,
		},
		{
			ID: 10, Name: "Kolhapuri Leather Sandals", Brand: "Rajasthani Crafts", Category: CategoryFootwear,
			Price: "₹1,899", Description: "Handcrafted tan leather kolhapuris.",
			Images: []string{"/images/kolhapuri_sandals.png"},
			Sizes:  []string{"UK 6", "UK 7", "UK 8", "UK 9"},
			Rating: 4.0, Reviews: 154,
		},
	}
}
