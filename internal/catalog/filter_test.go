package catalog

import "testing"

func testProducts() []Product {
	return []Product{
		{ID: 1, Name: "Nothing Phone (2a)", Brand: "Nothing", Category: CategoryElectronics, Price: "₹23,999"},
		{ID: 2, Name: "Modern Fusion Kurta", Brand: "NAVYA Studio", Category: CategoryFashion, Price: "₹4,499"},
		{ID: 3, Name: "Air Jordan 1 Mid", Brand: "Nike", Category: CategoryFootwear, Price: "₹12,495"},
		{ID: 4, Name: "Sony WH-1000XM5", Brand: "Sony", Category: CategoryElectronics, Price: "₹29,990"},
	}
}

func ids(products []Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	cases := []struct {
		name string
		crit Criteria
		want []int
	}{
		{
			"all defaults returns everything in order",
			Criteria{Category: CategoryAll, MaxPrice: DefaultMaxPrice},
			[]int{1, 2, 3, 4},
		},
		{
			"max price below every product",
			Criteria{Category: CategoryAll, MaxPrice: 100},
			[]int{},
		},
		{
			"max price is inclusive",
			Criteria{Category: CategoryAll, MaxPrice: 12495},
			[]int{2, 3},
		},
		{
			"category exact match",
			Criteria{Category: CategoryElectronics, MaxPrice: DefaultMaxPrice},
			[]int{1, 4},
		},
		{
			"category is case sensitive",
			Criteria{Category: "electronics", MaxPrice: DefaultMaxPrice},
			[]int{},
		},
		{
			"query matches name case-insensitively",
			Criteria{Category: CategoryAll, MaxPrice: DefaultMaxPrice, Query: "JORDAN"},
			[]int{3},
		},
		{
			"query matches brand",
			Criteria{Category: CategoryAll, MaxPrice: DefaultMaxPrice, Query: "navya"},
			[]int{2},
		},
		{
			"query matches category",
			Criteria{Category: CategoryAll, MaxPrice: DefaultMaxPrice, Query: "footwear"},
			[]int{3},
		},
		{
			"criteria combine with AND",
			Criteria{Category: CategoryElectronics, MaxPrice: 24000, Query: "phone"},
			[]int{1},
		},
		{
			"no match",
			Criteria{Category: CategoryAll, MaxPrice: DefaultMaxPrice, Query: "tractor"},
			[]int{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(testProducts(), tc.crit))
			if !equalIDs(got, tc.want) {
				t.Fatalf("Filter(%+v) ids = %v, want %v", tc.crit, got, tc.want)
			}
		})
	}
}

func TestFilter_DoesNotReorder(t *testing.T) {
	products := testProducts()
	got := Filter(products, Criteria{Category: CategoryAll, MaxPrice: DefaultMaxPrice})

	for i := 1; i < len(got); i++ {
		if got[i-1].ID > got[i].ID {
			t.Fatalf("filter reordered products: %v", ids(got))
		}
	}
}
