package shop

import (
	"sync"
	"testing"

	"NavyaStore/internal/catalog"
)

type recNotifier struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recNotifier) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recNotifier) last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

func phone() catalog.Product {
	return catalog.Product{ID: 1, Name: "Nothing Phone (2a)", Brand: "Nothing", Category: catalog.CategoryElectronics, Price: "₹23,999"}
}

func kurta() catalog.Product {
	return catalog.Product{ID: 5, Name: "Modern Fusion Kurta", Brand: "NAVYA Studio", Category: catalog.CategoryFashion, Price: "₹4,499"}
}

func newTestStore(t *testing.T) (*Store, *recNotifier) {
	t.Helper()
	rec := &recNotifier{}
	return New(Options{Storage: NewMemStorage(), Notifier: rec}), rec
}

func TestAddToCart_MergesSameIdentity(t *testing.T) {
	s, rec := newTestStore(t)

	s.AddToCart(phone(), 1, Variant{"color": "Black"})
	s.AddToCart(phone(), 2, Variant{"color": "Black"})

	cart := s.Cart()
	if len(cart) != 1 {
		t.Fatalf("got %d lines, want 1", len(cart))
	}
	if cart[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", cart[0].Quantity)
	}

	if n, ok := rec.last(); !ok || n.Level != NoticeSuccess {
		t.Fatalf("expected success notice, got %+v", n)
	}
}

func TestAddToCart_VariantOrderDoesNotSplitLines(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddToCart(phone(), 1, Variant{"color": "Black", "size": "M"})
	s.AddToCart(phone(), 1, Variant{"size": "M", "color": "Black"})

	if cart := s.Cart(); len(cart) != 1 || cart[0].Quantity != 2 {
		t.Fatalf("same selection split into %d lines: %+v", len(cart), cart)
	}
}

func TestAddToCart_DistinctVariantsSplitLines(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddToCart(phone(), 1, Variant{"color": "Black"})
	s.AddToCart(phone(), 1, Variant{"color": "White"})

	if cart := s.Cart(); len(cart) != 2 {
		t.Fatalf("got %d lines, want 2", len(cart))
	}
}

func TestAddToCart_ClampsQuantity(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddToCart(phone(), 0, nil)
	s.AddToCart(kurta(), -3, nil)

	for _, l := range s.Cart() {
		if l.Quantity != 1 {
			t.Fatalf("quantity = %d, want clamp to 1", l.Quantity)
		}
	}
}

func TestRemoveFromCart(t *testing.T) {
	s, rec := newTestStore(t)

	s.AddToCart(phone(), 1, Variant{"color": "Black"})
	s.AddToCart(phone(), 1, Variant{"color": "White"})

	s.RemoveFromCart(1, Variant{"color": "Black"})

	cart := s.Cart()
	if len(cart) != 1 || cart[0].Variant["color"] != "White" {
		t.Fatalf("cart after remove = %+v", cart)
	}
	if n, ok := rec.last(); !ok || n.Level != NoticeInfo {
		t.Fatalf("expected info notice, got %+v", n)
	}

	// Removing something absent is a no-op, not an error.
	s.RemoveFromCart(999, nil)
	if len(s.Cart()) != 1 {
		t.Fatalf("no-op remove changed the cart")
	}
}

func TestUpdateQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddToCart(phone(), 2, nil)

	s.UpdateQuantity(1, nil, 5)
	if got := s.Cart()[0].Quantity; got != 5 {
		t.Fatalf("quantity = %d, want 5", got)
	}

	s.UpdateQuantity(1, nil, 0)
	s.UpdateQuantity(1, nil, -4)
	if got := s.Cart()[0].Quantity; got != 5 {
		t.Fatalf("quantity after rejected updates = %d, want 5", got)
	}

	// Unknown line: silent no-op.
	s.UpdateQuantity(999, nil, 3)
	if len(s.Cart()) != 1 {
		t.Fatalf("update of missing line changed the cart")
	}
}

func TestCartTotal_NormalizesDisplayPrices(t *testing.T) {
	s, _ := newTestStore(t)

	p := catalog.Product{ID: 9, Name: "Thing", Price: "₹1,999"}
	s.AddToCart(p, 2, nil)

	if got := s.CartTotal(); got != 3998 {
		t.Fatalf("CartTotal() = %v, want 3998", got)
	}

	// Deriving the total must not rewrite the stored price.
	if raw := s.Cart()[0].Price; raw != "₹1,999" {
		t.Fatalf("stored price mutated: %q", raw)
	}
	if got := s.CartTotal(); got != 3998 {
		t.Fatalf("CartTotal() not idempotent: %v", got)
	}
}

func TestClearCart(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddToCart(phone(), 3, nil)

	s.ClearCart()

	if len(s.Cart()) != 0 {
		t.Fatalf("cart not empty after clear")
	}
	if got := s.CartTotal(); got != 0 {
		t.Fatalf("CartTotal() after clear = %v, want 0", got)
	}
}

func TestToggleWishlist(t *testing.T) {
	s, rec := newTestStore(t)

	saved, n := s.ToggleWishlist(phone())
	if !saved || n.Level != NoticeSuccess {
		t.Fatalf("first toggle: saved=%v notice=%+v", saved, n)
	}
	if len(s.WishlistItems()) != 1 {
		t.Fatalf("wishlist size = %d, want 1", len(s.WishlistItems()))
	}

	saved, n = s.ToggleWishlist(phone())
	if saved || n.Level != NoticeInfo {
		t.Fatalf("second toggle: saved=%v notice=%+v", saved, n)
	}
	if len(s.WishlistItems()) != 0 {
		t.Fatalf("double toggle did not restore the wishlist")
	}

	if len(rec.notices) != 2 {
		t.Fatalf("got %d notices, want 2", len(rec.notices))
	}
}

func TestCartPanelFlag(t *testing.T) {
	s, rec := newTestStore(t)

	if s.CartOpen() {
		t.Fatalf("panel should start closed")
	}

	s.OpenCart()
	if !s.CartOpen() {
		t.Fatalf("OpenCart did not open")
	}

	s.ToggleCart()
	if s.CartOpen() {
		t.Fatalf("ToggleCart did not close")
	}

	s.ToggleCart()
	s.CloseCart()
	if s.CartOpen() {
		t.Fatalf("CloseCart did not close")
	}

	if len(rec.notices) != 0 {
		t.Fatalf("panel ops emitted notices: %+v", rec.notices)
	}
}

func TestLoginLogout(t *testing.T) {
	s, _ := newTestStore(t)

	if _, ok := s.User(); ok {
		t.Fatalf("fresh store should be a guest")
	}

	s.Login(Session{Name: "Shivam", Email: "shivam@navya.design"})
	u, ok := s.User()
	if !ok || u.Name != "Shivam" {
		t.Fatalf("user after login = %+v ok=%v", u, ok)
	}

	s.Logout()
	if _, ok := s.User(); ok {
		t.Fatalf("user survived logout")
	}
}

func TestVariantKey(t *testing.T) {
	a := Variant{"color": "Black", "size": "M"}
	b := Variant{"size": "M", "color": "Black"}
	if a.Key() != b.Key() {
		t.Fatalf("key depends on map order: %q vs %q", a.Key(), b.Key())
	}

	if (Variant{}).Key() != "" {
		t.Fatalf("empty variant key = %q, want empty", Variant{}.Key())
	}
	if Variant(nil).Key() != "" {
		t.Fatalf("nil variant key should be empty")
	}

	c := Variant{"color": "White", "size": "M"}
	if a.Key() == c.Key() {
		t.Fatalf("different selections share a key")
	}
}
