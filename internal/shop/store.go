package shop

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"NavyaStore/internal/catalog"
)

const saveTimeout = 3 * time.Second

// Line is one cart entry: the product's fields flattened together with the
// chosen quantity and variant. Identity is (product id, canonical variant
// key); no two lines share one.
type Line struct {
	catalog.Product
	Quantity int     `json:"quantity"`
	Variant  Variant `json:"variant"`
}

// Session is the signed-in user's profile. There are no credentials; login
// replaces it wholesale.
type Session struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type Options struct {
	Storage  Storage
	Notifier Notifier
	Log      *zap.Logger
}

// Store is the single source of truth for cart, wishlist and session state.
// Every mutation is atomic under the lock, and every mutation of the durable
// subset is written back to storage before the call returns. The cart-panel
// flag is transient and never persisted.
type Store struct {
	mu       sync.Mutex
	cart     []Line
	wishlist []catalog.Product
	user     *Session
	cartOpen bool

	storage Storage
	notif   Notifier
	log     *zap.Logger
}

// New builds a store and primes it from storage. A missing record means a
// fresh default state; a malformed one degrades field by field instead of
// failing startup. The panel always starts closed.
func New(opts Options) *Store {
	s := &Store{
		storage: opts.Storage,
		notif:   opts.Notifier,
		log:     opts.Log,
	}
	if s.notif == nil {
		s.notif = NopNotifier{}
	}

	if s.storage != nil {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		raw, ok, err := s.storage.Load(ctx)
		if err != nil && s.log != nil {
			s.log.Warn("state load failed, starting empty", zap.Error(err))
		}
		if err == nil && ok {
			st := decodeState(raw).repair()
			s.cart = st.Cart
			s.wishlist = st.Wishlist
			s.user = st.User
		}
	}

	return s
}

// AddToCart merges into the line with the same (product id, variant) identity
// or appends a new one. Quantities below one are clamped to one.
func (s *Store) AddToCart(p catalog.Product, qty int, variant Variant) Notice {
	if qty < 1 {
		qty = 1
	}
	v := variant.clone()
	key := v.Key()

	s.mu.Lock()
	if i := s.lineIndex(p.ID, key); i >= 0 {
		s.cart[i].Quantity += qty
	} else {
		s.cart = append(s.cart, Line{Product: p, Quantity: qty, Variant: v})
	}
	s.persistLocked()
	s.mu.Unlock()

	n := success("Added " + p.Name + " to cart")
	s.notif.Notify(n)
	return n
}

// RemoveFromCart drops the line matching (productID, variant) exactly. A miss
// is a no-op, not an error; the notice is emitted either way.
func (s *Store) RemoveFromCart(productID int, variant Variant) Notice {
	key := variant.Key()

	s.mu.Lock()
	if i := s.lineIndex(productID, key); i >= 0 {
		s.cart = append(s.cart[:i], s.cart[i+1:]...)
	}
	s.persistLocked()
	s.mu.Unlock()

	n := info("Item removed from cart")
	s.notif.Notify(n)
	return n
}

// UpdateQuantity sets the matching line's quantity. Values below one are
// rejected silently and leave the cart untouched.
func (s *Store) UpdateQuantity(productID int, variant Variant, qty int) {
	if qty < 1 {
		return
	}
	key := variant.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.lineIndex(productID, key)
	if i < 0 {
		return
	}
	s.cart[i].Quantity = qty
	s.persistLocked()
}

func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	s.persistLocked()
}

// CartTotal sums price times quantity over all lines, normalizing display
// prices on the way. It never rewrites the stored prices.
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, l := range s.cart {
		total += l.Price.Amount() * float64(l.Quantity)
	}
	return total
}

func (s *Store) Cart() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.cart))
	copy(out, s.cart)
	return out
}

// ToggleWishlist flips the product's presence in the wishlist and reports
// whether it is saved afterwards. This is deliberately a toggle, not an add:
// calling it on a saved product removes it.
func (s *Store) ToggleWishlist(p catalog.Product) (saved bool, n Notice) {
	s.mu.Lock()
	idx := -1
	for i, w := range s.wishlist {
		if w.ID == p.ID {
			idx = i
			break
		}
	}

	if idx >= 0 {
		s.wishlist = append(s.wishlist[:idx], s.wishlist[idx+1:]...)
	} else {
		s.wishlist = append(s.wishlist, p)
		saved = true
	}
	s.persistLocked()
	s.mu.Unlock()

	if saved {
		n = success("Added to wishlist")
	} else {
		n = info("Removed from wishlist")
	}
	s.notif.Notify(n)
	return saved, n
}

func (s *Store) WishlistItems() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Product, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

func (s *Store) Login(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &sess
	s.persistLocked()
}

func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.persistLocked()
}

func (s *Store) User() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return Session{}, false
	}
	return *s.user, true
}

func (s *Store) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = true
}

func (s *Store) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = false
}

func (s *Store) ToggleCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = !s.cartOpen
}

func (s *Store) CartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartOpen
}

func (s *Store) lineIndex(productID int, key string) int {
	for i, l := range s.cart {
		if l.ID == productID && l.Variant.Key() == key {
			return i
		}
	}
	return -1
}

// persistLocked writes the durable subset. Saves are best effort: a failure
// is logged and the mutation stands.
func (s *Store) persistLocked() {
	if s.storage == nil {
		return
	}

	raw, err := json.Marshal(persistedState{
		Cart:     s.cart,
		Wishlist: s.wishlist,
		User:     s.user,
	})
	if err != nil {
		if s.log != nil {
			s.log.Warn("state encode failed", zap.Error(err))
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.storage.Save(ctx, raw); err != nil && s.log != nil {
		s.log.Warn("state save failed", zap.Error(err))
	}
}
