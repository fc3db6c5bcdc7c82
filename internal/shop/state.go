package shop

import (
	"encoding/json"
	"strconv"

	"NavyaStore/internal/catalog"
)

// StorageKey names the one record the store persists under.
const StorageKey = "navya-storage"

// persistedState is the durable subset: cart, wishlist and session. The
// cart-panel flag is deliberately absent.
type persistedState struct {
	Cart     []Line            `json:"cart"`
	Wishlist []catalog.Product `json:"wishlist"`
	User     *Session          `json:"user"`
}

// decodeState tolerates damage: each field is decoded independently, and a
// malformed field falls back to its zero value instead of poisoning the rest.
func decodeState(raw []byte) persistedState {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return persistedState{}
	}

	var st persistedState

	if b, ok := fields["cart"]; ok {
		var cart []Line
		if err := json.Unmarshal(b, &cart); err == nil {
			st.Cart = cart
		}
	}

	if b, ok := fields["wishlist"]; ok {
		var wl []catalog.Product
		if err := json.Unmarshal(b, &wl); err == nil {
			st.Wishlist = wl
		}
	}

	if b, ok := fields["user"]; ok {
		var u *Session
		if err := json.Unmarshal(b, &u); err == nil {
			st.User = u
		}
	}

	return st
}

// repair re-establishes the container's invariants on whatever the decoder
// produced: quantities are clamped to at least one, cart lines with the same
// (product id, variant) identity merge into the earliest line, and duplicate
// wishlist ids are dropped.
func (st persistedState) repair() persistedState {
	byKey := make(map[string]int, len(st.Cart))
	cart := make([]Line, 0, len(st.Cart))
	for _, l := range st.Cart {
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		if l.Variant == nil {
			l.Variant = Variant{}
		}

		k := lineKey(l.ID, l.Variant.Key())
		if i, ok := byKey[k]; ok {
			cart[i].Quantity += l.Quantity
			continue
		}
		byKey[k] = len(cart)
		cart = append(cart, l)
	}
	st.Cart = cart

	seen := make(map[int]struct{}, len(st.Wishlist))
	wl := make([]catalog.Product, 0, len(st.Wishlist))
	for _, p := range st.Wishlist {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		wl = append(wl, p)
	}
	st.Wishlist = wl

	return st
}

func lineKey(productID int, variantKey string) string {
	return strconv.Itoa(productID) + "\x00" + variantKey
}
