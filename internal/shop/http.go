package shop

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"NavyaStore/internal/catalog"
	"NavyaStore/pkg/kit"
)

const (
	maxBodyBytes = 1 << 20
	sessionTTL   = 24 * time.Hour
)

type Server struct {
	Store    *Store
	Catalog  *catalog.Server
	Checkout *Checkout
	Tokens   *TokenMaker
	Log      *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/products", s.Catalog.ListHandler())
	r.Get("/products/{id}", s.Catalog.GetHandler())
	r.Get("/categories", s.Catalog.CategoriesHandler())

	r.Route("/cart", func(rr chi.Router) {
		rr.Get("/", s.getCart)
		rr.Delete("/", s.clearCart)
		rr.Post("/items", s.addItem)
		rr.Patch("/items", s.updateItem)
		rr.Delete("/items", s.removeItem)
		rr.Post("/panel/open", s.openPanel)
		rr.Post("/panel/close", s.closePanel)
		rr.Post("/panel/toggle", s.togglePanel)
	})

	r.Get("/wishlist", s.wishlist)
	r.Post("/wishlist/{id}", s.toggleWishlist)

	r.Post("/session", s.login)
	r.Get("/session", s.whoami)
	r.Delete("/session", s.logout)

	r.Get("/orders/{id}", s.getOrder)

	return r
}

type cartResp struct {
	Items  []Line  `json:"items"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
	Open   bool    `json:"open"`
	Notice *Notice `json:"notice,omitempty"`
}

func (s *Server) cartView(n *Notice) cartResp {
	items := s.Store.Cart()

	count := 0
	for _, l := range items {
		count += l.Quantity
	}

	return cartResp{
		Items:  items,
		Count:  count,
		Total:  s.Store.CartTotal(),
		Open:   s.Store.CartOpen(),
		Notice: n,
	}
}

type itemReq struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Variant   Variant `json:"variant"`
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.cartView(nil))
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req itemReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	p, ok, err := s.Catalog.Source.Get(r.Context(), req.ProductID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("catalog lookup failed", zap.Error(err), zap.Int("product_id", req.ProductID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "unknown product", map[string]any{"id": req.ProductID})
		return
	}

	n := s.Store.AddToCart(p, req.Quantity, req.Variant)
	kit.WriteJSON(w, http.StatusOK, s.cartView(&n))
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	var req itemReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	// Quantities below one are rejected inside the store; the cart comes
	// back unchanged rather than as an error.
	s.Store.UpdateQuantity(req.ProductID, req.Variant, req.Quantity)
	kit.WriteJSON(w, http.StatusOK, s.cartView(nil))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	var req itemReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	n := s.Store.RemoveFromCart(req.ProductID, req.Variant)
	kit.WriteJSON(w, http.StatusOK, s.cartView(&n))
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	s.Store.ClearCart()
	kit.WriteJSON(w, http.StatusOK, s.cartView(nil))
}

type panelResp struct {
	Open bool `json:"open"`
}

func (s *Server) openPanel(w http.ResponseWriter, r *http.Request) {
	s.Store.OpenCart()
	kit.WriteJSON(w, http.StatusOK, panelResp{Open: s.Store.CartOpen()})
}

func (s *Server) closePanel(w http.ResponseWriter, r *http.Request) {
	s.Store.CloseCart()
	kit.WriteJSON(w, http.StatusOK, panelResp{Open: s.Store.CartOpen()})
}

func (s *Server) togglePanel(w http.ResponseWriter, r *http.Request) {
	s.Store.ToggleCart()
	kit.WriteJSON(w, http.StatusOK, panelResp{Open: s.Store.CartOpen()})
}

type wishlistResp struct {
	Items  []catalog.Product `json:"items"`
	Count  int               `json:"count"`
	Saved  *bool             `json:"saved,omitempty"`
	Notice *Notice           `json:"notice,omitempty"`
}

func (s *Server) wishlist(w http.ResponseWriter, r *http.Request) {
	items := s.Store.WishlistItems()
	kit.WriteJSON(w, http.StatusOK, wishlistResp{Items: items, Count: len(items)})
}

func (s *Server) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad id", nil)
		return
	}

	p, ok, err := s.Catalog.Source.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("catalog lookup failed", zap.Error(err), zap.Int("product_id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "unknown product", map[string]any{"id": id})
		return
	}

	saved, n := s.Store.ToggleWishlist(p)
	items := s.Store.WishlistItems()
	kit.WriteJSON(w, http.StatusOK, wishlistResp{
		Items:  items,
		Count:  len(items),
		Saved:  &saved,
		Notice: &n,
	})
}

type loginResp struct {
	Token string  `json:"token"`
	User  Session `json:"user"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var sess Session
	if err := decodeJSON(w, r, &sess); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	s.Store.Login(sess)

	tok, err := s.Tokens.New(sess, sessionTTL)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("token issue", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, loginResp{Token: tok, User: sess})
}

// whoami answers from the bearer token when one is presented, otherwise from
// the store's current session. A guest gets a 404, not an auth failure.
func (s *Server) whoami(w http.ResponseWriter, r *http.Request) {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		claims, err := s.Tokens.Parse(strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
			return
		}
		kit.WriteJSON(w, http.StatusOK, Session{
			Name:   claims.Name,
			Email:  claims.Email,
			Avatar: claims.Avatar,
		})
		return
	}

	sess, ok := s.Store.User()
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "guest", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, sess)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.Store.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) beginCheckout(w http.ResponseWriter, r *http.Request) {
	o, err := s.Checkout.Begin(r.Context())
	if errors.Is(err, ErrEmptyCart) {
		kit.WriteError(w, r, http.StatusConflict, "cart is empty", nil)
		return
	}
	if err != nil {
		if s.Log != nil {
			s.Log.Error("checkout failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusAccepted, o)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, ok := s.Checkout.Order(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, o)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
