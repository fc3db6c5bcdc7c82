package catalog

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"NavyaStore/pkg/kit"
)

type Server struct {
	Source Source
	Log    *zap.Logger
}

func (s *Server) ListHandler() http.HandlerFunc       { return s.list }
func (s *Server) GetHandler() http.HandlerFunc        { return s.get }
func (s *Server) CategoriesHandler() http.HandlerFunc { return s.categories }

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Source.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/products", s.list)
	r.Get("/products/{id}", s.get)
	r.Get("/categories", s.categories)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	crit, err := criteriaFromQuery(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad max_price", nil)
		return
	}

	products, err := s.Source.List(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list products failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, Filter(products, crit))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad id", nil)
		return
	}

	p, ok, err := s.Source.Get(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.Int("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, Categories())
}

func criteriaFromQuery(r *http.Request) (Criteria, error) {
	crit := Criteria{
		Category: CategoryAll,
		MaxPrice: DefaultMaxPrice,
		Query:    r.URL.Query().Get("q"),
	}

	if c := r.URL.Query().Get("category"); c != "" {
		crit.Category = c
	}

	if mp := r.URL.Query().Get("max_price"); mp != "" {
		f, err := strconv.ParseFloat(mp, 64)
		if err != nil || f < 0 {
			return Criteria{}, strconv.ErrSyntax
		}
		crit.MaxPrice = f
	}

	return crit, nil
}
