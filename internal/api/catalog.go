package api

import (
	"net/http"
	"strconv"

	"github.com/Kerhoff/familycart/internal/catalog"
	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/viewmodel"
)

func (s *Server) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	vm := viewmodel.NewCategories(s.catalog)
	if err := vm.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}

	categories := vm.Categories().Get()
	if categories == nil {
		categories = []models.Category{}
	}
	s.respondJSON(w, http.StatusOK, categories)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Categoría no válida")
		return
	}

	detail, err := s.catalog.CategoryWithProducts(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product := s.catalog.GetProductByID(r.Context(), r.PathValue("id"))
	if product == nil {
		s.fail(w, r, catalog.ErrNotFound)
		return
	}
	s.respondJSON(w, http.StatusOK, product)
}
