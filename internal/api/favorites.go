package api

import (
	"net/http"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/viewmodel"
)

func (s *Server) handleGetFavorites(w http.ResponseWriter, r *http.Request, uid string) {
	vm := viewmodel.NewFavorites(s.svc, uid)
	if err := vm.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}

	products := vm.Favorites().Get()
	if products == nil {
		products = []*models.Product{}
	}
	s.respondJSON(w, http.StatusOK, products)
}

func (s *Server) handleIsFavorite(w http.ResponseWriter, r *http.Request, uid string) {
	vm := viewmodel.NewProductDetail(s.svc, uid, r.PathValue("productId"))
	if err := vm.LoadFavorite(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]bool{"favorite": vm.IsFavorite().Get()})
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request, uid string) {
	s.setFavorite(w, r, uid, true)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request, uid string) {
	s.setFavorite(w, r, uid, false)
}

func (s *Server) setFavorite(w http.ResponseWriter, r *http.Request, uid string, favorite bool) {
	vm := viewmodel.NewProductDetail(s.svc, uid, r.PathValue("productId"))
	if err := vm.SetFavorite(r.Context(), favorite); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request, uid string) {
	vm := viewmodel.NewFavorites(s.svc, uid)
	if err := vm.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}

	records := vm.History().Get()
	if records == nil {
		records = []*models.PurchaseRecord{}
	}
	s.respondJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetPurchase(w http.ResponseWriter, r *http.Request, uid string) {
	familyID, err := s.svc.CurrentFamilyID(r.Context(), uid)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	record, err := s.svc.PurchaseDetail(r.Context(), familyID, r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, record)
}
