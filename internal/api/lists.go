package api

import (
	"net/http"
	"strings"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/viewmodel"
)

type createListRequest struct {
	Name string `json:"name"`
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Nota      string `json:"nota"`
	Cantidad  int    `json:"cantidad"`
}

type checkoutRequest struct {
	ProductIDs []string `json:"productIds"`
}

type listItemsResponse struct {
	Name       string                 `json:"name"`
	Entries    []models.ListedProduct `json:"entries"`
	Unresolved []string               `json:"unresolved,omitempty"`
}

func (s *Server) handleGetLists(w http.ResponseWriter, r *http.Request, uid string) {
	vm := viewmodel.NewLists(s.svc, uid)
	if err := vm.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}

	lists := vm.Lists().Get()
	if lists == nil {
		lists = []*models.ShoppingList{}
	}
	s.respondJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request, uid string) {
	var req createListRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	list, err := viewmodel.NewLists(s.svc, uid).Create(r.Context(), req.Name)
	if list == nil {
		s.fail(w, r, err)
		return
	}
	if err != nil {
		s.logger.WithField("list_id", list.ID).WithError(err).Warn("List created but reload failed")
	}
	s.respondJSON(w, http.StatusCreated, list)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request, uid string) {
	if err := viewmodel.NewLists(s.svc, uid).Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleGetListItems(w http.ResponseWriter, r *http.Request, uid string) {
	familyID, err := s.svc.CurrentFamilyID(r.Context(), uid)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	vm := viewmodel.NewListDetail(s.svc, uid, familyID, r.PathValue("id"))
	if err := vm.Load(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, listItemsResponse{
		Name:       vm.Name().Get(),
		Entries:    vm.Entries().Get(),
		Unresolved: vm.Unresolved().Get(),
	})
}

func (s *Server) handleAddListItem(w http.ResponseWriter, r *http.Request, uid string) {
	var req addItemRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		s.respondError(w, http.StatusBadRequest, "productId es obligatorio")
		return
	}

	vm := viewmodel.NewProductDetail(s.svc, uid, strings.TrimSpace(req.ProductID))
	item, err := vm.AddToList(r.Context(), r.PathValue("id"), req.Nota, req.Cantidad)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleRemoveListItem(w http.ResponseWriter, r *http.Request, uid string) {
	removed, err := s.svc.RemoveProductFromList(r.Context(), uid, r.PathValue("id"), r.PathValue("productId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// handleCheckout marks the posted products of the list as added and
// finishes the purchase. Ids not on the list, or unknown to the catalog, are
// ignored.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request, uid string) {
	var req checkoutRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	familyID, err := s.svc.CurrentFamilyID(ctx, uid)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	listID := r.PathValue("id")
	if _, err := s.svc.GetList(ctx, familyID, listID); err != nil {
		s.fail(w, r, err)
		return
	}

	checkout := viewmodel.NewCheckout(s.svc, familyID, listID)
	if err := checkout.Load(ctx); err != nil {
		s.fail(w, r, err)
		return
	}
	for _, id := range req.ProductIDs {
		checkout.MarkAdded(id)
	}

	record, err := checkout.Finish(ctx)
	if record == nil {
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.respondJSON(w, http.StatusNoContent, nil)
		return
	}
	if err != nil {
		s.logger.WithField("purchase_id", record.ID).WithError(err).Warn("Purchase recorded but list reload failed")
	}
	s.respondJSON(w, http.StatusCreated, record)
}
