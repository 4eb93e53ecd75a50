package api

import (
	"net/http"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/viewmodel"
)

type familyResponse struct {
	Status    viewmodel.FamilyStatus `json:"status"`
	Family    *models.Family         `json:"family,omitempty"`
	Members   []*models.UserProfile  `json:"members,omitempty"`
	OwnerName string                 `json:"ownerName,omitempty"`
}

type createFamilyRequest struct {
	Password string `json:"password"`
}

type joinFamilyRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

func newFamilyResponse(vm *viewmodel.Family) familyResponse {
	return familyResponse{
		Status:    vm.Status().Get(),
		Family:    vm.Family().Get(),
		Members:   vm.Members().Get(),
		OwnerName: vm.OwnerName().Get(),
	}
}

func (s *Server) handleGetFamily(w http.ResponseWriter, r *http.Request, uid string) {
	vm := viewmodel.NewFamily(s.svc, uid)
	if err := vm.Check(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, newFamilyResponse(vm))
}

func (s *Server) handleCreateFamily(w http.ResponseWriter, r *http.Request, uid string) {
	var req createFamilyRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	vm := viewmodel.NewFamily(s.svc, uid)
	if err := vm.Create(r.Context(), req.Password); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, newFamilyResponse(vm))
}

func (s *Server) handleJoinFamily(w http.ResponseWriter, r *http.Request, uid string) {
	var req joinFamilyRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	vm := viewmodel.NewFamily(s.svc, uid)
	if err := vm.Join(r.Context(), req.Code, req.Password); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, newFamilyResponse(vm))
}

func (s *Server) handleLeaveFamily(w http.ResponseWriter, r *http.Request, uid string) {
	if err := viewmodel.NewFamily(s.svc, uid).Leave(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}
