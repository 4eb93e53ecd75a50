package api

import (
	"errors"
	"net/http"

	"github.com/Kerhoff/familycart/internal/auth"
	"github.com/Kerhoff/familycart/internal/viewmodel"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Foto      string `json:"foto"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	session, err := s.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			s.respondError(w, http.StatusUnauthorized, authErr.Message)
			return
		}
		s.fail(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var form viewmodel.RegistrationForm
	if ok, msg := s.decodeJSON(r, &form); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	profile, err := viewmodel.NewRegistration(s.svc).Submit(r.Context(), form)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, uid string) {
	profile, err := s.svc.GetProfile(r.Context(), uid)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, uid string) {
	var req updateProfileRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	vm := viewmodel.NewProfile(s.svc, uid)
	if err := vm.Update(r.Context(), req.Nombre, req.Apellidos, req.Foto); err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, vm.Profile().Get())
}
