package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/familycart/internal/auth"
	"github.com/Kerhoff/familycart/internal/catalog"
	"github.com/Kerhoff/familycart/internal/metrics"
	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
	"github.com/Kerhoff/familycart/internal/service"
	"github.com/Kerhoff/familycart/internal/viewmodel"
)

// Catalog is the read side of the product catalog served under /api/catalog.
type Catalog interface {
	Categories(ctx context.Context) ([]models.Category, error)
	CategoryWithProducts(ctx context.Context, id int) (*models.CategoryDetail, error)
	GetProductByID(ctx context.Context, id string) *models.Product
}

// Server provides the HTTP API.
type Server struct {
	svc     *service.Service
	catalog Catalog
	metrics *metrics.Metrics
	logger  *logrus.Logger
	mux     *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it. m may be
// nil.
func NewServer(svc *service.Service, cat Catalog, m *metrics.Metrics, logger *logrus.Logger) *Server {
	s := &Server{svc: svc, catalog: cat, metrics: m, logger: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.instrument(s.mux)
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	// Account
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.Handle("GET /api/profile", s.authed(s.handleGetProfile))
	s.mux.Handle("PUT /api/profile", s.authed(s.handleUpdateProfile))

	// Family
	s.mux.Handle("GET /api/family", s.authed(s.handleGetFamily))
	s.mux.Handle("POST /api/family", s.authed(s.handleCreateFamily))
	s.mux.Handle("POST /api/family/join", s.authed(s.handleJoinFamily))
	s.mux.Handle("POST /api/family/leave", s.authed(s.handleLeaveFamily))

	// Lists
	s.mux.Handle("GET /api/lists", s.authed(s.handleGetLists))
	s.mux.Handle("POST /api/lists", s.authed(s.handleCreateList))
	s.mux.Handle("DELETE /api/lists/{id}", s.authed(s.handleDeleteList))
	s.mux.Handle("GET /api/lists/{id}/items", s.authed(s.handleGetListItems))
	s.mux.Handle("POST /api/lists/{id}/items", s.authed(s.handleAddListItem))
	s.mux.Handle("DELETE /api/lists/{id}/items/{productId}", s.authed(s.handleRemoveListItem))
	s.mux.Handle("POST /api/lists/{id}/checkout", s.authed(s.handleCheckout))

	// Favorites and history
	s.mux.Handle("GET /api/favorites", s.authed(s.handleGetFavorites))
	s.mux.Handle("GET /api/favorites/{productId}", s.authed(s.handleIsFavorite))
	s.mux.Handle("PUT /api/favorites/{productId}", s.authed(s.handleAddFavorite))
	s.mux.Handle("DELETE /api/favorites/{productId}", s.authed(s.handleRemoveFavorite))
	s.mux.Handle("GET /api/history", s.authed(s.handleGetHistory))
	s.mux.Handle("GET /api/history/{id}", s.authed(s.handleGetPurchase))

	// Catalog
	s.mux.HandleFunc("GET /api/catalog/categories", s.handleGetCategories)
	s.mux.HandleFunc("GET /api/catalog/categories/{id}", s.handleGetCategory)
	s.mux.HandleFunc("GET /api/catalog/products/{id}", s.handleGetProduct)

	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// ---------------------------------------------------------------------------
// Middleware
// ---------------------------------------------------------------------------

type authedHandler func(w http.ResponseWriter, r *http.Request, uid string)

// authed resolves the caller from the Bearer ID token.
func (s *Server) authed(next authedHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			s.respondError(w, http.StatusUnauthorized, service.ErrNotAuthenticated.Error())
			return
		}

		uid, err := s.svc.Auth.VerifyToken(r.Context(), strings.TrimSpace(token))
		if err != nil || uid == "" {
			s.logger.WithError(err).Debug("Rejected ID token")
			s.respondError(w, http.StatusUnauthorized, service.ErrNotAuthenticated.Error())
			return
		}
		next(w, r, uid)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveHTTPRequest(route, rec.status)
	})
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads the request body into dst and returns an error message on
// failure. The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil || r.Body == http.NoBody {
		return false, "El cuerpo de la petición está vacío"
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return false, "JSON no válido"
	}
	return true, ""
}

// internalErrorMessage is shown for failures with no user-facing text.
const internalErrorMessage = "Ha ocurrido un error inesperado"

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	var authErr *auth.Error
	var validationErr *viewmodel.ValidationError
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNoFamily),
		errors.Is(err, service.ErrProductAlreadyInList):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrListNotFound),
		errors.Is(err, service.ErrPurchaseNotFound),
		errors.Is(err, viewmodel.ErrProductNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrIncorrectPassword),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrEmptyListName),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrEmptySurname),
		errors.Is(err, service.ErrInvalidAvatar),
		errors.Is(err, service.ErrRegistrationFailed),
		errors.As(err, &authErr),
		errors.As(err, &validationErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Unexpected errors are logged and
// answered with a generic message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("Request failed")
		s.respondError(w, status, internalErrorMessage)
		return
	}
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, catalog.ErrNotFound) {
		s.respondError(w, status, "No encontrado")
		return
	}
	s.respondError(w, status, err.Error())
}
