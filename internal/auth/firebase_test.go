package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newToolkitServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "verifyPassword") {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if body.Password != "correcto123" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_PASSWORD"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"localId":"uid-1","idToken":"token-1","email":"` + body.Email + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFirebaseProvider_SignIn(t *testing.T) {
	srv := newToolkitServer(t)
	p, err := NewFirebaseProvider(context.Background(), nil, "key", option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	session, err := p.SignIn(context.Background(), "ana@example.com", "correcto123")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", session.UID)
	assert.Equal(t, "token-1", session.IDToken)
}

func TestFirebaseProvider_SignInTranslatesFailure(t *testing.T) {
	srv := newToolkitServer(t)
	p, err := NewFirebaseProvider(context.Background(), nil, "key", option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = p.SignIn(context.Background(), "ana@example.com", "mal")
	require.Error(t, err)
	assert.Equal(t, "La contraseña es incorrecta", err.Error())
}
