package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateMessage(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"The email address is already in use by another account.", "El email ya está registrado"},
		{"The email address is BADLY FORMATTED.", "El formato del email no es válido"},
		{"The password is invalid or the user does not have a password.", "La contraseña es incorrecta"},
		{"There is no user record corresponding to this identifier.", "No existe ninguna cuenta con ese email"},
		{"The supplied auth credential is incorrect, malformed or has expired.", "Las credenciales proporcionadas son incorrectas o han expirado"},
		{"A network error (such as timeout) has occurred.", "Error de red. Comprueba tu conexión a internet"},
		{"Given String is empty or null", "Debes completar todos los campos"},
		{"googleapi: Error 400: EMAIL_NOT_FOUND", "No existe ninguna cuenta con ese email"},
		{"googleapi: Error 400: INVALID_LOGIN_CREDENTIALS", "Las credenciales proporcionadas son incorrectas o han expirado"},
		{"user with the provided email already exists", "El email ya está registrado"},
		{"quota exceeded", "Ha ocurrido un error: quota exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateMessage(tt.raw))
		})
	}
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, TranslateError(nil))

	cause := errors.New("no user record for that email")
	err := TranslateError(cause)
	require.Error(t, err)
	assert.Equal(t, "No existe ninguna cuenta con ese email", err.Error())
	assert.ErrorIs(t, err, cause)

	// Already translated errors pass through untouched.
	assert.Same(t, err, TranslateError(err))
}
