package auth

import "strings"

// FallbackPrefix prefixes raw provider messages nothing in the table matches.
const FallbackPrefix = "Ha ocurrido un error: "

type translation struct {
	substring string
	message   string
}

// Matched in order, case-insensitively, against the raw provider message.
// The first rows are the client SDK messages; the upper-case codes are what
// the REST endpoints return for the same conditions.
var translations = []translation{
	{"email address is already in use", "El email ya está registrado"},
	{"user with the provided email already exists", "El email ya está registrado"},
	{"email_exists", "El email ya está registrado"},
	{"badly formatted", "El formato del email no es válido"},
	{"invalid_email", "El formato del email no es válido"},
	{"password is invalid", "La contraseña es incorrecta"},
	{"invalid_password", "La contraseña es incorrecta"},
	{"no user record", "No existe ninguna cuenta con ese email"},
	{"email_not_found", "No existe ninguna cuenta con ese email"},
	{"auth credential is incorrect", "Las credenciales proporcionadas son incorrectas o han expirado"},
	{"invalid_login_credentials", "Las credenciales proporcionadas son incorrectas o han expirado"},
	{"network error", "Error de red. Comprueba tu conexión a internet"},
	{"is empty or null", "Debes completar todos los campos"},
	{"missing_email", "Debes completar todos los campos"},
	{"missing_password", "Debes completar todos los campos"},
}

// Error is a provider failure carrying the user-facing message.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// TranslateMessage maps a raw provider message to the text shown to users.
func TranslateMessage(raw string) string {
	lower := strings.ToLower(raw)
	for _, t := range translations {
		if strings.Contains(lower, t.substring) {
			return t.message
		}
	}
	return FallbackPrefix + raw
}

// TranslateError wraps err in an *Error carrying the translated message.
// A nil err, or one already translated, is returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{Message: TranslateMessage(err.Error()), Err: err}
}
