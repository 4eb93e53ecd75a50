package viewmodel

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/service"
)

// RegistrationForm holds the sign-up fields.
type RegistrationForm struct {
	Nombre          string `json:"nombre" validate:"required"`
	Apellidos       string `json:"apellidos" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

var fieldMessages = map[string]string{
	"Nombre":          "El nombre no puede estar vacío",
	"Apellidos":       "Los apellidos no pueden estar vacíos",
	"Email":           "Ingresa un email válido.",
	"Password":        "La contraseña debe tener al menos 8 caracteres.",
	"ConfirmPassword": "Las contraseñas no coinciden.",
}

// ValidationError is a form field failing validation. Its message is the
// text shown next to the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var formValidator = validator.New()

// Registration validates the sign-up form and creates the account.
type Registration struct {
	svc      *service.Service
	validate *validator.Validate

	errMsg *Signal[string]
}

func NewRegistration(svc *service.Service) *Registration {
	return &Registration{
		svc:      svc,
		validate: formValidator,
		errMsg:   NewSignal(""),
	}
}

// Message holds the last validation or registration message.
func (r *Registration) Message() Observable[string] {
	return r.errMsg
}

// Validate trims the form and checks it, returning the message of the first
// failing field or "" when the form is valid. Fields are checked in
// declaration order.
func (r *Registration) Validate(form *RegistrationForm) string {
	form.Nombre = strings.TrimSpace(form.Nombre)
	form.Apellidos = strings.TrimSpace(form.Apellidos)
	form.Email = strings.TrimSpace(form.Email)

	err := r.validate.Struct(form)
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}
	if msg, ok := fieldMessages[validationErrors[0].Field()]; ok {
		return msg
	}
	return validationErrors[0].Error()
}

// Submit validates the form and registers the account.
func (r *Registration) Submit(ctx context.Context, form RegistrationForm) (*models.UserProfile, error) {
	if msg := r.Validate(&form); msg != "" {
		r.errMsg.Set(msg)
		return nil, &ValidationError{Message: msg}
	}

	profile, err := r.svc.Register(ctx, form.Nombre, form.Apellidos, form.Email, form.Password)
	if err != nil {
		r.errMsg.Set(err.Error())
		return nil, err
	}
	r.errMsg.Set("")
	return profile, nil
}
