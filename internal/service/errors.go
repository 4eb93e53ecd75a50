package service

import "errors"

// User-facing failures. The text of each error is what clients display.
var (
	ErrNotAuthenticated     = errors.New("Usuario no autenticado")
	ErrNoFamily             = errors.New("Usuario sin grupo")
	ErrInvalidCode          = errors.New("Código de grupo inválido")
	ErrIncorrectPassword    = errors.New("Contraseña incorrecta")
	ErrEmptyPassword        = errors.New("La contraseña del grupo no puede estar vacía")
	ErrProductAlreadyInList = errors.New("Este producto ya está en la lista")
	ErrEmptyListName        = errors.New("El nombre de la lista no puede estar vacío")
	ErrListNotFound         = errors.New("La lista no existe")
	ErrPurchaseNotFound     = errors.New("La compra no existe")
	ErrEmptyName            = errors.New("El nombre no puede estar vacío")
	ErrEmptySurname         = errors.New("Los apellidos no pueden estar vacíos")
	ErrInvalidAvatar        = errors.New("Avatar no válido")
	ErrRegistrationFailed   = errors.New("Error al registrar el usuario")
)
