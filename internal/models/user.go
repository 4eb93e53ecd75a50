package models

import "strings"

// Avatars is the fixed set of avatar keys a new profile is assigned from.
var Avatars = []string{"pan", "zanahoria", "leche", "chocolate"}

// UserProfile is the profile document stored for every registered account.
type UserProfile struct {
	UID       string  `json:"uid" firestore:"uid" db:"uid"`
	Email     string  `json:"email" firestore:"email" db:"email"`
	Nombre    string  `json:"nombre" firestore:"nombre" db:"nombre"`
	Apellidos string  `json:"apellidos" firestore:"apellidos" db:"apellidos"`
	Foto      string  `json:"foto" firestore:"foto" db:"foto"`
	FamilyID  *string `json:"familyId,omitempty" firestore:"familyId" db:"family_id"`
}

// HasFamily reports whether the profile belongs to a family.
func (u *UserProfile) HasFamily() bool {
	return u.FamilyID != nil && *u.FamilyID != ""
}

// FullName returns the user's full name
func (u *UserProfile) FullName() string {
	return strings.TrimSpace(u.Nombre + " " + u.Apellidos)
}

// IsAvatar reports whether key is one of the known avatars.
func IsAvatar(key string) bool {
	for _, a := range Avatars {
		if a == key {
			return true
		}
	}
	return false
}
