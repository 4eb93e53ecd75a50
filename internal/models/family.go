package models

const (
	// FamilyCodeAlphabet holds the 36 symbols a join code is drawn from.
	FamilyCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// FamilyCodeLength is the number of symbols in a join code.
	FamilyCodeLength = 4
)

// Family represents a group of profiles sharing lists, favorites and history.
// Password is stored and compared in plaintext.
type Family struct {
	ID       string `json:"id" firestore:"-" db:"id"`
	Code     string `json:"code" firestore:"code" db:"code"`
	Password string `json:"-" firestore:"password" db:"password"`
	OwnerID  string `json:"ownerId" firestore:"ownerId" db:"owner_id"`
}

// IsValidFamilyCode reports whether code has the join-code shape.
func IsValidFamilyCode(code string) bool {
	if len(code) != FamilyCodeLength {
		return false
	}
	for _, r := range code {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// FamilyOverview joins a family with its members and the owner's name.
type FamilyOverview struct {
	Family    *Family        `json:"family"`
	Members   []*UserProfile `json:"members"`
	OwnerName string         `json:"ownerName"`
}
