// Package auth signs users in and manages their identities with the
// backing identity provider.
package auth

import "context"

// Session is the result of a successful sign in.
type Session struct {
	UID     string `json:"uid"`
	IDToken string `json:"idToken"`
}

// Provider manages identities and verifies the tokens it issues.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	CreateUser(ctx context.Context, email, password string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyToken(ctx context.Context, idToken string) (string, error)
}
