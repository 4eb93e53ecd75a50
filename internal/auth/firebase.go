package auth

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// FirebaseProvider manages identities with the Firebase Admin SDK and signs
// users in through the Identity Toolkit password endpoint, which the Admin
// SDK does not expose.
type FirebaseProvider struct {
	admin   *fbauth.Client
	toolkit *identitytoolkit.Service
}

// NewFirebaseProvider creates a provider. opts are appended to the Identity
// Toolkit client options after the API key.
func NewFirebaseProvider(ctx context.Context, admin *fbauth.Client, apiKey string, opts ...option.ClientOption) (*FirebaseProvider, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	toolkit, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit client: %w", err)
	}
	return &FirebaseProvider{admin: admin, toolkit: toolkit}, nil
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	resp, err := p.toolkit.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, TranslateError(err)
	}
	return &Session{UID: resp.LocalId, IDToken: resp.IdToken}, nil
}

func (p *FirebaseProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	params := (&fbauth.UserToCreate{}).Email(email).Password(password)
	user, err := p.admin.CreateUser(ctx, params)
	if err != nil {
		return "", TranslateError(err)
	}
	return user.UID, nil
}

func (p *FirebaseProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.admin.DeleteUser(ctx, uid); err != nil {
		if fbauth.IsUserNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (p *FirebaseProvider) VerifyToken(ctx context.Context, idToken string) (string, error) {
	token, err := p.admin.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("failed to verify token: %w", err)
	}
	return token.UID, nil
}
