package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/familycart/internal/auth"
	"github.com/Kerhoff/familycart/internal/models"
)

// Login signs the user in. Provider failures come back translated.
func (s *Service) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	session, err := s.Auth.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, auth.TranslateError(err)
	}
	if session == nil || session.UID == "" {
		return nil, auth.TranslateError(fmt.Errorf("empty session"))
	}
	return session, nil
}

// Register creates the identity and its profile with a random avatar. If the
// profile cannot be written the identity is deleted again, so a failed
// registration never leaves an account without a profile.
func (s *Service) Register(ctx context.Context, nombre, apellidos, email, password string) (*models.UserProfile, error) {
	email = strings.TrimSpace(email)

	uid, err := s.Auth.CreateUser(ctx, email, password)
	if err != nil {
		return nil, auth.TranslateError(err)
	}
	if uid == "" {
		return nil, ErrRegistrationFailed
	}

	profile := &models.UserProfile{
		UID:       uid,
		Email:     email,
		Nombre:    strings.TrimSpace(nombre),
		Apellidos: strings.TrimSpace(apellidos),
		Foto:      models.Avatars[s.intn(len(models.Avatars))],
	}

	if err := s.Users.Create(ctx, profile); err != nil {
		log := s.logger.WithFields(logrus.Fields{"uid": uid}).WithError(err)
		if delErr := s.Auth.DeleteUser(ctx, uid); delErr != nil {
			log.WithField("compensation_error", delErr.Error()).
				Error("Failed to write profile and to remove the new identity")
		} else {
			log.Warn("Failed to write profile, new identity removed")
		}
		return nil, ErrRegistrationFailed
	}

	s.logger.WithField("uid", uid).Info("Registered new user")
	return profile, nil
}

// GetProfile returns the user's profile.
func (s *Service) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	return s.profile(ctx, uid)
}

// UpdateProfile changes the user's names and avatar.
func (s *Service) UpdateProfile(ctx context.Context, uid, nombre, apellidos, foto string) (*models.UserProfile, error) {
	nombre = strings.TrimSpace(nombre)
	apellidos = strings.TrimSpace(apellidos)

	switch {
	case nombre == "":
		return nil, ErrEmptyName
	case apellidos == "":
		return nil, ErrEmptySurname
	case !models.IsAvatar(foto):
		return nil, ErrInvalidAvatar
	}

	profile, err := s.profile(ctx, uid)
	if err != nil {
		return nil, err
	}

	if err := s.Users.UpdateProfile(ctx, uid, nombre, apellidos, foto); err != nil {
		return nil, fmt.Errorf("failed to update profile %s: %w", uid, err)
	}

	profile.Nombre, profile.Apellidos, profile.Foto = nombre, apellidos, foto
	return profile, nil
}
