package viewmodel

import (
	"context"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/service"
)

// Profile shows and edits the signed-in user's profile.
type Profile struct {
	svc *service.Service
	uid string

	profile *Signal[*models.UserProfile]
}

func NewProfile(svc *service.Service, uid string) *Profile {
	return &Profile{svc: svc, uid: uid, profile: NewSignal[*models.UserProfile](nil)}
}

func (p *Profile) Profile() Observable[*models.UserProfile] {
	return p.profile
}

func (p *Profile) Load(ctx context.Context) error {
	profile, err := p.svc.GetProfile(ctx, p.uid)
	if err != nil {
		return err
	}
	p.profile.Set(profile)
	return nil
}

// Update saves the editable fields.
func (p *Profile) Update(ctx context.Context, nombre, apellidos, foto string) error {
	profile, err := p.svc.UpdateProfile(ctx, p.uid, nombre, apellidos, foto)
	if err != nil {
		return err
	}
	p.profile.Set(profile)
	return nil
}
