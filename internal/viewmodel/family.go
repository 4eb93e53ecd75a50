package viewmodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/service"
)

// FamilyStatus tells whether the user belongs to a family.
type FamilyStatus int

const (
	StatusUnknown FamilyStatus = iota
	StatusNoFamily
	StatusHasFamily
)

func (s FamilyStatus) String() string {
	switch s {
	case StatusNoFamily:
		return "no-family"
	case StatusHasFamily:
		return "has-family"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s FamilyStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *FamilyStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "no-family":
		*s = StatusNoFamily
	case "has-family":
		*s = StatusHasFamily
	case "unknown":
		*s = StatusUnknown
	default:
		return fmt.Errorf("unknown family status %q", text)
	}
	return nil
}

// Family resolves the user's family status and, when there is one, its data.
type Family struct {
	svc *service.Service
	uid string

	status    *Signal[FamilyStatus]
	family    *Signal[*models.Family]
	members   *Signal[[]*models.UserProfile]
	ownerName *Signal[string]
}

// NewFamily creates the family view of uid, starting in StatusUnknown.
func NewFamily(svc *service.Service, uid string) *Family {
	return &Family{
		svc:       svc,
		uid:       uid,
		status:    NewSignal(StatusUnknown),
		family:    NewSignal[*models.Family](nil),
		members:   NewSignal[[]*models.UserProfile](nil),
		ownerName: NewSignal(""),
	}
}

func (f *Family) Status() Observable[FamilyStatus] {
	return f.status
}

func (f *Family) Family() Observable[*models.Family] {
	return f.family
}

func (f *Family) Members() Observable[[]*models.UserProfile] {
	return f.members
}

func (f *Family) OwnerName() Observable[string] {
	return f.ownerName
}

// Check resolves the status. Once resolved to StatusHasFamily with data
// loaded it does nothing. A failed lookup leaves the status unchanged.
func (f *Family) Check(ctx context.Context) error {
	if f.status.Get() == StatusHasFamily && f.family.Get() != nil {
		return nil
	}

	familyID, err := f.svc.CurrentFamilyID(ctx, f.uid)
	if errors.Is(err, service.ErrNoFamily) {
		f.clear()
		f.status.Set(StatusNoFamily)
		return nil
	}
	if err != nil {
		// Unresolved: the user may still have a family.
		return err
	}

	f.status.Set(StatusHasFamily)
	overview, err := f.svc.FamilyOverview(ctx, familyID)
	if err != nil {
		return err
	}
	f.family.Set(overview.Family)
	f.members.Set(overview.Members)
	f.ownerName.Set(overview.OwnerName)
	return nil
}

// Create creates a family owned by the user and reloads.
func (f *Family) Create(ctx context.Context, password string) error {
	if _, err := f.svc.CreateGroup(ctx, f.uid, password); err != nil {
		return err
	}
	return f.reload(ctx)
}

// Join joins the family with code and reloads.
func (f *Family) Join(ctx context.Context, code, password string) error {
	if _, err := f.svc.JoinGroupByCode(ctx, f.uid, code, password); err != nil {
		return err
	}
	return f.reload(ctx)
}

// Leave leaves the current family.
func (f *Family) Leave(ctx context.Context) error {
	if err := f.svc.LeaveGroup(ctx, f.uid); err != nil {
		return err
	}
	f.clear()
	f.status.Set(StatusNoFamily)
	return nil
}

func (f *Family) reload(ctx context.Context) error {
	f.clear()
	f.status.Set(StatusUnknown)
	return f.Check(ctx)
}

func (f *Family) clear() {
	f.family.Set(nil)
	f.members.Set(nil)
	f.ownerName.Set("")
}
