package viewmodel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/service"
)

// Favorites shows the family's favorite products next to its purchase
// history.
type Favorites struct {
	svc *service.Service
	uid string

	favorites *Signal[[]*models.Product]
	history   *Signal[[]*models.PurchaseRecord]
	loading   *Signal[bool]
}

func NewFavorites(svc *service.Service, uid string) *Favorites {
	return &Favorites{
		svc:       svc,
		uid:       uid,
		favorites: NewSignal[[]*models.Product](nil),
		history:   NewSignal[[]*models.PurchaseRecord](nil),
		loading:   NewSignal(false),
	}
}

func (f *Favorites) Favorites() Observable[[]*models.Product] {
	return f.favorites
}

func (f *Favorites) History() Observable[[]*models.PurchaseRecord] {
	return f.history
}

func (f *Favorites) Loading() Observable[bool] {
	return f.loading
}

// Load reads favorites and history concurrently.
func (f *Favorites) Load(ctx context.Context) error {
	f.loading.Set(true)
	defer f.loading.Set(false)

	familyID, err := f.svc.CurrentFamilyID(ctx, f.uid)
	if err != nil {
		return err
	}

	var (
		favs    []*models.Product
		history []*models.PurchaseRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		favs, err = f.svc.FavoriteProducts(gctx, familyID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = f.svc.PurchaseHistory(gctx, familyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	f.favorites.Set(favs)
	f.history.Set(history)
	return nil
}
