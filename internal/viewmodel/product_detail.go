package viewmodel

import (
	"context"
	"errors"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/service"
)

// ErrProductNotFound is returned by Load when the catalog has no such product.
var ErrProductNotFound = errors.New("Producto no encontrado")

// ProductDetail shows one catalog product with its favorite flag.
type ProductDetail struct {
	svc       *service.Service
	uid       string
	productID string

	product    *Signal[*models.Product]
	isFavorite *Signal[bool]
}

func NewProductDetail(svc *service.Service, uid, productID string) *ProductDetail {
	return &ProductDetail{
		svc:        svc,
		uid:        uid,
		productID:  productID,
		product:    NewSignal[*models.Product](nil),
		isFavorite: NewSignal(false),
	}
}

func (p *ProductDetail) Product() Observable[*models.Product] {
	return p.product
}

func (p *ProductDetail) IsFavorite() Observable[bool] {
	return p.isFavorite
}

// Load fetches the product and, when the user has a family, its favorite
// flag.
func (p *ProductDetail) Load(ctx context.Context) error {
	product := p.svc.Products.GetProductByID(ctx, p.productID)
	if product == nil {
		return ErrProductNotFound
	}
	p.product.Set(product)

	err := p.LoadFavorite(ctx)
	if errors.Is(err, service.ErrNoFamily) {
		p.isFavorite.Set(false)
		return nil
	}
	return err
}

// LoadFavorite reads the favorite flag of the product for the user's family.
func (p *ProductDetail) LoadFavorite(ctx context.Context) error {
	familyID, err := p.svc.CurrentFamilyID(ctx, p.uid)
	if err != nil {
		return err
	}

	fav, err := p.svc.IsFavorite(ctx, familyID, p.productID)
	if err != nil {
		return err
	}
	p.isFavorite.Set(fav)
	return nil
}

// SetFavorite marks or unmarks the product as a favorite of the user's
// family. Both directions are idempotent.
func (p *ProductDetail) SetFavorite(ctx context.Context, favorite bool) error {
	familyID, err := p.svc.CurrentFamilyID(ctx, p.uid)
	if err != nil {
		return err
	}

	if favorite {
		err = p.svc.AddFavorite(ctx, familyID, p.productID)
	} else {
		err = p.svc.RemoveFavorite(ctx, familyID, p.productID)
	}
	if err != nil {
		return err
	}
	p.isFavorite.Set(favorite)
	return nil
}

// ToggleFavorite flips the favorite flag of the product for the user's
// family.
func (p *ProductDetail) ToggleFavorite(ctx context.Context) error {
	if err := p.LoadFavorite(ctx); err != nil {
		return err
	}
	return p.SetFavorite(ctx, !p.isFavorite.Get())
}

// AddToList adds the product to one of the family's lists.
func (p *ProductDetail) AddToList(ctx context.Context, listID, nota string, cantidad int) (*models.ListItem, error) {
	return p.svc.AddProductToList(ctx, p.uid, listID, p.productID, nota, cantidad)
}
