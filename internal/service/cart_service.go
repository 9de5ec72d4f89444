package service

import (
	"context"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/cart"
)

// CartService manages pending product selections.
type CartService struct {
	repo cart.Repository
}

// NewCartService creates the cart service.
func NewCartService(repo cart.Repository) *CartService {
	return &CartService{repo: repo}
}

// List returns the caller's cart with product names and prices joined in.
func (s *CartService) List(ctx context.Context, a Actor) ([]*cart.Entry, error) {
	return s.repo.ListByUser(ctx, a.UserID)
}

// Put sets the quantity for a product, adding the entry when absent.
func (s *CartService) Put(ctx context.Context, a Actor, productID, quantity int64) error {
	var bad []string
	if productID <= 0 {
		bad = append(bad, "producto_id")
	}
	if quantity <= 0 {
		bad = append(bad, "cantidad")
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return s.repo.Upsert(ctx, &cart.Entry{
		UserID:    a.UserID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// Remove drops one product from the cart.
func (s *CartService) Remove(ctx context.Context, a Actor, productID int64) error {
	return s.repo.Remove(ctx, a.UserID, productID)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, a Actor) error {
	return s.repo.Clear(ctx, a.UserID)
}
