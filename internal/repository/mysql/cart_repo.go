package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/cart"
)

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository creates the cart repository.
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepo{db: db}
}

func (r *cartRepo) ListByUser(ctx context.Context, userID int64) ([]*cart.Entry, error) {
	var entries []*cart.Entry
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.*, p.nombre AS nombre_producto, p.precio
		FROM carrito c
		JOIN productos p ON c.producto_id = p.producto_id
		WHERE c.usuario_id = ?
		ORDER BY c.actualizado DESC`, userID).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *cartRepo) Upsert(ctx context.Context, e *cart.Entry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "usuario_id"}, {Name: "producto_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"cantidad", "actualizado"}),
		}).
		Create(e).Error
}

func (r *cartRepo) Remove(ctx context.Context, userID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("usuario_id = ? AND producto_id = ?", userID, productID).
		Delete(&cart.Entry{}).Error
}

func (r *cartRepo) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("usuario_id = ?", userID).
		Delete(&cart.Entry{}).Error
}
