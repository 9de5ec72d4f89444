package cart

import (
	"context"
	"time"
)

// Entry is one pending product selection (carrito row).
type Entry struct {
	UserID    int64     `gorm:"column:usuario_id;primaryKey" json:"usuario_id"`
	ProductID int64     `gorm:"column:producto_id;primaryKey" json:"producto_id"`
	Quantity  int64     `gorm:"column:cantidad;not null" json:"cantidad"`
	UpdatedAt time.Time `gorm:"column:actualizado" json:"actualizado"`

	// Joined at read time.
	ProductName string  `gorm:"->;column:nombre_producto" json:"nombre_producto,omitempty"`
	Price       float64 `gorm:"->;column:precio" json:"precio,omitempty"`
}

func (Entry) TableName() string { return "carrito" }

// Repository manages cart entries. The order repository reads and clears
// the same table inside its own transaction.
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*Entry, error)
	// Upsert sets the quantity for the (user, product) pair, inserting
	// the row when absent.
	Upsert(ctx context.Context, e *Entry) error
	Remove(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}
