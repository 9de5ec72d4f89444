package product

import (
	"context"
	"time"
)

// Product is one catalog item (productos row).
type Product struct {
	ID          int64     `gorm:"column:producto_id;primaryKey" json:"producto_id"`
	Name        string    `gorm:"column:nombre;size:128;not null" json:"nombre"`
	Description string    `gorm:"column:descripcion;size:512" json:"descripcion,omitempty"`
	Price       float64   `gorm:"column:precio;not null" json:"precio"`
	Stock       int64     `gorm:"column:stock;not null" json:"stock"`
	Category    string    `gorm:"column:categoria;size:64;index" json:"categoria,omitempty"`
	Published   bool      `gorm:"column:publicado;not null;default:true" json:"publicado"`
	CreatedAt   time.Time `gorm:"column:fecha_creacion" json:"fecha_creacion"`
	UpdatedAt   time.Time `gorm:"column:fecha_actualizacion" json:"-"`
}

func (Product) TableName() string { return "productos" }

// Repository is the product data-access boundary.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	// ListAll includes unpublished products; back office only.
	ListAll(ctx context.Context) ([]*Product, error)
	ListPublished(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
}
