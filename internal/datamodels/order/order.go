package order

import (
	"context"
	"errors"
	"time"
)

// Domain errors shared by the repository and the service.
var (
	// ErrNotCreated means the creation procedure returned no identifier.
	ErrNotCreated = errors.New("el pedido no fue creado")
	// ErrEmptyCart means there was nothing to order.
	ErrEmptyCart = errors.New("el carrito está vacío")
)

// Status is the closed order-state enumeration. Values mirror the
// estados_pedido reference table; never compare against raw integers.
type Status int

const (
	StatusPending    Status = 1
	StatusProcessing Status = 2
	StatusShipped    Status = 3
	StatusCompleted  Status = 4
	StatusCancelled  Status = 5
)

var statusNames = map[Status]string{
	StatusPending:    "pendiente",
	StatusProcessing: "procesando",
	StatusShipped:    "enviado",
	StatusCompleted:  "completado",
	StatusCancelled:  "cancelado",
}

// transitions is the only place legal state changes are defined.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// Name returns the human-readable status name, empty for unknown values.
func (s Status) Name() string {
	return statusNames[s]
}

// Known reports whether the value belongs to the enumeration.
func (s Status) Known() bool {
	_, ok := statusNames[s]
	return ok
}

// CanTransition reports whether from→to is a legal state change.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel reports whether an order in this state may still be cancelled.
func (s Status) CanCancel() bool {
	return CanTransition(s, StatusCancelled)
}

// Order is one purchase transaction. Column names follow the pedidos
// schema the stored procedure writes into.
type Order struct {
	ID            int64     `gorm:"column:pedido_id;primaryKey" json:"pedido_id"`
	UserID        int64     `gorm:"column:usuario_id;index;not null" json:"usuario_id"`
	StatusID      Status    `gorm:"column:estado_id;index;not null" json:"estado_id"`
	Total         float64   `gorm:"column:total;not null" json:"total"`
	PaymentMethod string    `gorm:"column:metodo_pago;size:32;not null" json:"metodo_pago"`
	Coupon        string    `gorm:"column:cupon;size:64" json:"cupon,omitempty"`
	ShippingAddr  string    `gorm:"column:direccion_envio;size:255" json:"direccion_envio,omitempty"`
	Notes         string    `gorm:"column:notas;size:512" json:"notas,omitempty"`
	CreatedAt     time.Time `gorm:"column:fecha_pedido" json:"fecha_pedido"`
	Deleted       bool      `gorm:"column:borrado_logico;not null;default:false" json:"-"`

	// Joined at read time, not persisted here.
	StatusName string `gorm:"->;column:estado_nombre" json:"estado_nombre,omitempty"`
	UserName   string `gorm:"->;column:nombre_usuario" json:"nombre_usuario,omitempty"`
	UserEmail  string `gorm:"->;column:correo_electronico" json:"correo_electronico,omitempty"`
}

// TableName keeps the legacy table naming.
func (Order) TableName() string { return "pedidos" }

// LineItem links one product to one order (pedido_productos row). Product
// name and price are denormalized when reading.
type LineItem struct {
	OrderID   int64 `gorm:"column:fk_pedidos;not null" json:"pedido_id"`
	ProductID int64 `gorm:"column:fk_productos;not null" json:"producto_id"`

	ProductName string  `gorm:"->;column:nombre_producto" json:"nombre_producto,omitempty"`
	Price       float64 `gorm:"->;column:precio" json:"precio,omitempty"`
}

func (LineItem) TableName() string { return "pedido_productos" }

// CreateInput carries the fields the creation procedure consumes.
type CreateInput struct {
	UserID        int64
	Total         float64
	PaymentMethod string
	Coupon        string
	ShippingAddr  string
	Notes         string
}

// Repository is the order data-access boundary. Parameter shaping only;
// business rules stay in the service.
type Repository interface {
	// ListAll returns every non-deleted order joined with the owning
	// user's display name and the status name, newest first.
	ListAll(ctx context.Context) ([]*Order, error)
	// ListByUser returns the user's 25 most recent non-deleted orders.
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	// GetByID fetches one order regardless of soft-delete state.
	GetByID(ctx context.Context, id int64) (*Order, error)
	// CreateViaProcedure calls sp_crear_pedido_completo, the one atomic
	// boundary where the total is validated and the row inserted.
	CreateViaProcedure(ctx context.Context, in CreateInput) (int64, error)
	// CreateFromCart runs the whole cart→order transition (lock cart,
	// total, procedure, line items, clear cart) in one transaction.
	CreateFromCart(ctx context.Context, userID int64, in CreateInput) (int64, error)
	// UpdateStatus overwrites the status. Transition rules live in the
	// service, not here.
	UpdateStatus(ctx context.Context, orderID int64, status Status) error
	// SoftDelete flags the order hidden; idempotent.
	SoftDelete(ctx context.Context, orderID int64) error
	// LinkProduct inserts one line-item row.
	LinkProduct(ctx context.Context, orderID, productID int64) error
	// LineItems returns the denormalized line items of a visible order.
	LineItems(ctx context.Context, orderID int64) ([]*LineItem, error)
	// CartTotal sums cantidad*precio over the user's cart. nil means
	// the cart is empty, never a false zero.
	CartTotal(ctx context.Context, userID int64) (*float64, error)
	// ClearCart removes every cart entry of the user.
	ClearCart(ctx context.Context, userID int64) error
}
