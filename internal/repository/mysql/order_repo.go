package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/cart"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/order"
)

// userOrderLimit caps "my orders" listings.
const userOrderLimit = 25

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepository creates the order repository.
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepo{db: db}
}

func (r *orderRepo) ListAll(ctx context.Context) ([]*order.Order, error) {
	var list []*order.Order
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.*,
		       u.correo_electronico,
		       CONCAT(u.nombre, ' ', u.apellido_paterno) AS nombre_usuario,
		       e.estado_nombre
		FROM pedidos p
		JOIN usuarios u ON p.usuario_id = u.usuario_id
		JOIN estados_pedido e ON p.estado_id = e.estado_id
		WHERE p.borrado_logico = 0
		ORDER BY p.fecha_pedido DESC`).Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID int64) ([]*order.Order, error) {
	var list []*order.Order
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.*, e.estado_nombre
		FROM pedidos p
		JOIN estados_pedido e ON p.estado_id = e.estado_id
		WHERE p.usuario_id = ? AND p.borrado_logico = 0
		ORDER BY p.fecha_pedido DESC
		LIMIT ?`, userID, userOrderLimit).Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).First(&o, "pedido_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) CreateViaProcedure(ctx context.Context, in order.CreateInput) (int64, error) {
	return createViaProcedure(r.db.WithContext(ctx), in)
}

// createViaProcedure calls the stored routine on the given handle so it can
// run inside CreateFromCart's transaction as well as standalone.
func createViaProcedure(tx *gorm.DB, in order.CreateInput) (int64, error) {
	var row struct {
		PedidoID sql.NullInt64 `gorm:"column:pedido_id"`
	}
	err := tx.Raw(
		"CALL sp_crear_pedido_completo(?, ?, ?, ?, ?, ?)",
		in.UserID,
		in.Total,
		in.PaymentMethod,
		in.Coupon,
		strings.TrimSpace(in.ShippingAddr),
		strings.TrimSpace(in.Notes),
	).Scan(&row).Error
	if err != nil {
		return 0, err
	}
	if !row.PedidoID.Valid || row.PedidoID.Int64 == 0 {
		return 0, order.ErrNotCreated
	}
	return row.PedidoID.Int64, nil
}

func (r *orderRepo) CreateFromCart(ctx context.Context, userID int64, in order.CreateInput) (int64, error) {
	var orderID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the cart rows so a concurrent cart write cannot slip in
		// between total computation and cart clearing.
		var entries []*cart.Entry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("usuario_id = ?", userID).
			Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return order.ErrEmptyCart
		}

		total, err := cartTotal(tx, userID)
		if err != nil {
			return err
		}
		if total == nil {
			return order.ErrEmptyCart
		}

		in.UserID = userID
		in.Total = *total
		id, err := createViaProcedure(tx, in)
		if err != nil {
			return err
		}

		for _, e := range entries {
			item := &order.LineItem{OrderID: id, ProductID: e.ProductID}
			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("vincular producto %d: %w", e.ProductID, err)
			}
		}

		if err := tx.Where("usuario_id = ?", userID).Delete(&cart.Entry{}).Error; err != nil {
			return err
		}

		orderID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, orderID int64, status order.Status) error {
	return r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("pedido_id = ?", orderID).
		Update("estado_id", status).Error
}

func (r *orderRepo) SoftDelete(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("pedido_id = ?", orderID).
		Update("borrado_logico", true).Error
}

func (r *orderRepo) LinkProduct(ctx context.Context, orderID, productID int64) error {
	item := &order.LineItem{OrderID: orderID, ProductID: productID}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *orderRepo) LineItems(ctx context.Context, orderID int64) ([]*order.LineItem, error) {
	// Line items of a soft-deleted order stay hidden along with it.
	var items []*order.LineItem
	err := r.db.WithContext(ctx).Raw(`
		SELECT pp.fk_pedidos, pp.fk_productos,
		       pr.nombre AS nombre_producto, pr.precio
		FROM pedidos p
		JOIN pedido_productos pp ON p.pedido_id = pp.fk_pedidos
		JOIN productos pr ON pr.producto_id = pp.fk_productos
		WHERE p.pedido_id = ? AND p.borrado_logico = 0`, orderID).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepo) CartTotal(ctx context.Context, userID int64) (*float64, error) {
	return cartTotal(r.db.WithContext(ctx), userID)
}

func cartTotal(tx *gorm.DB, userID int64) (*float64, error) {
	var total sql.NullFloat64
	err := tx.Raw(`
		SELECT SUM(c.cantidad * p.precio) AS total
		FROM carrito c
		JOIN productos p ON c.producto_id = p.producto_id
		WHERE c.usuario_id = ?`, userID).Scan(&total).Error
	if err != nil {
		return nil, err
	}
	if !total.Valid {
		// NULL sum means an empty cart, which is different from a
		// zero-priced one.
		return nil, nil
	}
	v := total.Float64
	return &v, nil
}

func (r *orderRepo) ClearCart(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("usuario_id = ?", userID).
		Delete(&cart.Entry{}).Error
}
