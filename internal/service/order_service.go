package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/authz"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/order"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/events"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/metrics"
)

// Actor is the authenticated caller, taken from verified token claims and
// never from request bodies.
type Actor struct {
	UserID int64
	Role   string
}

// CreateRequest carries the cart-checkout fields.
type CreateRequest struct {
	PaymentMethod string `json:"metodo_pago"`
	Coupon        string `json:"cupon"`
	ShippingAddr  string `json:"direccion_envio"`
	Notes         string `json:"notas"`
}

// DirectCreateRequest creates an order from explicitly listed products.
type DirectCreateRequest struct {
	CreateRequest
	Total      float64 `json:"total"`
	ProductIDs []int64 `json:"productos"`
}

// OrderService enforces authorization and the status state machine, and
// orchestrates the cart→order transition.
type OrderService struct {
	repo   order.Repository
	authz  *authz.Service
	events *events.Publisher
}

// NewOrderService creates the order service.
func NewOrderService(repo order.Repository, policies *authz.Service, pub *events.Publisher) *OrderService {
	return &OrderService{repo: repo, authz: policies, events: pub}
}

func (s *OrderService) requirePermission(a Actor, action string) error {
	allowed, err := s.authz.Can(a.Role, "pedidos", action)
	if err != nil {
		return err
	}
	if !allowed {
		return &PermissionError{Resource: "pedidos", Action: action}
	}
	return nil
}

// ListAll returns every visible order; support and admin only.
func (s *OrderService) ListAll(ctx context.Context, a Actor) ([]*order.Order, error) {
	if err := s.requirePermission(a, "leer"); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

// ListMine returns the caller's recent orders.
func (s *OrderService) ListMine(ctx context.Context, a Actor) ([]*order.Order, error) {
	return s.repo.ListByUser(ctx, a.UserID)
}

// LineItems returns the products of one visible order.
func (s *OrderService) LineItems(ctx context.Context, orderID int64) ([]*order.LineItem, error) {
	return s.repo.LineItems(ctx, orderID)
}

// CartTotal exposes the cart sum; nil means the cart is empty.
func (s *OrderService) CartTotal(ctx context.Context, a Actor) (*float64, error) {
	return s.repo.CartTotal(ctx, a.UserID)
}

func (req *CreateRequest) validate() error {
	var missing []string
	if req.PaymentMethod == "" {
		missing = append(missing, "metodo_pago")
	}
	if req.ShippingAddr == "" {
		missing = append(missing, "direccion_envio")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// CreateFromCart turns the caller's cart into one order. The repository
// runs the whole transition in a single transaction, so either the order
// exists with one line item per cart entry and an empty cart, or nothing
// changed.
func (s *OrderService) CreateFromCart(ctx context.Context, a Actor, req CreateRequest) (int64, error) {
	if err := s.requirePermission(a, "crear"); err != nil {
		return 0, err
	}
	if err := req.validate(); err != nil {
		metrics.OrdersRejected.WithLabelValues("validacion").Inc()
		return 0, err
	}

	id, err := s.repo.CreateFromCart(ctx, a.UserID, order.CreateInput{
		PaymentMethod: req.PaymentMethod,
		Coupon:        req.Coupon,
		ShippingAddr:  req.ShippingAddr,
		Notes:         req.Notes,
	})
	if err != nil {
		if err == order.ErrEmptyCart {
			metrics.OrdersRejected.WithLabelValues("carrito_vacio").Inc()
		}
		return 0, err
	}

	metrics.OrdersCreated.Inc()
	metrics.CartsCleared.Inc()
	zap.L().Info("pedido creado desde carrito",
		zap.Int64("pedido_id", id),
		zap.Int64("usuario_id", a.UserID))

	total := 0.0
	if o, err := s.repo.GetByID(ctx, id); err == nil {
		total = o.Total
	}
	s.events.Publish(ctx, events.OrderEvent{
		Type:    events.TypeOrderCreated,
		OrderID: id,
		UserID:  a.UserID,
		Total:   total,
	})
	return id, nil
}

// CreateDirect creates an order from explicitly submitted products. The
// procedure call and the line-item links are separate statements here, so
// a failed link compensates by soft-deleting the fresh order instead of
// leaving it half-populated.
func (s *OrderService) CreateDirect(ctx context.Context, a Actor, req DirectCreateRequest) (int64, error) {
	if err := s.requirePermission(a, "crear"); err != nil {
		return 0, err
	}
	if err := req.validate(); err != nil {
		metrics.OrdersRejected.WithLabelValues("validacion").Inc()
		return 0, err
	}
	var bad []string
	if req.Total < 0 {
		bad = append(bad, "total")
	}
	if len(req.ProductIDs) == 0 {
		bad = append(bad, "productos")
	}
	if len(bad) > 0 {
		metrics.OrdersRejected.WithLabelValues("validacion").Inc()
		return 0, &ValidationError{Fields: bad}
	}

	id, err := s.repo.CreateViaProcedure(ctx, order.CreateInput{
		UserID:        a.UserID,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		Coupon:        req.Coupon,
		ShippingAddr:  req.ShippingAddr,
		Notes:         req.Notes,
	})
	if err != nil {
		return 0, err
	}

	for _, pid := range req.ProductIDs {
		if err := s.repo.LinkProduct(ctx, id, pid); err != nil {
			zap.L().Error("vincular producto falló, revirtiendo pedido",
				zap.Int64("pedido_id", id),
				zap.Int64("producto_id", pid),
				zap.Error(err))
			if delErr := s.repo.SoftDelete(ctx, id); delErr != nil {
				zap.L().Error("revertir pedido falló", zap.Int64("pedido_id", id), zap.Error(delErr))
			}
			return 0, err
		}
	}

	metrics.OrdersCreated.Inc()
	s.events.Publish(ctx, events.OrderEvent{
		Type:    events.TypeOrderCreated,
		OrderID: id,
		UserID:  a.UserID,
		Total:   req.Total,
	})
	return id, nil
}

// LinkProduct attaches one product to an existing order.
func (s *OrderService) LinkProduct(ctx context.Context, orderID, productID int64) error {
	return s.repo.LinkProduct(ctx, orderID, productID)
}

// Cancel moves the order to cancelled when its current state allows it.
// Owners cancel their own orders; support and admin cancel any.
func (s *OrderService) Cancel(ctx context.Context, a Actor, orderID int64) error {
	if err := s.requirePermission(a, "cancelar"); err != nil {
		return err
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if a.Role == "cliente" && o.UserID != a.UserID {
		return &PermissionError{Resource: "pedidos", Action: "cancelar"}
	}
	if !o.StatusID.CanCancel() {
		metrics.OrdersRejected.WithLabelValues("estado").Inc()
		return &StateConflictError{OrderID: orderID, Current: o.StatusID}
	}

	if err := s.repo.UpdateStatus(ctx, orderID, order.StatusCancelled); err != nil {
		return err
	}

	metrics.OrdersCancelled.Inc()
	zap.L().Info("pedido cancelado",
		zap.Int64("pedido_id", orderID),
		zap.Int64("usuario_id", a.UserID))
	s.events.Publish(ctx, events.OrderEvent{
		Type:    events.TypeOrderCancelled,
		OrderID: orderID,
		UserID:  o.UserID,
	})
	return nil
}

// SetStatus applies an explicit status change under the transition table;
// support and admin only.
func (s *OrderService) SetStatus(ctx context.Context, a Actor, orderID int64, to order.Status) error {
	if err := s.requirePermission(a, "actualizar"); err != nil {
		return err
	}
	if !to.Known() {
		return &ValidationError{Fields: []string{"estado_id"}}
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.CanTransition(o.StatusID, to) {
		metrics.OrdersRejected.WithLabelValues("estado").Inc()
		return &StateConflictError{OrderID: orderID, Current: o.StatusID}
	}
	return s.repo.UpdateStatus(ctx, orderID, to)
}

// SoftDelete hides the order from every listing; admin only. Calling it
// again on an already hidden order is a no-op.
func (s *OrderService) SoftDelete(ctx context.Context, a Actor, orderID int64) error {
	if err := s.requirePermission(a, "borrar"); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, orderID)
}
