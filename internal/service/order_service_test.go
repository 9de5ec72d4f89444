package service

import (
	"context"
	"errors"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/authz"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/order"
)

const testModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

func testPolicies(t *testing.T) *authz.Service {
	t.Helper()
	m, err := model.NewModelFromString(testModel)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)
	_, err = e.AddPolicies([][]string{
		{"cliente", "pedidos", "crear"},
		{"cliente", "pedidos", "cancelar"},
		{"soporte", "pedidos", "leer"},
		{"soporte", "pedidos", "cancelar"},
		{"soporte", "pedidos", "actualizar"},
		{"admin", "pedidos", "crear"},
		{"admin", "pedidos", "borrar"},
	})
	require.NoError(t, err)
	_, err = e.AddGroupingPolicy("admin", "soporte")
	require.NoError(t, err)
	return authz.NewWithEnforcer(e)
}

// orderRepoMock implements order.Repository in memory and records the
// calls the service makes.
type orderRepoMock struct {
	orders map[int64]*order.Order

	cartOrderID   int64
	cartErr       error
	procOrderID   int64
	procErr       error
	linkErrOn     int64
	linked        []int64
	softDeleted   []int64
	statusUpdates map[int64]order.Status
}

func newOrderRepoMock() *orderRepoMock {
	return &orderRepoMock{
		orders:        make(map[int64]*order.Order),
		statusUpdates: make(map[int64]order.Status),
	}
}

func (m *orderRepoMock) ListAll(ctx context.Context) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *orderRepoMock) ListByUser(ctx context.Context, userID int64) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *orderRepoMock) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, errors.New("no encontrado")
	}
	return o, nil
}

func (m *orderRepoMock) CreateViaProcedure(ctx context.Context, in order.CreateInput) (int64, error) {
	if m.procErr != nil {
		return 0, m.procErr
	}
	m.orders[m.procOrderID] = &order.Order{ID: m.procOrderID, UserID: in.UserID, StatusID: order.StatusPending, Total: in.Total}
	return m.procOrderID, nil
}

func (m *orderRepoMock) CreateFromCart(ctx context.Context, userID int64, in order.CreateInput) (int64, error) {
	if m.cartErr != nil {
		return 0, m.cartErr
	}
	m.orders[m.cartOrderID] = &order.Order{ID: m.cartOrderID, UserID: userID, StatusID: order.StatusPending, Total: 150.0}
	return m.cartOrderID, nil
}

func (m *orderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status order.Status) error {
	m.statusUpdates[orderID] = status
	if o, ok := m.orders[orderID]; ok {
		o.StatusID = status
	}
	return nil
}

func (m *orderRepoMock) SoftDelete(ctx context.Context, orderID int64) error {
	m.softDeleted = append(m.softDeleted, orderID)
	return nil
}

func (m *orderRepoMock) LinkProduct(ctx context.Context, orderID, productID int64) error {
	if m.linkErrOn != 0 && productID == m.linkErrOn {
		return errors.New("vincular falló")
	}
	m.linked = append(m.linked, productID)
	return nil
}

func (m *orderRepoMock) LineItems(ctx context.Context, orderID int64) ([]*order.LineItem, error) {
	return nil, nil
}

func (m *orderRepoMock) CartTotal(ctx context.Context, userID int64) (*float64, error) {
	return nil, nil
}

func (m *orderRepoMock) ClearCart(ctx context.Context, userID int64) error {
	return nil
}

func newTestOrderService(repo order.Repository, t *testing.T) *OrderService {
	return NewOrderService(repo, testPolicies(t), nil)
}

// cartEntry is one row of the in-memory cart behind cartBackedRepoMock.
type cartEntry struct {
	productID int64
	qty       int
	price     float64
}

// cartBackedRepoMock models the cart→order transition instead of returning
// canned values: the order total comes from the entries, one line item is
// written per entry and the cart ends empty.
type cartBackedRepoMock struct {
	*orderRepoMock
	cart   []cartEntry
	nextID int64
	items  []*order.LineItem
}

func (m *cartBackedRepoMock) CartTotal(ctx context.Context, userID int64) (*float64, error) {
	if len(m.cart) == 0 {
		return nil, nil
	}
	total := 0.0
	for _, e := range m.cart {
		total += float64(e.qty) * e.price
	}
	return &total, nil
}

func (m *cartBackedRepoMock) CreateFromCart(ctx context.Context, userID int64, in order.CreateInput) (int64, error) {
	total, err := m.CartTotal(ctx, userID)
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, order.ErrEmptyCart
	}
	m.nextID++
	id := m.nextID
	m.orders[id] = &order.Order{
		ID:            id,
		UserID:        userID,
		StatusID:      order.StatusPending,
		Total:         *total,
		PaymentMethod: in.PaymentMethod,
		ShippingAddr:  in.ShippingAddr,
		Notes:         in.Notes,
	}
	for _, e := range m.cart {
		m.items = append(m.items, &order.LineItem{OrderID: id, ProductID: e.productID})
	}
	m.cart = nil
	return id, nil
}

func (m *cartBackedRepoMock) LineItems(ctx context.Context, orderID int64) ([]*order.LineItem, error) {
	var out []*order.LineItem
	for _, it := range m.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func TestCreateFromCart(t *testing.T) {
	repo := newOrderRepoMock()
	repo.cartOrderID = 42
	svc := newTestOrderService(repo, t)
	actor := Actor{UserID: 7, Role: "cliente"}

	id, err := svc.CreateFromCart(context.Background(), actor, CreateRequest{
		PaymentMethod: "tarjeta",
		ShippingAddr:  "Calle 5 de Mayo 10",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, int64(7), repo.orders[42].UserID)
}

func TestCreateFromCartValidation(t *testing.T) {
	svc := newTestOrderService(newOrderRepoMock(), t)
	actor := Actor{UserID: 7, Role: "cliente"}

	_, err := svc.CreateFromCart(context.Background(), actor, CreateRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"metodo_pago", "direccion_envio"}, verr.Fields)
}

func TestCreateFromCartEmpty(t *testing.T) {
	repo := newOrderRepoMock()
	repo.cartErr = order.ErrEmptyCart
	svc := newTestOrderService(repo, t)
	actor := Actor{UserID: 7, Role: "cliente"}

	_, err := svc.CreateFromCart(context.Background(), actor, CreateRequest{
		PaymentMethod: "efectivo",
		ShippingAddr:  "Av. Juárez 1",
	})
	assert.ErrorIs(t, err, order.ErrEmptyCart)
}

func TestCreateFromCartPermission(t *testing.T) {
	svc := newTestOrderService(newOrderRepoMock(), t)
	actor := Actor{UserID: 7, Role: "soporte"}

	_, err := svc.CreateFromCart(context.Background(), actor, CreateRequest{
		PaymentMethod: "tarjeta",
		ShippingAddr:  "Calle 1",
	})
	var perr *PermissionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "crear", perr.Action)
}

func TestCreateDirectCompensatesFailedLink(t *testing.T) {
	repo := newOrderRepoMock()
	repo.procOrderID = 10
	repo.linkErrOn = 3
	svc := newTestOrderService(repo, t)
	actor := Actor{UserID: 7, Role: "cliente"}

	_, err := svc.CreateDirect(context.Background(), actor, DirectCreateRequest{
		CreateRequest: CreateRequest{PaymentMethod: "tarjeta", ShippingAddr: "Calle 1"},
		Total:         99.0,
		ProductIDs:    []int64{1, 3, 5},
	})
	require.Error(t, err)
	assert.Equal(t, []int64{1}, repo.linked)
	assert.Equal(t, []int64{10}, repo.softDeleted, "el pedido a medias debe ocultarse")
}

func TestCreateDirectValidation(t *testing.T) {
	svc := newTestOrderService(newOrderRepoMock(), t)
	actor := Actor{UserID: 7, Role: "cliente"}

	_, err := svc.CreateDirect(context.Background(), actor, DirectCreateRequest{
		CreateRequest: CreateRequest{PaymentMethod: "tarjeta", ShippingAddr: "Calle 1"},
		Total:         -1,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"total", "productos"}, verr.Fields)
}

func TestCancelOwnPendingOrder(t *testing.T) {
	repo := newOrderRepoMock()
	repo.orders[5] = &order.Order{ID: 5, UserID: 7, StatusID: order.StatusPending}
	svc := newTestOrderService(repo, t)

	err := svc.Cancel(context.Background(), Actor{UserID: 7, Role: "cliente"}, 5)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, repo.statusUpdates[5])
}

func TestCancelShippedOrderConflicts(t *testing.T) {
	repo := newOrderRepoMock()
	repo.orders[5] = &order.Order{ID: 5, UserID: 7, StatusID: order.StatusShipped}
	svc := newTestOrderService(repo, t)

	err := svc.Cancel(context.Background(), Actor{UserID: 7, Role: "cliente"}, 5)
	var serr *StateConflictError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, order.StatusShipped, serr.Current)
	assert.Empty(t, repo.statusUpdates)
}

func TestCancelForeignOrderDenied(t *testing.T) {
	repo := newOrderRepoMock()
	repo.orders[5] = &order.Order{ID: 5, UserID: 99, StatusID: order.StatusPending}
	svc := newTestOrderService(repo, t)

	err := svc.Cancel(context.Background(), Actor{UserID: 7, Role: "cliente"}, 5)
	var perr *PermissionError
	require.ErrorAs(t, err, &perr)
	assert.Empty(t, repo.statusUpdates)
}

func TestCancelForeignOrderAsSupport(t *testing.T) {
	repo := newOrderRepoMock()
	repo.orders[5] = &order.Order{ID: 5, UserID: 99, StatusID: order.StatusProcessing}
	svc := newTestOrderService(repo, t)

	err := svc.Cancel(context.Background(), Actor{UserID: 7, Role: "soporte"}, 5)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, repo.statusUpdates[5])
}

func TestSetStatusFollowsTransitions(t *testing.T) {
	repo := newOrderRepoMock()
	repo.orders[5] = &order.Order{ID: 5, UserID: 99, StatusID: order.StatusPending}
	svc := newTestOrderService(repo, t)
	actor := Actor{UserID: 1, Role: "admin"}

	require.NoError(t, svc.SetStatus(context.Background(), actor, 5, order.StatusProcessing))
	require.NoError(t, svc.SetStatus(context.Background(), actor, 5, order.StatusShipped))
	require.NoError(t, svc.SetStatus(context.Background(), actor, 5, order.StatusCompleted))

	err := svc.SetStatus(context.Background(), actor, 5, order.StatusCancelled)
	var serr *StateConflictError
	require.ErrorAs(t, err, &serr)
}

func TestSetStatusUnknownValue(t *testing.T) {
	repo := newOrderRepoMock()
	repo.orders[5] = &order.Order{ID: 5, StatusID: order.StatusPending}
	svc := newTestOrderService(repo, t)

	err := svc.SetStatus(context.Background(), Actor{Role: "admin"}, 5, order.Status(42))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestListAllRequiresReadPermission(t *testing.T) {
	svc := newTestOrderService(newOrderRepoMock(), t)

	_, err := svc.ListAll(context.Background(), Actor{UserID: 7, Role: "cliente"})
	var perr *PermissionError
	require.ErrorAs(t, err, &perr)

	_, err = svc.ListAll(context.Background(), Actor{UserID: 1, Role: "admin"})
	assert.NoError(t, err)
}

// Checkout over a two-entry cart: 2×$10.00 + 1×$5.00. The order must carry
// the $25.00 total, one line item per cart entry, and afterwards the cart
// total reads as "sin total" (nil), not zero.
func TestCreateFromCartBuildsOrderFromEntries(t *testing.T) {
	repo := &cartBackedRepoMock{
		orderRepoMock: newOrderRepoMock(),
		cart: []cartEntry{
			{productID: 1, qty: 2, price: 10.0},
			{productID: 2, qty: 1, price: 5.0},
		},
	}
	svc := newTestOrderService(repo, t)
	actor := Actor{UserID: 42, Role: "cliente"}

	before, err := svc.CartTotal(context.Background(), actor)
	require.NoError(t, err)
	require.NotNil(t, before)
	assert.Equal(t, 25.0, *before)

	id, err := svc.CreateFromCart(context.Background(), actor, CreateRequest{
		PaymentMethod: "tarjeta",
		ShippingAddr:  "Calle Principal 123",
		Notes:         "dejar en la puerta",
	})
	require.NoError(t, err)

	created, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.UserID)
	assert.Equal(t, 25.0, created.Total)
	assert.Equal(t, order.StatusPending, created.StatusID)

	items, err := svc.LineItems(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, int64(2), items[1].ProductID)

	after, err := svc.CartTotal(context.Background(), actor)
	require.NoError(t, err)
	assert.Nil(t, after, "el carrito debe quedar vacío")
}

func TestSetStatusRequiresUpdatePermission(t *testing.T) {
	repo := newOrderRepoMock()
	repo.orders[5] = &order.Order{ID: 5, UserID: 7, StatusID: order.StatusPending}
	svc := newTestOrderService(repo, t)

	err := svc.SetStatus(context.Background(), Actor{UserID: 7, Role: "cliente"}, 5, order.StatusProcessing)
	var perr *PermissionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "actualizar", perr.Action)
	assert.Empty(t, repo.statusUpdates)
}

func TestSoftDeleteRequiresDeletePermission(t *testing.T) {
	repo := newOrderRepoMock()
	repo.orders[5] = &order.Order{ID: 5, UserID: 7, StatusID: order.StatusCompleted}
	svc := newTestOrderService(repo, t)

	err := svc.SoftDelete(context.Background(), Actor{UserID: 2, Role: "soporte"}, 5)
	var perr *PermissionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "borrar", perr.Action)
	assert.Empty(t, repo.softDeleted)

	require.NoError(t, svc.SoftDelete(context.Background(), Actor{UserID: 1, Role: "admin"}, 5))
	assert.Equal(t, []int64{5}, repo.softDeleted)
}
