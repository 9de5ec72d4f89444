package controllers

import (
	"github.com/kataras/iris/v12"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/order"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/service"
)

// PedidoController exposes the order operations under /pedidos.
type PedidoController struct {
	orders *service.OrderService
}

// NewPedidoController creates the controller.
func NewPedidoController(orders *service.OrderService) *PedidoController {
	return &PedidoController{orders: orders}
}

// List handles GET /pedidos: every visible order, support/admin only.
func (c *PedidoController) List(ctx iris.Context) {
	list, err := c.orders.ListAll(ctx.Request().Context(), actorFrom(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, list)
}

// ListMine handles POST /pedidos/mis. The route keeps its legacy shape but
// the user id comes from the verified token, never from the body.
func (c *PedidoController) ListMine(ctx iris.Context) {
	list, err := c.orders.ListMine(ctx.Request().Context(), actorFrom(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, list)
}

// Create handles POST /pedidos: an order from explicitly listed products.
func (c *PedidoController) Create(ctx iris.Context) {
	var req service.DirectCreateRequest
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	id, err := c.orders.CreateDirect(ctx.Request().Context(), actorFrom(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"pedido_id": id})
}

// LinkProduct handles POST /pedidos/makepp.
func (c *PedidoController) LinkProduct(ctx iris.Context) {
	var req struct {
		OrderID   int64 `json:"fkPedidos"`
		ProductID int64 `json:"fkProductos"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	if req.OrderID <= 0 || req.ProductID <= 0 {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "fkPedidos y fkProductos son requeridos"})
		return
	}
	if err := c.orders.LinkProduct(ctx.Request().Context(), req.OrderID, req.ProductID); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"pedido_id": req.OrderID, "producto_id": req.ProductID})
}

// LineItems handles GET /pedidos/traerinfopedido/{id}.
func (c *PedidoController) LineItems(ctx iris.Context) {
	id, err := ctx.Params().GetInt64("id")
	if err != nil || id <= 0 {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "id de pedido inválido"})
		return
	}
	items, err := c.orders.LineItems(ctx.Request().Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"pedidos": items})
}

// CartTotal handles GET /carrito/total: the sum the checkout would charge.
// A null total means the cart is empty.
func (c *PedidoController) CartTotal(ctx iris.Context) {
	total, err := c.orders.CartTotal(ctx.Request().Context(), actorFrom(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"total": total})
}

// CreateFromCart handles POST /pedidos/desde-carrito.
func (c *PedidoController) CreateFromCart(ctx iris.Context) {
	var req service.CreateRequest
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	id, err := c.orders.CreateFromCart(ctx.Request().Context(), actorFrom(ctx), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"pedido_id": id})
}

// Cancel handles PUT /pedidos/{id}/cancelar.
func (c *PedidoController) Cancel(ctx iris.Context) {
	id, err := ctx.Params().GetInt64("id")
	if err != nil || id <= 0 {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "id de pedido inválido"})
		return
	}
	if err := c.orders.Cancel(ctx.Request().Context(), actorFrom(ctx), id); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"pedido_id": id, "estado_id": order.StatusCancelled})
}

// SetStatus handles PUT /pedidos/{id}/estado, support/admin only.
func (c *PedidoController) SetStatus(ctx iris.Context) {
	id, err := ctx.Params().GetInt64("id")
	if err != nil || id <= 0 {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "id de pedido inválido"})
		return
	}
	var req struct {
		StatusID order.Status `json:"estado_id"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	if err := c.orders.SetStatus(ctx.Request().Context(), actorFrom(ctx), id, req.StatusID); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"pedido_id": id, "estado_id": req.StatusID})
}

// Delete handles DELETE /pedidos/{id}: soft delete, support/admin only.
func (c *PedidoController) Delete(ctx iris.Context) {
	id, err := ctx.Params().GetInt64("id")
	if err != nil || id <= 0 {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "id de pedido inválido"})
		return
	}
	if err := c.orders.SoftDelete(ctx.Request().Context(), actorFrom(ctx), id); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"pedido_id": id})
}
