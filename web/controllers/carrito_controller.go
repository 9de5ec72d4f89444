package controllers

import (
	"github.com/kataras/iris/v12"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/service"
)

// CarritoController exposes cart management under /carrito.
type CarritoController struct {
	carts *service.CartService
}

// NewCarritoController creates the controller.
func NewCarritoController(carts *service.CartService) *CarritoController {
	return &CarritoController{carts: carts}
}

// List handles GET /carrito.
func (c *CarritoController) List(ctx iris.Context) {
	entries, err := c.carts.List(ctx.Request().Context(), actorFrom(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, entries)
}

// Put handles PUT /carrito: sets the quantity for one product.
func (c *CarritoController) Put(ctx iris.Context) {
	var req struct {
		ProductID int64 `json:"producto_id"`
		Quantity  int64 `json:"cantidad"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	if err := c.carts.Put(ctx.Request().Context(), actorFrom(ctx), req.ProductID, req.Quantity); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"producto_id": req.ProductID, "cantidad": req.Quantity})
}

// Remove handles DELETE /carrito/{producto_id}.
func (c *CarritoController) Remove(ctx iris.Context) {
	productID, err := ctx.Params().GetInt64("producto_id")
	if err != nil || productID <= 0 {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "producto_id inválido"})
		return
	}
	if err := c.carts.Remove(ctx.Request().Context(), actorFrom(ctx), productID); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"producto_id": productID})
}

// Clear handles DELETE /carrito.
func (c *CarritoController) Clear(ctx iris.Context) {
	if err := c.carts.Clear(ctx.Request().Context(), actorFrom(ctx)); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"carrito": "vacío"})
}
