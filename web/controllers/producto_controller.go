package controllers

import (
	"github.com/kataras/iris/v12"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/service"
)

// ProductoController exposes the public catalog under /productos.
type ProductoController struct {
	products *service.ProductService
}

// NewProductoController creates the controller.
func NewProductoController(products *service.ProductService) *ProductoController {
	return &ProductoController{products: products}
}

// List handles GET /productos with an optional categoria filter.
func (c *ProductoController) List(ctx iris.Context) {
	category := ctx.URLParam("categoria")
	var (
		list interface{}
		err  error
	)
	if category != "" {
		list, err = c.products.ListByCategory(ctx.Request().Context(), category)
	} else {
		list, err = c.products.ListPublished(ctx.Request().Context())
	}
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, list)
}

// Get handles GET /productos/{id}.
func (c *ProductoController) Get(ctx iris.Context) {
	id, err := ctx.Params().GetInt64("id")
	if err != nil || id <= 0 {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": "producto_id inválido"})
		return
	}
	p, err := c.products.GetByID(ctx.Request().Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, p)
}
