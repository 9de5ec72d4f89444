package server

import (
	"errors"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/auth"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/authz"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/order"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/product"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/events"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/infra/mq"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/infra/redis"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/middleware"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/repository/mysql"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/service"
)

// RegisterAdminRoutes wires the back-office HTTP surface. It runs as its
// own process, separate from the storefront, and every route requires the
// admin role.
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) {
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	policies, err := authz.New(&cfg.Authz)
	if err != nil {
		zap.L().Fatal("cargando política de acceso", zap.Error(err))
	}

	ring := auth.NewConsistentHashRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	tokenCache := auth.NewTokenCache(redisClient, ring, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)

	productSvc := service.NewProductService(productRepo)
	orderSvc := service.NewOrderService(orderRepo, policies, events.NewPublisher(mqConn))

	app.Use(middleware.AccessLog())

	requireAdmin := func(ctx iris.Context) {
		role := ctx.Values().GetString(middleware.CtxRole)
		if role != "admin" {
			ctx.StopWithJSON(403, iris.Map{"code": 403, "msg": "se requiere rol admin"})
			return
		}
		ctx.Next()
	}

	api := app.Party("/api", middleware.RequireAuth(&cfg.JWT, tokenCache), requireAdmin)

	// Catalog management. The public list hides unpublished products;
	// this one does not.
	api.Get("/productos", func(ctx iris.Context) {
		list, err := productSvc.ListAll(ctx.Request().Context())
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": "error interno"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Post("/productos", func(ctx iris.Context) {
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		p := &product.Product{}
		if err := req.applyTo(p); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Create(ctx.Request().Context(), p); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": "error interno"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	api.Put("/productos/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "producto no encontrado"})
			return
		}
		var req productRequest
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := req.applyTo(p); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		if err := productSvc.Update(ctx.Request().Context(), p); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": "error interno"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": p})
	})

	// Order oversight.
	api.Get("/pedidos", func(ctx iris.Context) {
		actor := service.Actor{
			UserID: ctx.Values().GetInt64Default(middleware.CtxUserID, 0),
			Role:   ctx.Values().GetString(middleware.CtxRole),
		}
		list, err := orderSvc.ListAll(ctx.Request().Context(), actor)
		if err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": "error interno"})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "data": list})
	})

	api.Put("/pedidos/{id:int64}/estado", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		var req struct {
			StatusID int `json:"estado_id"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		actor := service.Actor{
			UserID: ctx.Values().GetInt64Default(middleware.CtxUserID, 0),
			Role:   ctx.Values().GetString(middleware.CtxRole),
		}
		if err := orderSvc.SetStatus(ctx.Request().Context(), actor, id, order.Status(req.StatusID)); err != nil {
			var conflict *service.StateConflictError
			if errors.As(err, &conflict) {
				ctx.StopWithJSON(409, iris.Map{"code": 409, "msg": err.Error()})
				return
			}
			ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
			return
		}
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})
}

type productRequest struct {
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Stock       int64   `json:"stock"`
	Category    string  `json:"categoria"`
	Published   bool    `json:"publicado"`
}

func (r *productRequest) applyTo(p *product.Product) error {
	if r.Name == "" {
		return errors.New("nombre es obligatorio")
	}
	if r.Price < 0 {
		return errors.New("precio no puede ser negativo")
	}
	p.Name = r.Name
	p.Description = r.Description
	p.Price = r.Price
	p.Stock = r.Stock
	p.Category = r.Category
	p.Published = r.Published
	return nil
}
