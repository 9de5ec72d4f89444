package server

import (
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/auth"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/authz"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/events"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/infra/mq"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/infra/redis"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/metrics"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/middleware"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/repository/mysql"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/service"
	webcontrollers "github.com/CrisBM7/TianguiStore-Tienda-en--Linea/web/controllers"
)

// RegisterRoutes wires infrastructure, services and all HTTP routes.
func RegisterRoutes(app *iris.Application, cfg *config.Config) {
	db := mysql.Init(&cfg.MySQL)
	redisClient := redis.Init(&cfg.Redis)
	mqConn := mq.Init(&cfg.RabbitMQ)

	policies, err := authz.New(&cfg.Authz)
	if err != nil {
		zap.L().Fatal("cargando política de acceso", zap.Error(err))
	}

	ring := auth.NewConsistentHashRing(cfg.Auth.Nodes, cfg.Auth.HashReplicas)
	tokenCache := auth.NewTokenCache(redisClient, ring, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)

	publisher := events.NewPublisher(mqConn)

	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	cartRepo := mysql.NewCartRepository(db)

	userSvc := service.NewUserService(userRepo, &cfg.JWT)
	productSvc := service.NewProductService(productRepo)
	orderSvc := service.NewOrderService(orderRepo, policies, publisher)
	cartSvc := service.NewCartService(cartRepo)

	authCtl := webcontrollers.NewAuthController(userSvc)
	productoCtl := webcontrollers.NewProductoController(productSvc)
	pedidoCtl := webcontrollers.NewPedidoController(orderSvc)
	carritoCtl := webcontrollers.NewCarritoController(cartSvc)

	app.UseRouter(middleware.CORS("*"))
	app.Use(middleware.AccessLog())
	app.Use(middleware.APIRateLimit())

	// Static front end.
	app.HandleDir("/", iris.Dir("./web/public"))

	app.Get("/salud", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"code": 0, "msg": "ok"})
	})
	app.Get("/metrics", iris.FromStd(metrics.Handler()))

	requireAuth := middleware.RequireAuth(&cfg.JWT, tokenCache)

	authParty := app.Party("/auth")
	authParty.Post("/registro", authCtl.Register)
	authParty.Post("/login", authCtl.Login)
	authParty.Post("/renovar", requireAuth, authCtl.Renew)

	productos := app.Party("/productos")
	productos.Get("/", productoCtl.List)
	productos.Get("/{id:int64}", productoCtl.Get)

	pedidos := app.Party("/pedidos", requireAuth)
	pedidos.Get("/", pedidoCtl.List)
	pedidos.Post("/mis", pedidoCtl.ListMine)
	pedidos.Post("/", pedidoCtl.Create)
	pedidos.Post("/makepp", pedidoCtl.LinkProduct)
	pedidos.Get("/traerinfopedido/{id:int64}", pedidoCtl.LineItems)
	pedidos.Post("/desde-carrito", pedidoCtl.CreateFromCart)
	pedidos.Put("/{id:int64}/cancelar", pedidoCtl.Cancel)
	pedidos.Put("/{id:int64}/estado", pedidoCtl.SetStatus)
	pedidos.Delete("/{id:int64}", pedidoCtl.Delete)

	carrito := app.Party("/carrito", requireAuth)
	carrito.Get("/", carritoCtl.List)
	carrito.Get("/total", pedidoCtl.CartTotal)
	carrito.Put("/", carritoCtl.Put)
	carrito.Delete("/{producto_id:int64}", carritoCtl.Remove)
	carrito.Delete("/", carritoCtl.Clear)
}
