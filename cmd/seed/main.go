package main

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/product"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/user"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/repository/mysql"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/pkg/log"
)

// Seeds a demo catalog and an admin account so a fresh install is usable
// without touching the database by hand.
func main() {
	cfg, err := config.Load("./config")
	if err != nil {
		panic(err)
	}

	log.InitLogger(cfg.Log.Level, cfg.Log.Development)
	defer log.Sync()

	db := mysql.Init(&cfg.MySQL)
	ctx := context.Background()

	users := mysql.NewUserRepository(db)
	products := mysql.NewProductRepository(db)

	if _, err := users.GetByEmail(ctx, "admin@tianguistore.mx"); err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("cambiame"), bcrypt.DefaultCost)
		if err != nil {
			zap.L().Fatal("generando hash", zap.Error(err))
		}
		admin := &user.User{
			Email:        "admin@tianguistore.mx",
			PasswordHash: string(hash),
			FirstName:    "Admin",
			LastName:     "TianguiStore",
			Role:         "admin",
		}
		if err := users.Create(ctx, admin); err != nil {
			zap.L().Fatal("creando admin", zap.Error(err))
		}
		zap.L().Info("admin creado", zap.Int64("usuario_id", admin.ID))
	} else {
		zap.L().Info("admin ya existe, se omite")
	}

	catalog := []*product.Product{
		{Name: "Canasta artesanal", Description: "Canasta tejida a mano", Price: 249.00, Stock: 40, Category: "hogar", Published: true},
		{Name: "Molcajete de piedra", Description: "Molcajete tradicional de piedra volcánica", Price: 499.50, Stock: 15, Category: "cocina", Published: true},
		{Name: "Rebozo de seda", Description: "Rebozo tejido en telar de cintura", Price: 899.00, Stock: 10, Category: "ropa", Published: true},
		{Name: "Alebrije mediano", Description: "Figura tallada y pintada a mano", Price: 650.00, Stock: 8, Category: "decoracion", Published: true},
		{Name: "Café de altura 1kg", Description: "Grano tostado medio, origen Chiapas", Price: 320.00, Stock: 60, Category: "alimentos", Published: true},
		{Name: "Juego de talavera", Description: "Seis piezas de talavera poblana", Price: 1200.00, Stock: 5, Category: "cocina", Published: false},
	}

	existing, err := products.ListPublished(ctx)
	if err != nil {
		zap.L().Fatal("consultando catálogo", zap.Error(err))
	}
	if len(existing) > 0 {
		zap.L().Info("catálogo ya poblado, se omite", zap.Int("productos", len(existing)))
		return
	}

	for _, p := range catalog {
		if err := products.Create(ctx, p); err != nil {
			zap.L().Fatal("creando producto", zap.String("nombre", p.Name), zap.Error(err))
		}
		zap.L().Info("producto creado", zap.Int64("producto_id", p.ID), zap.String("nombre", p.Name))
	}
}
