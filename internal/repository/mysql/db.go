package mysql

import (
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/cart"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/order"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/product"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/user"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Init opens the shared GORM handle, auto-migrates the owned entities and
// runs the SQL migrations (status seed, stored procedure).
func Init(cfg *config.MySQLConfig) *gorm.DB {
	once.Do(func() {
		var err error
		db, err = gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
		if err != nil {
			zap.L().Fatal("failed to connect mysql", zap.Error(err))
		}

		if err = db.AutoMigrate(
			&user.User{},
			&product.Product{},
			&order.Order{},
			&order.LineItem{},
			&cart.Entry{},
		); err != nil {
			zap.L().Fatal("auto migrate failed", zap.Error(err))
		}

		if err = RunMigrations(db, cfg.MigrationsDir); err != nil {
			zap.L().Fatal("sql migrations failed", zap.Error(err))
		}
	})
	return db
}

// DB returns the shared handle.
func DB() *gorm.DB {
	return db
}
