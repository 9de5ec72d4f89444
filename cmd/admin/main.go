package main

import (
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/server"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/pkg/log"
)

func main() {
	cfg, err := config.Load("./config")
	if err != nil {
		panic(err)
	}

	log.InitLogger(cfg.Log.Level, cfg.Log.Development)
	defer log.Sync()

	app := iris.New()
	server.RegisterAdminRoutes(app, cfg)

	addr := cfg.AdminServer.Addr()
	zap.L().Info("servidor administrativo escuchando", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		zap.L().Fatal("servidor detenido", zap.Error(err))
	}
}
