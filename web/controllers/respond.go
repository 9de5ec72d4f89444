package controllers

import (
	"errors"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/datamodels/order"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/middleware"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/service"
)

// actorFrom builds the authenticated caller from the values RequireAuth
// stored. Request bodies never override it.
func actorFrom(ctx iris.Context) service.Actor {
	return service.Actor{
		UserID: ctx.Values().GetInt64Default(middleware.CtxUserID, 0),
		Role:   ctx.Values().GetStringDefault(middleware.CtxRole, "cliente"),
	}
}

func ok(ctx iris.Context, data interface{}) {
	_ = ctx.JSON(iris.Map{"code": 0, "data": data})
}

// fail translates service and repository errors into the response
// envelope. Persistence failures stay generic toward the caller.
func fail(ctx iris.Context, err error) {
	var ve *service.ValidationError
	var pe *service.PermissionError
	var sce *service.StateConflictError

	switch {
	case errors.As(err, &ve):
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": ve.Error(), "campos": ve.Fields})
	case errors.Is(err, service.ErrBadCredentials):
		ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": err.Error()})
	case errors.As(err, &pe):
		ctx.StopWithJSON(403, iris.Map{"code": 403, "msg": pe.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "no encontrado"})
	case errors.As(err, &sce):
		ctx.StopWithJSON(409, iris.Map{"code": 409, "msg": sce.Error()})
	case errors.Is(err, order.ErrEmptyCart):
		ctx.StopWithJSON(409, iris.Map{"code": 409, "msg": err.Error()})
	case errors.Is(err, order.ErrNotCreated):
		ctx.StopWithJSON(409, iris.Map{"code": 409, "msg": err.Error()})
	default:
		zap.L().Error("request failed", zap.String("path", ctx.Path()), zap.Error(err))
		ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": "ha ocurrido un error inesperado"})
	}
}
