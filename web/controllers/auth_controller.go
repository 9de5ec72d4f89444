package controllers

import (
	"github.com/kataras/iris/v12"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/auth"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/middleware"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/service"
)

// AuthController exposes registration, login and token renewal.
type AuthController struct {
	users *service.UserService
}

// NewAuthController creates the controller.
func NewAuthController(users *service.UserService) *AuthController {
	return &AuthController{users: users}
}

// Register handles POST /auth/registro.
func (c *AuthController) Register(ctx iris.Context) {
	var req struct {
		Email     string `json:"correo_electronico"`
		Password  string `json:"contrasena"`
		FirstName string `json:"nombre"`
		LastName  string `json:"apellido_paterno"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	u, err := c.users.Register(ctx.Request().Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, u)
}

// Login handles POST /auth/login: returns the token and the profile the
// browser keeps in local storage.
func (c *AuthController) Login(ctx iris.Context) {
	var req struct {
		Email    string `json:"correo_electronico"`
		Password string `json:"contrasena"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	token, u, err := c.users.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"token": token, "usuario": u})
}

// Renew handles POST /auth/renovar. It runs behind RequireAuth, so the
// current token has already been verified.
func (c *AuthController) Renew(ctx iris.Context) {
	claims := &auth.Claims{
		UserID: ctx.Values().GetInt64Default(middleware.CtxUserID, 0),
		Email:  ctx.Values().GetStringDefault(middleware.CtxEmail, ""),
		Role:   ctx.Values().GetStringDefault(middleware.CtxRole, ""),
	}
	token, u, err := c.users.Renew(ctx.Request().Context(), claims)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, iris.Map{"token": token, "usuario": u})
}
