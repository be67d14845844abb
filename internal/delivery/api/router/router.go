// Package router wires handlers and the authorization gate onto echo routes.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"storerating/internal/delivery/api/middleware"
	"storerating/internal/delivery/api/router/handler"
	"storerating/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AdminHandler   *handler.AdminHandler
	RatingHandler  *handler.RatingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

type router struct {
	authHandler    *handler.AuthHandler
	adminHandler   *handler.AdminHandler
	ratingHandler  *handler.RatingHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		adminHandler:   params.AdminHandler,
		ratingHandler:  params.RatingHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes. Role checks happen only here;
// handlers trust the identity bound by the gate.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
	}

	adminGroup := api.Group("/admin", r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.POST("/users", r.adminHandler.CreateUser)
		adminGroup.POST("/stores", r.adminHandler.CreateStore)
	}

	userGroup := api.Group("/user", r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(entity.RoleUser))
	{
		userGroup.POST("/ratings", r.ratingHandler.SubmitRating)
		userGroup.GET("/stores/:id/rating", r.ratingHandler.StoreAverage)
		userGroup.PUT("/password", r.authHandler.ChangePassword)
	}

	ownerGroup := api.Group("/owner", r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(entity.RoleOwner))
	{
		ownerGroup.GET("/my-store/ratings", r.ratingHandler.MyStoreRatings)
		ownerGroup.GET("/my-store/qr", r.ratingHandler.MyStoreQRCode)
		ownerGroup.PUT("/password", r.authHandler.ChangePassword)
	}
}
