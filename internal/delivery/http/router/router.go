// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"taskman/internal/delivery/http/middleware"
	"taskman/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	TaskHandler    *handler.TaskHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	taskHandler    *handler.TaskHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		taskHandler:    params.TaskHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	auth := r.authMiddleware.Authenticate

	// Public user routes
	e.POST("/users", r.userHandler.Register)
	e.POST("/users/login", r.userHandler.Login)
	e.GET("/users/:id/avatar", r.userHandler.GetAvatar)

	// Authenticated user routes
	e.POST("/users/logout", r.userHandler.Logout, auth)
	e.POST("/users/logoutAll", r.userHandler.LogoutAll, auth)
	e.GET("/users/me", r.userHandler.Me, auth)
	e.PATCH("/users/me", r.userHandler.Update, auth)
	e.DELETE("/users/me", r.userHandler.Delete, auth)
	e.POST("/users/me/avatar", r.userHandler.UploadAvatar, auth)
	e.DELETE("/users/me/avatar", r.userHandler.DeleteAvatar, auth)

	// Legacy listing route, now behind authentication
	e.GET("/users", r.userHandler.List, auth)

	// Task routes, all authenticated
	e.POST("/tasks", r.taskHandler.Create, auth)
	e.GET("/tasks", r.taskHandler.List, auth)
	e.GET("/tasks/readAll", r.taskHandler.ListAll, auth)
	e.GET("/tasks/:id", r.taskHandler.Get, auth)
	e.PATCH("/tasks/:id", r.taskHandler.Update, auth)
	e.DELETE("/tasks/:id", r.taskHandler.Delete, auth)
}
