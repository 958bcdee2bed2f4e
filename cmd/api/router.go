package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

// SetupRouter registers middleware and all API routes.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Authenticate(c.Resolver))

	v1.GET("/health", healthCheckHandler(c))

	setupAuthRoutes(v1, c)
	setupCategoryRoutes(v1, c)
	setupPostRoutes(v1, c)
	setupCommentRoutes(v1, c)
	setupAdminRoutes(v1, c)

	return router
}

func setupAuthRoutes(rg *gin.RouterGroup, c *container.Container) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", c.UserHandler.Register)
		authGroup.POST("/login", c.UserHandler.Login)

		jwtGroup := authGroup.Group("/jwt")
		{
			jwtGroup.POST("/token", c.UserHandler.IssueJWT)
			jwtGroup.POST("/refresh", c.UserHandler.RefreshJWT)
			jwtGroup.POST("/verify", c.UserHandler.VerifyJWT)
		}
	}
}

func setupCategoryRoutes(rg *gin.RouterGroup, c *container.Container) {
	categories := rg.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:id", c.CategoryHandler.Get)

		// Staff-only checks live in the service layer.
		categories.POST("", middleware.RequireAuth(), c.CategoryHandler.Create)
		categories.PUT("/:id", middleware.RequireAuth(), c.CategoryHandler.Update)
		categories.DELETE("/:id", middleware.RequireAuth(), c.CategoryHandler.Delete)
	}
}

func setupPostRoutes(rg *gin.RouterGroup, c *container.Container) {
	posts := rg.Group("/posts")
	{
		posts.GET("", c.PostHandler.List)
		posts.GET("/:id", c.PostHandler.Get)

		posts.POST("", middleware.RequireAuth(), c.PostHandler.Create)
		posts.PUT("/:id", middleware.RequireAuth(), c.PostHandler.Update)
		posts.DELETE("/:id", middleware.RequireAuth(), c.PostHandler.Delete)

		posts.POST("/:id/comments", middleware.RequireAuth(), c.CommentHandler.Create)
	}
}

func setupCommentRoutes(rg *gin.RouterGroup, c *container.Container) {
	comments := rg.Group("/comments")
	comments.Use(middleware.RequireAuth())
	{
		comments.PUT("/:id", c.CommentHandler.Update)
		comments.DELETE("/:id", c.CommentHandler.Delete)
	}
}

func setupAdminRoutes(rg *gin.RouterGroup, c *container.Container) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireStaff())
	{
		admin.GET("/users", c.UserHandler.List)
		admin.GET("/users/:id", c.UserHandler.Get)
		admin.PUT("/users/:id/status", c.UserHandler.UpdateFlags)
		admin.DELETE("/users/:id", c.UserHandler.Delete)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok", "cache": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
