package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tres-colores-api/internal/config"
	"github.com/tres-colores-api/internal/models"
	"github.com/tres-colores-api/internal/repository"
	"github.com/tres-colores-api/internal/service"
)

// viewerKey is the gin context key holding the requester identity
const viewerKey = "viewer"

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, log)
	eventHandler := NewEventHandler(services, log)
	commentHandler := NewCommentHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(repos))

	// API v1
	v1 := router.Group("/v1")
	v1.Use(identityMiddleware(services.Auth, log))
	{
		// Auth endpoints
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Event catalog
		events := v1.Group("/events")
		{
			events.GET("", eventHandler.List)
			events.GET("/:id", eventHandler.Get)
			events.POST("", requireIdentity(), eventHandler.Create)
			events.PUT("/:id", requireIdentity(), eventHandler.Update)
			events.DELETE("/:id", requireIdentity(), eventHandler.Delete)
		}

		// Comments
		comments := v1.Group("/comments")
		{
			comments.POST("", requireIdentity(), commentHandler.Submit)
			comments.GET("", commentHandler.List)
			comments.GET("/moderation-queue", requireIdentity(), commentHandler.ModerationQueue)
			comments.POST("/:id/decision", requireIdentity(), commentHandler.Decide)
			comments.PUT("/:id", requireIdentity(), commentHandler.Edit)
			comments.DELETE("/:id", requireIdentity(), commentHandler.Delete)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "tres-colores-api",
	})
}

// metricsHandler returns entity counts
func metricsHandler(repos *repository.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCount, _ := repos.User.Count(ctx)
		eventsCount, _ := repos.Event.Count(ctx)
		commentsCount, _ := repos.Comment.Count(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"users":    usersCount,
				"events":   eventsCount,
				"comments": commentsCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// identityMiddleware resolves the bearer token, if any, into a viewer. A
// missing token yields an anonymous viewer; a present but invalid token is
// rejected so clients notice expired credentials instead of silently reading
// as anonymous.
func identityMiddleware(auth service.AuthService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(viewerKey, models.Viewer{})
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			c.Abort()
			return
		}

		viewer, err := auth.ParseToken(token)
		if err != nil {
			log.Debug().Err(err).Msg("Token rejected")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(viewerKey, viewer)
		c.Next()
	}
}

// requireIdentity rejects anonymous requests. Role checks stay inside the
// services; this only guarantees a caller identity is present.
func requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentViewer(c).IsAnonymous() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentViewer returns the viewer resolved by identityMiddleware
func currentViewer(c *gin.Context) models.Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(models.Viewer); ok {
			return viewer
		}
	}
	return models.Viewer{}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
