package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AnsarMahir/doc4all-dashboard/internal/auth"
	"github.com/AnsarMahir/doc4all-dashboard/internal/config"
	"github.com/AnsarMahir/doc4all-dashboard/internal/server/handlers"
	"github.com/AnsarMahir/doc4all-dashboard/internal/server/middleware"
)

// New wires the Gin engine with required routes and middlewares.
func New(cfg *config.Config, dash *handlers.DashboardHandler, prof *handlers.ProfileHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(corsConfig(cfg.CORS)))

	secret := []byte(cfg.Auth.JWTSecret)

	api := r.Group("/api")

	doctor := api.Group("/doctor", middleware.Auth(secret, auth.RoleDoctor, logger))
	doctor.GET("/dashboard", dash.Doctor)
	doctor.POST("/complete-profile", prof.CompleteDoctor)

	dispensary := api.Group("/dispensary", middleware.Auth(secret, auth.RoleDispensary, logger))
	dispensary.GET("/dashboard", dash.Dispensary)
	dispensary.POST("/complete-profile", prof.CompleteDispensary)

	patient := api.Group("/patient", middleware.Auth(secret, auth.RolePatient, logger))
	patient.GET("/dashboard", dash.Patient)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	c.AllowHeaders = []string{"Authorization", "Content-Type"}
	c.MaxAge = 12 * time.Hour

	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = cfg.AllowedOrigins
	return c
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
