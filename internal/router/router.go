package router

import (
	"net/http"
	"time"

	"github.com/aerosite/internal/auth"
	"github.com/aerosite/internal/config"
	"github.com/aerosite/internal/handler"
	"github.com/aerosite/internal/media"
	"github.com/aerosite/internal/metrics"
	"github.com/aerosite/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎、中间件与全部路由。
func SetupRouter(cfg config.AppConfig, gdb *gorm.DB, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)

	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	store := media.NewStore(cfg.UploadDir, cfg.UploadURLPath)
	reg := metrics.NewRegistry()

	admins := service.NewAdminService(gdb)
	heroes := service.NewHeroService(gdb)
	sections := service.NewAboutService(gdb)
	events := service.NewEventService(gdb)
	gallery := service.NewGalleryService(gdb)

	authHandler := handler.NewAuthHandler(admins, tokens, logger)
	heroHandler := handler.NewHeroHandler(heroes, store, logger)
	aboutHandler := handler.NewAboutHandler(sections, store, logger)
	eventHandler := handler.NewEventHandler(events, store, logger)
	galleryHandler := handler.NewGalleryHandler(gallery, store, logger)

	r := gin.New()
	r.Use(handler.RequestLogger(logger, reg))
	r.Use(handler.Recovery(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	// 上传目录以只读静态文件形式对外提供
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg.Prometheus, promhttp.HandlerOpts{})))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Aerosite content API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":    "/api/auth",
				"hero":    "/api/hero",
				"about":   "/api/about",
				"events":  "/api/events",
				"gallery": "/api/gallery",
				"health":  "/api/health",
			},
		})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success":   true,
				"message":   "Server is running",
				"timestamp": nowISO(),
			})
		})

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login",
				handler.Validate(
					handler.ValidEmail("email"),
					handler.Required("password", "Password is required"),
				),
				authHandler.Login)
			authRoutes.POST("/register",
				handler.Validate(
					handler.ValidEmail("email"),
					handler.MinLength("password", 6, "Password must be at least 6 characters"),
					handler.Required("name", "Name is required"),
				),
				authHandler.Register)

			authRoutes.GET("/profile", handler.AuthRequired(tokens), authHandler.GetProfile)
			authRoutes.PUT("/profile",
				handler.AuthRequired(tokens),
				handler.Validate(handler.OptionalEmail("email")),
				authHandler.UpdateProfile)
			authRoutes.POST("/change-password",
				handler.AuthRequired(tokens),
				handler.Validate(
					handler.Required("currentPassword", "Current password is required"),
					handler.MinLength("newPassword", 6, "New password must be at least 6 characters"),
				),
				authHandler.ChangePassword)
		}

		hero := api.Group("/hero")
		{
			hero.GET("/active", heroHandler.GetActive)

			hero.GET("", handler.AuthRequired(tokens), heroHandler.List)
			hero.GET("/:id", handler.AuthRequired(tokens), heroHandler.Get)
			hero.POST("",
				handler.AuthRequired(tokens),
				handler.Validate(
					handler.Required("title", "Title is required"),
					handler.Required("subtitle", "Subtitle is required"),
				),
				heroHandler.Create)
			hero.PUT("/:id", handler.AuthRequired(tokens), heroHandler.Update)
			hero.DELETE("/:id", handler.AuthRequired(tokens), heroHandler.Delete)
			hero.PATCH("/:id/toggle-active", handler.AuthRequired(tokens), heroHandler.ToggleActive)
		}

		about := api.Group("/about")
		{
			about.GET("/public", aboutHandler.ListPublic)

			about.GET("", handler.AuthRequired(tokens), aboutHandler.List)
			about.GET("/:id", handler.AuthRequired(tokens), aboutHandler.Get)
			about.POST("",
				handler.AuthRequired(tokens),
				handler.Validate(
					handler.Required("section", "Section is required"),
					handler.Required("title", "Title is required"),
					handler.Required("description", "Description is required"),
				),
				aboutHandler.Create)
			about.PUT("/:id", handler.AuthRequired(tokens), aboutHandler.Update)
			about.DELETE("/:id", handler.AuthRequired(tokens), aboutHandler.Delete)
		}

		events := api.Group("/events")
		{
			events.GET("/public", eventHandler.ListPublic)

			events.GET("", handler.AuthRequired(tokens), eventHandler.List)
			events.GET("/:id", handler.AuthRequired(tokens), eventHandler.Get)
			events.POST("",
				handler.AuthRequired(tokens),
				handler.Validate(
					handler.Required("title", "Title is required"),
					handler.Required("description", "Description is required"),
					handler.ISODate("date", "Valid date is required"),
					handler.Required("location", "Location is required"),
					handler.Required("category", "Category is required"),
				),
				eventHandler.Create)
			events.PUT("/:id", handler.AuthRequired(tokens), eventHandler.Update)
			events.DELETE("/:id", handler.AuthRequired(tokens), eventHandler.Delete)
			events.PATCH("/:id/toggle-featured", handler.AuthRequired(tokens), eventHandler.ToggleFeatured)
		}

		gallery := api.Group("/gallery")
		{
			gallery.GET("/public", galleryHandler.ListPublic)

			gallery.GET("", handler.AuthRequired(tokens), galleryHandler.List)
			gallery.GET("/:id", handler.AuthRequired(tokens), galleryHandler.Get)
			gallery.POST("",
				handler.AuthRequired(tokens),
				handler.Validate(
					handler.Required("title", "Title is required"),
					handler.Required("category", "Category is required"),
				),
				galleryHandler.Create)
			gallery.PUT("/:id", handler.AuthRequired(tokens), galleryHandler.Update)
			gallery.DELETE("/:id", handler.AuthRequired(tokens), galleryHandler.Delete)
		}
	}

	return r, nil
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// corsConfig 构造跨域策略；通配来源时不允许携带凭据。
func corsConfig(origin string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
		cfg.AllowCredentials = true
	}
	return cfg
}
