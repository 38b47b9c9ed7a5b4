package routes

import (
	"github.com/gin-gonic/gin"

	"activityapp/internal/adapter/http/handler"
	"activityapp/internal/adapter/http/middleware"
	"activityapp/internal/core/port"
	"activityapp/internal/core/telemetry"
	"activityapp/pkg/auth"
	"activityapp/pkg/config"
)

const ServiceName = "activityapp"

type HandlersConfig struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	ActivityHandler     *handler.ActivityHandler
	SubscriptionHandler *handler.SubscriptionHandler
	HealthHandler       *handler.HealthHandler

	Tokens *auth.JWT
	Users  port.UserRepository
	Cache  port.CacheRepository
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.Logger, cfg *config.AppConfig) *gin.Engine {
	router := gin.New()

	middleware.SetupGinMiddleware(router, ServiceName, metrics, logger, cfg)

	if cfg.UploadsPath != "" {
		router.Static("/uploads", cfg.UploadsPath)
	}

	if handlers.HealthHandler != nil {
		router.GET("/health", handlers.HealthHandler.Health)
	}

	setupPublicRoutes(router, handlers.AuthHandler)

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(handlers.Tokens, handlers.Users, logger))
	protected.Use(middleware.ResponseCache(handlers.Cache, logger, metrics, cfg))

	setupUserRoutes(protected, handlers.UserHandler)
	setupActivityRoutes(protected, handlers.ActivityHandler, handlers.SubscriptionHandler)

	return router
}

func setupPublicRoutes(router *gin.Engine, authHandler *handler.AuthHandler) {
	public := router.Group("/auth")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/sign-in", authHandler.SignIn)
	}
}

func setupUserRoutes(protected *gin.RouterGroup, userHandler *handler.UserHandler) {
	user := protected.Group("/user")
	{
		user.GET("", userHandler.GetSelf)
		user.GET("/preferences", userHandler.GetPreferences)
		user.POST("/preferences/define", userHandler.DefinePreferences)
		user.PUT("/avatar", userHandler.UpdateAvatar)
		user.PUT("/update", userHandler.UpdateProfile)
		user.DELETE("/deactivate", userHandler.Deactivate)
		user.GET("/achievements", userHandler.GetAchievements)
	}
}

func setupActivityRoutes(protected *gin.RouterGroup, activityHandler *handler.ActivityHandler, subscriptionHandler *handler.SubscriptionHandler) {
	activities := protected.Group("/activities")
	{
		activities.GET("/types", activityHandler.ListTypes)
		activities.GET("", activityHandler.List)
		activities.GET("/all", activityHandler.ListAll)
		activities.GET("/user/creator", activityHandler.ListCreated)
		activities.GET("/user/creator/all", activityHandler.ListAllCreated)
		activities.GET("/user/participant", activityHandler.ListParticipated)
		activities.GET("/user/participant/all", activityHandler.ListAllParticipated)
		activities.GET("/:id/participants", activityHandler.GetParticipants)
		activities.POST("/new", activityHandler.Create)
		activities.PUT("/:id/update", activityHandler.Update)
		activities.PUT("/:id/conclude", activityHandler.Conclude)
		activities.DELETE("/:id/delete", activityHandler.Delete)

		activities.POST("/:id/subscribe", subscriptionHandler.Subscribe)
		activities.PUT("/:id/approve", subscriptionHandler.Approve)
		activities.PUT("/:id/check-in", subscriptionHandler.CheckIn)
		activities.DELETE("/:id/unsubscribe", subscriptionHandler.Unsubscribe)
	}
}
