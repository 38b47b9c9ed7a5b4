package http

import (
	"activityapp/internal/adapter/database"
	"activityapp/internal/adapter/database/repository"
	"activityapp/internal/adapter/http/handler"
	"activityapp/internal/adapter/http/routes"
	"activityapp/internal/core/port"
	"activityapp/internal/core/service"
	"activityapp/pkg/auth"
)

type Container struct {
	UserRepo          port.UserRepository
	ActivityTypeRepo  port.ActivityTypeRepository
	ActivityRepo      port.ActivityRepository
	ParticipationRepo port.ParticipationRepository
	AchievementRepo   port.AchievementRepository

	AuthUseCase         port.AuthService
	UserUseCase         port.UserService
	ProgressUseCase     port.ProgressService
	ActivityUseCase     port.ActivityService
	SubscriptionUseCase port.SubscriptionService

	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	ActivityHandler     *handler.ActivityHandler
	SubscriptionHandler *handler.SubscriptionHandler
	HealthHandler       *handler.HealthHandler

	Tokens *auth.JWT
	Cache  port.CacheRepository
}

type Dependencies struct {
	DB        *database.DB
	Cache     port.CacheRepository
	Storage   port.FileStorage
	Telemetry port.Telemetry
	Tokens    *auth.JWT
}

func NewContainer(deps Dependencies) *Container {
	userRepo := repository.NewUserRepository(deps.DB, deps.Telemetry)
	typeRepo := repository.NewActivityTypeRepository(deps.DB, deps.Telemetry)
	activityRepo := repository.NewActivityRepository(deps.DB, deps.Telemetry)
	participationRepo := repository.NewParticipationRepository(deps.DB, deps.Telemetry)
	achievementRepo := repository.NewAchievementRepository(deps.DB, deps.Telemetry)

	authSvc := service.NewAuthService(userRepo, deps.Telemetry)
	userSvc := service.NewUserService(userRepo, typeRepo, achievementRepo, deps.Storage, deps.Telemetry)
	progressSvc := service.NewProgressService(userRepo, achievementRepo, deps.Telemetry)
	activitySvc := service.NewActivityService(activityRepo, typeRepo, participationRepo, deps.Storage, deps.Cache, progressSvc, deps.Telemetry)
	subscriptionSvc := service.NewSubscriptionService(activityRepo, participationRepo, userRepo, progressSvc, deps.Telemetry)

	return &Container{
		UserRepo:          userRepo,
		ActivityTypeRepo:  typeRepo,
		ActivityRepo:      activityRepo,
		ParticipationRepo: participationRepo,
		AchievementRepo:   achievementRepo,

		AuthUseCase:         authSvc,
		UserUseCase:         userSvc,
		ProgressUseCase:     progressSvc,
		ActivityUseCase:     activitySvc,
		SubscriptionUseCase: subscriptionSvc,

		AuthHandler:         handler.NewAuthHandler(authSvc, deps.Tokens),
		UserHandler:         handler.NewUserHandler(userSvc),
		ActivityHandler:     handler.NewActivityHandler(activitySvc),
		SubscriptionHandler: handler.NewSubscriptionHandler(subscriptionSvc),
		HealthHandler:       handler.NewHealthHandler(deps.DB),

		Tokens: deps.Tokens,
		Cache:  deps.Cache,
	}
}

func (c *Container) Handlers() routes.HandlersConfig {
	return routes.HandlersConfig{
		AuthHandler:         c.AuthHandler,
		UserHandler:         c.UserHandler,
		ActivityHandler:     c.ActivityHandler,
		SubscriptionHandler: c.SubscriptionHandler,
		HealthHandler:       c.HealthHandler,
		Tokens:              c.Tokens,
		Users:               c.UserRepo,
		Cache:               c.Cache,
	}
}
