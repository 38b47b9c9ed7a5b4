package service_test

import (
	"context"
	"testing"
	"time"

	"activityapp/internal/adapter/cache"
	"activityapp/internal/adapter/database"
	"activityapp/internal/adapter/database/repository"
	"activityapp/internal/adapter/storage"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
	"activityapp/internal/core/port"
	"activityapp/internal/core/service"
	. "activityapp/pkg/test"
	"activityapp/pkg/test/factory"
)

// env wires every service against a fresh in-memory database.
type env struct {
	db             *database.DB
	storage        *storage.LocalStorage
	users          port.UserRepository
	types          port.ActivityTypeRepository
	activities     port.ActivityRepository
	participations port.ParticipationRepository
	achievements   port.AchievementRepository

	auth          *service.AuthService
	user          *service.UserService
	progress      *service.ProgressService
	activity      *service.ActivityService
	subscriptions *service.SubscriptionService
}

func newEnv(t *testing.T) *env {
	db := InitTestDB()
	t.Cleanup(func() { db.Close() })

	e := &env{
		db:             db,
		storage:        storage.NewLocalStorage(t.TempDir()),
		users:          repository.NewUserRepository(db, nil),
		types:          repository.NewActivityTypeRepository(db, nil),
		activities:     repository.NewActivityRepository(db, nil),
		participations: repository.NewParticipationRepository(db, nil),
		achievements:   repository.NewAchievementRepository(db, nil),
	}

	memory := cache.NewMemoryRepository(time.Minute)
	t.Cleanup(func() { memory.Close() })

	e.auth = service.NewAuthService(e.users, nil)
	e.user = service.NewUserService(e.users, e.types, e.achievements, e.storage, nil)
	e.progress = service.NewProgressService(e.users, e.achievements, nil)
	e.activity = service.NewActivityService(e.activities, e.types, e.participations, e.storage, memory, e.progress, nil)
	e.subscriptions = service.NewSubscriptionService(e.activities, e.participations, e.users, e.progress, nil)

	return e
}

func (e *env) createUser(t *testing.T, customData ...map[string]any) domain.User {
	user, err := e.users.Create(context.Background(), factory.NewUser(customData...))

	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	return user
}

func (e *env) createActivity(t *testing.T, creatorID int, customData ...map[string]any) domain.Activity {
	activity, err := e.activities.Create(context.Background(),
		factory.NewActivity(creatorID, ActivityTypeID(t, e.db, "Corrida"), customData...))

	if err != nil {
		t.Fatalf("creating activity: %v", err)
	}

	return activity
}

func (e *env) reload(t *testing.T, userID int) domain.User {
	user, err := e.users.GetByID(context.Background(), userID)

	if err != nil {
		t.Fatalf("loading user: %v", err)
	}

	return user
}

func activityRequest(t *testing.T, db *database.DB) *request.ActivityRequest {
	latitude, longitude := -23.5505, -46.6333

	return &request.ActivityRequest{
		Title:         "Corrida no parque",
		Description:   "Cinco quilômetros no Ibirapuera",
		TypeID:        ActivityTypeUUID(t, db, "Corrida"),
		Latitude:      &latitude,
		Longitude:     &longitude,
		ScheduledDate: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}
}
