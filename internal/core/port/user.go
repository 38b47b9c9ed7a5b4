package port

import (
	"context"
	"time"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int) (domain.User, error)
	GetByUUID(ctx context.Context, uuid string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByCPF(ctx context.Context, cpf string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Deactivate(ctx context.Context, id int, at time.Time) error
	AddXP(ctx context.Context, id int, amount int) (domain.User, error)
	GetPreferences(ctx context.Context, userID int) ([]domain.ActivityType, error)
	SetPreferences(ctx context.Context, userID int, typeIDs []int) error
}

type AchievementRepository interface {
	List(ctx context.Context) ([]domain.Achievement, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Achievement, error)
	Unlock(ctx context.Context, userID int, achievementID int, at time.Time) (bool, error)
	Stats(ctx context.Context, userID int) (domain.UserStats, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int) (domain.User, error)
	GetPreferences(ctx context.Context, userID int) ([]domain.ActivityType, error)
	UpdatePreferences(ctx context.Context, userID int, typeUUIDs []string) ([]domain.ActivityType, error)
	UpdateAvatar(ctx context.Context, userID int, file Upload) (domain.User, error)
	UpdateProfile(ctx context.Context, userID int, req *request.UpdateProfileRequest) (domain.User, error)
	Deactivate(ctx context.Context, userID int) error
	GetAchievements(ctx context.Context, userID int) ([]domain.Achievement, error)
}

type ProgressService interface {
	Reward(ctx context.Context, userID int, xp int) (domain.User, error)
}
