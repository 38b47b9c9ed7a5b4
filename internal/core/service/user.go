package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
	"activityapp/internal/core/port"
	"activityapp/internal/core/util"
)

const avatarFolder = "avatars"

type UserService struct {
	repo         port.UserRepository
	types        port.ActivityTypeRepository
	achievements port.AchievementRepository
	storage      port.FileStorage
	tracer
}

func NewUserService(
	repo port.UserRepository,
	types port.ActivityTypeRepository,
	achievements port.AchievementRepository,
	storage port.FileStorage,
	telemetry port.Telemetry,
) *UserService {
	return &UserService{
		repo:         repo,
		types:        types,
		achievements: achievements,
		storage:      storage,
		tracer:       newTracer(telemetry, "user"),
	}
}

func (us *UserService) getUser(ctx context.Context, userID int) (domain.User, error) {
	user, err := us.repo.GetByID(ctx, userID)

	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.User{}, domain.ErrUserNotFound
	}

	return user, err
}

func (us *UserService) GetProfile(ctx context.Context, userID int) (user domain.User, err error) {
	ctx, done := us.trace(ctx, "GetProfile", userID)
	defer done(&err)

	user, err = us.getUser(ctx, userID)

	if err != nil {
		return domain.User{}, err
	}

	user.Achievements, err = us.achievements.ListByUser(ctx, userID)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (us *UserService) GetPreferences(ctx context.Context, userID int) (_ []domain.ActivityType, err error) {
	ctx, done := us.trace(ctx, "GetPreferences", userID)
	defer done(&err)

	return us.repo.GetPreferences(ctx, userID)
}

// UpdatePreferences replaces the preference set. Every id must be a known type.
func (us *UserService) UpdatePreferences(ctx context.Context, userID int, typeUUIDs []string) (_ []domain.ActivityType, err error) {
	ctx, done := us.trace(ctx, "UpdatePreferences", userID)
	defer done(&err)

	typeIDs := make([]int, 0, len(typeUUIDs))

	for _, typeUUID := range typeUUIDs {
		activityType, err := us.types.GetByUUID(ctx, typeUUID)

		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrActivityTypeNotFound
		}

		if err != nil {
			return nil, err
		}

		typeIDs = append(typeIDs, activityType.ID)
	}

	if err := us.repo.SetPreferences(ctx, userID, typeIDs); err != nil {
		slog.Error("User#UpdatePreferences", "error", err, "user_id", userID)
		return nil, err
	}

	return us.repo.GetPreferences(ctx, userID)
}

func (us *UserService) UpdateAvatar(ctx context.Context, userID int, file port.Upload) (_ domain.User, err error) {
	ctx, done := us.trace(ctx, "UpdateAvatar", userID)
	defer done(&err)

	user, err := us.getUser(ctx, userID)

	if err != nil {
		return domain.User{}, err
	}

	path, err := us.storage.SaveImage(ctx, avatarFolder, file)

	if err != nil {
		return domain.User{}, err
	}

	previous := user.Avatar
	user.Avatar = &path

	updated, err := us.repo.Update(ctx, user)

	if err != nil {
		us.storage.Delete(ctx, path)
		return domain.User{}, err
	}

	if previous != nil {
		if err := us.storage.Delete(ctx, *previous); err != nil {
			slog.Warn("User#UpdateAvatar", "delete_previous", err, "path", *previous)
		}
	}

	return updated, nil
}

func (us *UserService) UpdateProfile(ctx context.Context, userID int, req *request.UpdateProfileRequest) (_ domain.User, err error) {
	ctx, done := us.trace(ctx, "UpdateProfile", userID)
	defer done(&err)

	if req.IsEmpty() {
		return domain.User{}, domain.ErrMissingFields
	}

	user, err := us.getUser(ctx, userID)

	if err != nil {
		return domain.User{}, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))

		if email != user.Email {
			if owner, err := us.repo.GetByEmail(ctx, email); err == nil && owner.ID != user.ID {
				return domain.User{}, domain.ErrEmailAlreadyUsed
			}
		}

		user.Email = email
	}

	if req.Password != nil {
		encrypted, err := util.HashPassword(*req.Password)

		if err != nil {
			return domain.User{}, err
		}

		user.EncryptedPassword = encrypted
	}

	updated, err := us.repo.Update(ctx, user)

	if errors.Is(err, domain.ErrDuplicateRecord) {
		return domain.User{}, domain.ErrEmailAlreadyUsed
	}

	if err != nil {
		return domain.User{}, err
	}

	return updated, nil
}

func (us *UserService) Deactivate(ctx context.Context, userID int) (err error) {
	ctx, done := us.trace(ctx, "Deactivate", userID)
	defer done(&err)

	err = us.repo.Deactivate(ctx, userID, time.Now())

	if errors.Is(err, domain.ErrStaleRecord) {
		return domain.ErrAccountDeactivated
	}

	if err != nil {
		return err
	}

	us.event(ctx, "deactivated", "user", "", userID, nil)

	return nil
}

func (us *UserService) GetAchievements(ctx context.Context, userID int) (_ []domain.Achievement, err error) {
	ctx, done := us.trace(ctx, "GetAchievements", userID)
	defer done(&err)

	return us.achievements.ListByUser(ctx, userID)
}
