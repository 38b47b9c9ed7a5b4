package service

import (
	"context"
	"log/slog"
	"time"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/port"
)

// ProgressService awards xp and unlocks achievements whose rule is met.
type ProgressService struct {
	users        port.UserRepository
	achievements port.AchievementRepository
	tracer
}

func NewProgressService(users port.UserRepository, achievements port.AchievementRepository, telemetry port.Telemetry) *ProgressService {
	return &ProgressService{
		users:        users,
		achievements: achievements,
		tracer:       newTracer(telemetry, "progress"),
	}
}

func (ps *ProgressService) Reward(ctx context.Context, userID int, xp int) (user domain.User, err error) {
	ctx, done := ps.trace(ctx, "Reward", userID)
	defer done(&err)

	user, err = ps.users.AddXP(ctx, userID, xp)

	if err != nil {
		return domain.User{}, err
	}

	ps.event(ctx, "xp_awarded", "user", user.UUID.String(), userID, map[string]interface{}{
		"xp":    xp,
		"total": user.XP,
		"level": user.Level,
	})

	if err := ps.unlockAchievements(ctx, user); err != nil {
		return user, err
	}

	return user, nil
}

func (ps *ProgressService) unlockAchievements(ctx context.Context, user domain.User) error {
	stats, err := ps.achievements.Stats(ctx, user.ID)

	if err != nil {
		return err
	}

	achievements, err := ps.achievements.List(ctx)

	if err != nil {
		return err
	}

	byName := make(map[string]domain.Achievement, len(achievements))

	for _, achievement := range achievements {
		byName[achievement.Name] = achievement
	}

	now := time.Now()

	for _, rule := range domain.AchievementRules {
		achievement, ok := byName[rule.Name]

		if !ok || !rule.Unlocked(stats) {
			continue
		}

		unlocked, err := ps.achievements.Unlock(ctx, user.ID, achievement.ID, now)

		if err != nil {
			return err
		}

		if unlocked {
			slog.Info("Progress#Reward", "achievement", achievement.Name, "user", user.UUID)
			ps.event(ctx, "achievement_unlocked", "user", user.UUID.String(), user.ID, map[string]interface{}{
				"achievement": achievement.Name,
			})
		}
	}

	return nil
}

// rewardQuietly is used where a failed reward must not fail the request.
func rewardQuietly(ctx context.Context, progress port.ProgressService, operation string, userID int, xp int) {
	if progress == nil {
		return
	}

	if _, err := progress.Reward(ctx, userID, xp); err != nil {
		slog.Error(operation, "reward_error", err, "user_id", userID, "xp", xp)
	}
}
