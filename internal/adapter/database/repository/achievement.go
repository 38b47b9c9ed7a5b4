package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"activityapp/internal/adapter/database"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/port"
)

type AchievementRepository struct {
	db      *database.DB
	scanner *database.Scanner
	instrumentation
}

func NewAchievementRepository(db *database.DB, telemetry port.Telemetry) port.AchievementRepository {
	return &AchievementRepository{
		db:              db,
		scanner:         database.NewScanner(),
		instrumentation: newInstrumentation(db, telemetry, "achievement"),
	}
}

func (r *AchievementRepository) scanAll(ctx context.Context, builder sq.SelectBuilder) ([]domain.Achievement, error) {
	query, args, err := builder.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	achievements := make([]domain.Achievement, 0)

	if err := r.scanner.ScanRowsToSlice(rows, &achievements); err != nil {
		return nil, err
	}

	return achievements, nil
}

func (r *AchievementRepository) List(ctx context.Context) (achievements []domain.Achievement, err error) {
	ctx, done := r.start(ctx, "List", nil)
	defer done(&err)

	return r.scanAll(ctx, r.db.QueryBuilder.Select("id", "uuid", "name", "criterion").
		From("achievements").
		OrderBy("id ASC"))
}

func (r *AchievementRepository) ListByUser(ctx context.Context, userID int) (achievements []domain.Achievement, err error) {
	ctx, done := r.start(ctx, "ListByUser", map[string]interface{}{"user.id": userID})
	defer done(&err)

	return r.scanAll(ctx, r.db.QueryBuilder.Select("a.id", "a.uuid", "a.name", "a.criterion", "ua.unlocked_at").
		From("user_achievements ua").
		Join("achievements a ON a.id = ua.achievement_id").
		Where(sq.Eq{"ua.user_id": userID}).
		OrderBy("ua.unlocked_at ASC", "a.id ASC"))
}

// Unlock reports false when the user already had the achievement.
func (r *AchievementRepository) Unlock(ctx context.Context, userID int, achievementID int, at time.Time) (unlocked bool, err error) {
	ctx, done := r.start(ctx, "Unlock", map[string]interface{}{"user.id": userID, "achievement.id": achievementID})
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Insert("user_achievements").
		Columns("user_id", "achievement_id", "unlocked_at").
		Values(userID, achievementID, at.UTC()).
		ToSql()

	if err != nil {
		return false, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if database.IsUniqueViolation(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *AchievementRepository) Stats(ctx context.Context, userID int) (stats domain.UserStats, err error) {
	ctx, done := r.start(ctx, "Stats", map[string]interface{}{"user.id": userID})
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Select().
		Column(sq.Expr("(SELECT COUNT(*) FROM activities WHERE creator_id = ? AND deleted_at IS NULL)", userID)).
		Column(sq.Expr("(SELECT COUNT(*) FROM activities WHERE creator_id = ? AND completed_at IS NOT NULL AND deleted_at IS NULL)", userID)).
		Column(sq.Expr("(SELECT COUNT(*) FROM participations WHERE user_id = ? AND status = ?)", userID, string(domain.ParticipationCheckedIn))).
		ToSql()

	if err != nil {
		return domain.UserStats{}, err
	}

	r.query(ctx, "Stats", query, args)

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.CreatedActivities,
		&stats.ConcludedActivities,
		&stats.CheckIns,
	)

	if err != nil {
		return domain.UserStats{}, err
	}

	return stats, nil
}
