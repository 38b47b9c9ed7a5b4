package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"activityapp/internal/adapter/database"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/port"
)

var activityColumns = []string{
	"a.id", "a.uuid", "a.title", "a.description", "a.type_id", "a.image", "a.latitude", "a.longitude",
	"a.scheduled_date", "a.private", "a.confirmation_code", "a.creator_id", "a.created_at", "a.updated_at",
	"a.completed_at", "a.deleted_at",
	"t.uuid", "t.name", "t.description", "t.image",
	"u.uuid", "u.name", "u.avatar",
}

// participantCountExpr counts everyone whose request was not denied.
const participantCountExpr = "(SELECT COUNT(*) FROM participations pc WHERE pc.activity_id = a.id AND pc.status <> 'DENIED') AS participant_count"

const viewerStatusExpr = "(SELECT pv.status FROM participations pv WHERE pv.activity_id = a.id AND pv.user_id = ?) AS viewer_status"

var orderColumns = map[domain.ActivityOrderField]string{
	domain.OrderByTitle:            "a.title",
	domain.OrderByCreatedAt:        "a.created_at",
	domain.OrderByScheduledDate:    "a.scheduled_date",
	domain.OrderByParticipantCount: "participant_count",
}

type ActivityRepository struct {
	db *database.DB
	instrumentation
}

func NewActivityRepository(db *database.DB, telemetry port.Telemetry) port.ActivityRepository {
	return &ActivityRepository{
		db:              db,
		instrumentation: newInstrumentation(db, telemetry, "activity"),
	}
}

func scanActivity(row rowScanner) (domain.Activity, error) {
	var (
		activity     domain.Activity
		viewerStatus *string
	)

	err := row.Scan(
		&activity.ID,
		&activity.UUID,
		&activity.Title,
		&activity.Description,
		&activity.TypeID,
		&activity.Image,
		&activity.Address.Latitude,
		&activity.Address.Longitude,
		&activity.ScheduledDate,
		&activity.Private,
		&activity.ConfirmationCode,
		&activity.CreatorID,
		&activity.CreatedAt,
		&activity.UpdatedAt,
		&activity.CompletedAt,
		&activity.DeletedAt,
		&activity.Type.UUID,
		&activity.Type.Name,
		&activity.Type.Description,
		&activity.Type.Image,
		&activity.Creator.UUID,
		&activity.Creator.Name,
		&activity.Creator.Avatar,
		&activity.ParticipantCount,
		&viewerStatus,
	)

	if err != nil {
		return domain.Activity{}, err
	}

	activity.Type.ID = activity.TypeID
	activity.Creator.ID = activity.CreatorID

	if viewerStatus != nil {
		status := domain.ParticipationStatus(*viewerStatus)
		activity.ViewerStatus = &status
	}

	return activity, nil
}

func (r *ActivityRepository) selectActivities(viewerID int) sq.SelectBuilder {
	return r.db.QueryBuilder.Select(activityColumns...).
		Column(participantCountExpr).
		Column(sq.Expr(viewerStatusExpr, viewerID)).
		From("activities a").
		Join("activity_types t ON t.id = a.type_id").
		Join("users u ON u.id = a.creator_id").
		Where("a.deleted_at IS NULL")
}

func applyFilters(builder sq.SelectBuilder, q domain.ActivityQuery) sq.SelectBuilder {
	if q.TypeID > 0 {
		builder = builder.Where(sq.Eq{"a.type_id": q.TypeID})
	}

	if q.CreatorID > 0 {
		builder = builder.Where(sq.Eq{"a.creator_id": q.CreatorID})
	}

	if q.ParticipantID > 0 {
		builder = builder.Where(
			"EXISTS (SELECT 1 FROM participations pp WHERE pp.activity_id = a.id AND pp.user_id = ? AND pp.status <> ?)",
			q.ParticipantID, string(domain.ParticipationDenied),
		)
	}

	if q.OnlyOpen {
		builder = builder.Where("a.completed_at IS NULL")
	}

	return builder
}

func (r *ActivityRepository) Create(ctx context.Context, activity domain.Activity) (saved domain.Activity, err error) {
	ctx, done := r.start(ctx, "Create", map[string]interface{}{"activity.uuid": activity.UUID.String()})
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Insert("activities").
		Columns("uuid", "title", "description", "type_id", "image", "latitude", "longitude", "scheduled_date",
			"private", "confirmation_code", "creator_id", "created_at", "updated_at").
		Values(activity.UUID.String(), activity.Title, activity.Description, activity.TypeID, activity.Image,
			activity.Address.Latitude, activity.Address.Longitude, activity.ScheduledDate.UTC(), activity.Private,
			activity.ConfirmationCode, activity.CreatorID, activity.CreatedAt.UTC(), activity.UpdatedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.Activity{}, err
	}

	r.query(ctx, "Create", query, args)

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&activity.ID); err != nil {
		return domain.Activity{}, database.Translate(err)
	}

	return r.GetByUUID(ctx, activity.UUID.String(), activity.CreatorID)
}

// GetByUUID ignores soft deleted activities. viewerID fills ViewerStatus.
func (r *ActivityRepository) GetByUUID(ctx context.Context, uid string, viewerID int) (activity domain.Activity, err error) {
	ctx, done := r.start(ctx, "GetByUUID", map[string]interface{}{"activity.uuid": uid})
	defer done(&err)

	query, args, err := r.selectActivities(viewerID).
		Where(sq.Eq{"a.uuid": uid}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Activity{}, err
	}

	r.query(ctx, "GetByUUID", query, args)

	activity, err = scanActivity(r.db.QueryRowContext(ctx, query, args...))

	if err != nil {
		return domain.Activity{}, database.Translate(err)
	}

	return activity, nil
}

func (r *ActivityRepository) List(ctx context.Context, q domain.ActivityQuery) (activities []domain.Activity, err error) {
	ctx, done := r.start(ctx, "List", map[string]interface{}{
		"query.order_by": string(q.OrderBy),
		"query.order":    string(q.Order),
		"query.limit":    q.Limit,
		"query.offset":   q.Offset,
	})
	defer done(&err)

	column, ok := orderColumns[q.OrderBy]

	if !ok {
		column = orderColumns[domain.OrderByCreatedAt]
	}

	direction := "DESC"

	if q.Order == domain.SortAsc {
		direction = "ASC"
	}

	builder := applyFilters(r.selectActivities(q.ViewerID), q).
		OrderBy(column+" "+direction, "a.id "+direction)

	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit)).Offset(uint64(q.Offset))
	}

	query, args, err := builder.ToSql()

	if err != nil {
		return nil, err
	}

	r.query(ctx, "List", query, args)

	rows, err := r.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	activities = make([]domain.Activity, 0)

	for rows.Next() {
		activity, err := scanActivity(rows)

		if err != nil {
			return nil, err
		}

		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

func (r *ActivityRepository) Count(ctx context.Context, q domain.ActivityQuery) (total int, err error) {
	ctx, done := r.start(ctx, "Count", nil)
	defer done(&err)

	query, args, err := applyFilters(
		r.db.QueryBuilder.Select("COUNT(*)").From("activities a").Where("a.deleted_at IS NULL"), q,
	).ToSql()

	if err != nil {
		return 0, err
	}

	r.query(ctx, "Count", query, args)

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

// Update only touches open activities; ErrStaleRecord means it was concluded or deleted meanwhile.
func (r *ActivityRepository) Update(ctx context.Context, activity domain.Activity) (updated domain.Activity, err error) {
	ctx, done := r.start(ctx, "Update", map[string]interface{}{"activity.id": activity.ID})
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Update("activities").
		Set("title", activity.Title).
		Set("description", activity.Description).
		Set("type_id", activity.TypeID).
		Set("image", activity.Image).
		Set("latitude", activity.Address.Latitude).
		Set("longitude", activity.Address.Longitude).
		Set("scheduled_date", activity.ScheduledDate.UTC()).
		Set("private", activity.Private).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": activity.ID}).
		Where("completed_at IS NULL").
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return domain.Activity{}, err
	}

	r.query(ctx, "Update", query, args)

	if err = r.execOne(ctx, query, args); err != nil {
		return domain.Activity{}, err
	}

	return r.GetByUUID(ctx, activity.UUID.String(), activity.CreatorID)
}

func (r *ActivityRepository) Conclude(ctx context.Context, id int, at time.Time) (err error) {
	ctx, done := r.start(ctx, "Conclude", map[string]interface{}{"activity.id": id})
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Update("activities").
		Set("completed_at", at.UTC()).
		Set("updated_at", at.UTC()).
		Where(sq.Eq{"id": id}).
		Where("completed_at IS NULL").
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return err
	}

	return r.execOne(ctx, query, args)
}

func (r *ActivityRepository) DeleteByUUID(ctx context.Context, uid string, at time.Time) (err error) {
	ctx, done := r.start(ctx, "DeleteByUUID", map[string]interface{}{"activity.uuid": uid})
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Update("activities").
		Set("deleted_at", at.UTC()).
		Set("updated_at", at.UTC()).
		Where(sq.Eq{"uuid": uid}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return err
	}

	err = r.execOne(ctx, query, args)

	if err == domain.ErrStaleRecord {
		return domain.ErrRecordNotFound
	}

	return err
}

// execOne returns ErrStaleRecord when the statement matched no row.
func (r *ActivityRepository) execOne(ctx context.Context, query string, args []interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)

	if err != nil {
		return database.Translate(err)
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrStaleRecord
	}

	return nil
}
