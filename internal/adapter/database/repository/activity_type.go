package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"activityapp/internal/adapter/database"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/port"
)

var activityTypeColumns = database.NewScanner().Columns(domain.ActivityType{})

type ActivityTypeRepository struct {
	db      *database.DB
	scanner *database.Scanner
	instrumentation
}

func NewActivityTypeRepository(db *database.DB, telemetry port.Telemetry) port.ActivityTypeRepository {
	return &ActivityTypeRepository{
		db:              db,
		scanner:         database.NewScanner(),
		instrumentation: newInstrumentation(db, telemetry, "activity_type"),
	}
}

func (r *ActivityTypeRepository) List(ctx context.Context) (types []domain.ActivityType, err error) {
	ctx, done := r.start(ctx, "List", nil)
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Select(activityTypeColumns...).
		From("activity_types").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	r.query(ctx, "List", query, args)

	rows, err := r.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	types = make([]domain.ActivityType, 0)

	if err = r.scanner.ScanRowsToSlice(rows, &types); err != nil {
		return nil, err
	}

	return types, nil
}

func (r *ActivityTypeRepository) GetByUUID(ctx context.Context, uid string) (activityType domain.ActivityType, err error) {
	ctx, done := r.start(ctx, "GetByUUID", map[string]interface{}{"activity_type.uuid": uid})
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Select(activityTypeColumns...).
		From("activity_types").
		Where(sq.Eq{"uuid": uid}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.ActivityType{}, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)

	if err != nil {
		return domain.ActivityType{}, err
	}

	defer rows.Close()

	if err = r.scanner.ScanRowToStruct(rows, &activityType); err != nil {
		return domain.ActivityType{}, database.Translate(err)
	}

	return activityType, nil
}
