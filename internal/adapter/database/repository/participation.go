package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"activityapp/internal/adapter/database"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/port"
)

var participationColumns = []string{
	"id", "uuid", "user_id", "activity_id", "status", "approved_at", "confirmed_at", "created_at",
}

type ParticipationRepository struct {
	db *database.DB
	instrumentation
}

func NewParticipationRepository(db *database.DB, telemetry port.Telemetry) port.ParticipationRepository {
	return &ParticipationRepository{
		db:              db,
		instrumentation: newInstrumentation(db, telemetry, "participation"),
	}
}

func scanParticipation(row rowScanner, extra ...interface{}) (domain.Participation, error) {
	var participation domain.Participation

	dest := []interface{}{
		&participation.ID,
		&participation.UUID,
		&participation.UserID,
		&participation.ActivityID,
		&participation.Status,
		&participation.ApprovedAt,
		&participation.ConfirmedAt,
		&participation.CreatedAt,
	}

	err := row.Scan(append(dest, extra...)...)

	return participation, err
}

func (r *ParticipationRepository) Create(ctx context.Context, participation domain.Participation) (saved domain.Participation, err error) {
	ctx, done := r.start(ctx, "Create", map[string]interface{}{
		"participation.user_id":     participation.UserID,
		"participation.activity_id": participation.ActivityID,
	})
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Insert("participations").
		Columns("uuid", "user_id", "activity_id", "status", "approved_at", "created_at").
		Values(participation.UUID.String(), participation.UserID, participation.ActivityID, string(participation.Status),
			participation.ApprovedAt, participation.CreatedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.Participation{}, err
	}

	r.query(ctx, "Create", query, args)

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&participation.ID); err != nil {
		return domain.Participation{}, database.Translate(err)
	}

	return r.getByID(ctx, participation.ID)
}

func (r *ParticipationRepository) getByID(ctx context.Context, id int) (domain.Participation, error) {
	query, args, err := r.db.QueryBuilder.Select(participationColumns...).
		From("participations").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return domain.Participation{}, err
	}

	participation, err := scanParticipation(r.db.QueryRowContext(ctx, query, args...))

	if err != nil {
		return domain.Participation{}, database.Translate(err)
	}

	return participation, nil
}

func (r *ParticipationRepository) GetByUserAndActivity(ctx context.Context, userID int, activityID int) (participation domain.Participation, err error) {
	ctx, done := r.start(ctx, "GetByUserAndActivity", map[string]interface{}{
		"participation.user_id":     userID,
		"participation.activity_id": activityID,
	})
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Select(participationColumns...).
		From("participations").
		Where(sq.Eq{"user_id": userID, "activity_id": activityID}).
		ToSql()

	if err != nil {
		return domain.Participation{}, err
	}

	r.query(ctx, "GetByUserAndActivity", query, args)

	participation, err = scanParticipation(r.db.QueryRowContext(ctx, query, args...))

	if err != nil {
		return domain.Participation{}, database.Translate(err)
	}

	return participation, nil
}

func (r *ParticipationRepository) ListByActivity(ctx context.Context, activityID int) (participants []domain.Participant, err error) {
	ctx, done := r.start(ctx, "ListByActivity", map[string]interface{}{"participation.activity_id": activityID})
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Select(prefixed("p", participationColumns)...).
		Columns("u.uuid", "u.name", "u.avatar").
		From("participations p").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{"p.activity_id": activityID}).
		OrderBy("p.created_at ASC", "p.id ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	r.query(ctx, "ListByActivity", query, args)

	rows, err := r.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	participants = make([]domain.Participant, 0)

	for rows.Next() {
		var user domain.User

		participation, err := scanParticipation(rows, &user.UUID, &user.Name, &user.Avatar)

		if err != nil {
			return nil, err
		}

		user.ID = participation.UserID
		participants = append(participants, domain.Participant{Participation: participation, User: user})
	}

	return participants, rows.Err()
}

// Transition moves a participation from one status to another. It returns
// ErrStaleRecord when the participation is no longer in the from status.
func (r *ParticipationRepository) Transition(ctx context.Context, id int, from domain.ParticipationStatus, to domain.ParticipationStatus, at time.Time) (participation domain.Participation, err error) {
	ctx, done := r.start(ctx, "Transition", map[string]interface{}{
		"participation.id": id,
		"status.from":      string(from),
		"status.to":        string(to),
	})
	defer done(&err)

	builder := r.db.QueryBuilder.Update("participations").
		Set("status", string(to)).
		Where(sq.Eq{"id": id, "status": string(from)})

	switch to {
	case domain.ParticipationCheckedIn:
		builder = builder.Set("confirmed_at", at.UTC())
	case domain.ParticipationSubscribed, domain.ParticipationDenied:
		builder = builder.Set("approved_at", at.UTC())
	}

	query, args, err := builder.ToSql()

	if err != nil {
		return domain.Participation{}, err
	}

	r.query(ctx, "Transition", query, args)

	result, err := r.db.ExecContext(ctx, query, args...)

	if err != nil {
		return domain.Participation{}, database.Translate(err)
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return domain.Participation{}, err
	}

	if affected == 0 {
		return domain.Participation{}, domain.ErrStaleRecord
	}

	return r.getByID(ctx, id)
}

func (r *ParticipationRepository) Delete(ctx context.Context, id int) (err error) {
	ctx, done := r.start(ctx, "Delete", map[string]interface{}{"participation.id": id})
	defer done(&err)

	query, args, err := r.db.QueryBuilder.Delete("participations").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)

	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
