package repository

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"activityapp/internal/adapter/database"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/port"
)

var userColumns = []string{
	"id", "uuid", "name", "email", "cpf", "encrypted_password", "avatar",
	"xp", "level", "created_at", "updated_at", "deactivated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func prefixed(alias string, columns []string) []string {
	result := make([]string, len(columns))

	for i, column := range columns {
		result[i] = alias + "." + column
	}

	return result
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User

	err := row.Scan(
		&user.ID,
		&user.UUID,
		&user.Name,
		&user.Email,
		&user.CPF,
		&user.EncryptedPassword,
		&user.Avatar,
		&user.XP,
		&user.Level,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeactivatedAt,
	)

	return user, err
}

type UserRepository struct {
	db      *database.DB
	scanner *database.Scanner
	instrumentation
}

func NewUserRepository(db *database.DB, telemetry port.Telemetry) port.UserRepository {
	return &UserRepository{
		db:              db,
		scanner:         database.NewScanner(),
		instrumentation: newInstrumentation(db, telemetry, "user"),
	}
}

func (ur *UserRepository) getBy(ctx context.Context, operation string, where sq.Eq) (user domain.User, err error) {
	ctx, done := ur.start(ctx, operation, nil)
	defer done(&err)

	query, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	ur.query(ctx, operation, query, args)

	user, err = scanUser(ur.db.QueryRowContext(ctx, query, args...))

	if err != nil {
		return domain.User{}, database.Translate(err)
	}

	return user, nil
}

func (ur *UserRepository) GetByID(ctx context.Context, id int) (domain.User, error) {
	return ur.getBy(ctx, "GetByID", sq.Eq{"id": id})
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	return ur.getBy(ctx, "GetByUUID", sq.Eq{"uuid": uid})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getBy(ctx, "GetByEmail", sq.Eq{"email": strings.ToLower(email)})
}

func (ur *UserRepository) GetByCPF(ctx context.Context, cpf string) (domain.User, error) {
	return ur.getBy(ctx, "GetByCPF", sq.Eq{"cpf": cpf})
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (saved domain.User, err error) {
	ctx, done := ur.start(ctx, "Create", map[string]interface{}{"user.uuid": user.UUID.String()})
	defer done(&err)

	if user.Level == 0 {
		user.Level = domain.LevelForXP(user.XP)
	}

	query, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "name", "email", "cpf", "encrypted_password", "avatar", "xp", "level", "created_at", "updated_at").
		Values(user.UUID.String(), user.Name, strings.ToLower(user.Email), user.CPF, user.EncryptedPassword, user.Avatar,
			user.XP, user.Level, user.CreatedAt.UTC(), user.UpdatedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	ur.query(ctx, "Create", query, args)

	if err = ur.db.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		return domain.User{}, database.Translate(err)
	}

	return ur.GetByID(ctx, user.ID)
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) (updated domain.User, err error) {
	ctx, done := ur.start(ctx, "Update", map[string]interface{}{"user.id": user.ID})
	defer done(&err)

	query, args, err := ur.db.QueryBuilder.Update("users").
		Set("name", user.Name).
		Set("email", strings.ToLower(user.Email)).
		Set("encrypted_password", user.EncryptedPassword).
		Set("avatar", user.Avatar).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": user.ID}).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	ur.query(ctx, "Update", query, args)

	result, err := ur.db.ExecContext(ctx, query, args...)

	if err != nil {
		return domain.User{}, database.Translate(err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.User{}, domain.ErrRecordNotFound
	}

	return ur.GetByID(ctx, user.ID)
}

func (ur *UserRepository) Deactivate(ctx context.Context, id int, at time.Time) (err error) {
	ctx, done := ur.start(ctx, "Deactivate", map[string]interface{}{"user.id": id})
	defer done(&err)

	query, args, err := ur.db.QueryBuilder.Update("users").
		Set("deactivated_at", at.UTC()).
		Set("updated_at", at.UTC()).
		Where(sq.Eq{"id": id}).
		Where("deactivated_at IS NULL").
		ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.ExecContext(ctx, query, args...)

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

// AddXP increments xp and recomputes the level in a single statement.
func (ur *UserRepository) AddXP(ctx context.Context, id int, amount int) (user domain.User, err error) {
	ctx, done := ur.start(ctx, "AddXP", map[string]interface{}{"user.id": id, "xp.amount": amount})
	defer done(&err)

	query, args, err := ur.db.QueryBuilder.Update("users").
		Set("xp", sq.Expr("xp + ?", amount)).
		Set("level", sq.Expr("(xp + ?) / ? + 1", amount, domain.XPPerLevel)).
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	ur.query(ctx, "AddXP", query, args)

	if _, err = ur.db.ExecContext(ctx, query, args...); err != nil {
		return domain.User{}, database.Translate(err)
	}

	return ur.GetByID(ctx, id)
}

func (ur *UserRepository) GetPreferences(ctx context.Context, userID int) (types []domain.ActivityType, err error) {
	ctx, done := ur.start(ctx, "GetPreferences", map[string]interface{}{"user.id": userID})
	defer done(&err)

	query, args, err := ur.db.QueryBuilder.Select(prefixed("t", activityTypeColumns)...).
		From("user_preferences p").
		Join("activity_types t ON t.id = p.type_id").
		Where(sq.Eq{"p.user_id": userID}).
		OrderBy("t.name ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	types = make([]domain.ActivityType, 0)

	if err = ur.scanner.ScanRowsToSlice(rows, &types); err != nil {
		return nil, err
	}

	return types, nil
}

// SetPreferences replaces the whole preference set of the user.
func (ur *UserRepository) SetPreferences(ctx context.Context, userID int, typeIDs []int) (err error) {
	ctx, done := ur.start(ctx, "SetPreferences", map[string]interface{}{"user.id": userID, "preferences.count": len(typeIDs)})
	defer done(&err)

	tx, err := ur.db.BeginTx(ctx, nil)

	if err != nil {
		return err
	}

	defer tx.Rollback()

	query, args, err := ur.db.QueryBuilder.Delete("user_preferences").
		Where(sq.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	if len(typeIDs) > 0 {
		insert := ur.db.QueryBuilder.Insert("user_preferences").Columns("user_id", "type_id")

		seen := make(map[int]bool, len(typeIDs))

		for _, typeID := range typeIDs {
			if seen[typeID] {
				continue
			}

			seen[typeID] = true
			insert = insert.Values(userID, typeID)
		}

		query, args, err = insert.ToSql()

		if err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return database.Translate(err)
		}
	}

	return tx.Commit()
}
