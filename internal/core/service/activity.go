package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
	"activityapp/internal/core/port"
	"activityapp/internal/core/util"
)

const (
	activityImageFolder = "activities"
	activityTypesKey    = "activity_types"
	activityTypesTTL    = 10 * time.Minute

	DefaultPageSize = 10
	MaxPageSize     = 100
)

type ActivityService struct {
	repo           port.ActivityRepository
	types          port.ActivityTypeRepository
	participations port.ParticipationRepository
	storage        port.FileStorage
	cache          port.CacheRepository
	progress       port.ProgressService
	tracer
}

func NewActivityService(
	repo port.ActivityRepository,
	types port.ActivityTypeRepository,
	participations port.ParticipationRepository,
	storage port.FileStorage,
	cache port.CacheRepository,
	progress port.ProgressService,
	telemetry port.Telemetry,
) *ActivityService {
	return &ActivityService{
		repo:           repo,
		types:          types,
		participations: participations,
		storage:        storage,
		cache:          cache,
		progress:       progress,
		tracer:         newTracer(telemetry, "activity"),
	}
}

// ListTypes reads through the cache when one is configured.
func (as *ActivityService) ListTypes(ctx context.Context) (types []domain.ActivityType, err error) {
	ctx, done := as.trace(ctx, "ListTypes", 0)
	defer done(&err)

	if as.cache != nil {
		if data, err := as.cache.Get(ctx, activityTypesKey); err == nil {
			if cached, err := util.Deserialize[[]domain.ActivityType](data); err == nil {
				return cached, nil
			}
		}
	}

	types, err = as.types.List(ctx)

	if err != nil {
		return nil, err
	}

	if as.cache != nil {
		if data, err := util.Serialize(types); err == nil {
			if err := as.cache.Set(ctx, activityTypesKey, data, activityTypesTTL); err != nil {
				slog.Warn("Activity#ListTypes", "cache_error", err)
			}
		}
	}

	return types, nil
}

func (as *ActivityService) resolveType(ctx context.Context, typeUUID string) (domain.ActivityType, error) {
	activityType, err := as.types.GetByUUID(ctx, typeUUID)

	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.ActivityType{}, domain.ErrActivityTypeNotFound
	}

	return activityType, err
}

// buildQuery validates the listing parameters. paginate=false ignores page and pageSize.
func (as *ActivityService) buildQuery(ctx context.Context, params request.ActivityListQuery, paginate bool) (domain.ActivityQuery, int, int, error) {
	var query domain.ActivityQuery

	orderBy, err := domain.ParseActivityOrderField(params.OrderBy)

	if err != nil {
		return query, 0, 0, err
	}

	order, err := domain.ParseSortDirection(params.Order)

	if err != nil {
		return query, 0, 0, err
	}

	query.OrderBy = orderBy
	query.Order = order

	if typeID := strings.TrimSpace(params.TypeID); typeID != "" {
		activityType, err := as.resolveType(ctx, typeID)

		if err != nil {
			return query, 0, 0, err
		}

		query.TypeID = activityType.ID
	}

	if !paginate {
		return query, 0, 0, nil
	}

	page, pageSize := params.Page, params.PageSize

	if page < 0 || pageSize < 0 || pageSize > MaxPageSize {
		return query, 0, 0, domain.ErrInvalidPagination
	}

	if page == 0 {
		page = 1
	}

	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	if page > math.MaxInt/pageSize {
		return query, 0, 0, domain.ErrInvalidPagination
	}

	query.Limit = pageSize
	query.Offset = (page - 1) * pageSize

	return query, page, pageSize, nil
}

func (as *ActivityService) page(ctx context.Context, query domain.ActivityQuery, page, pageSize int) (domain.ActivityPage, error) {
	total, err := as.repo.Count(ctx, query)

	if err != nil {
		return domain.ActivityPage{}, err
	}

	activities, err := as.repo.List(ctx, query)

	if err != nil {
		return domain.ActivityPage{}, err
	}

	return domain.ActivityPage{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		Activities: activities,
	}, nil
}

func (as *ActivityService) list(ctx context.Context, operation string, userID int, params request.ActivityListQuery, scope func(*domain.ActivityQuery)) (_ domain.ActivityPage, err error) {
	ctx, done := as.trace(ctx, operation, userID)
	defer done(&err)

	query, page, pageSize, err := as.buildQuery(ctx, params, true)

	if err != nil {
		return domain.ActivityPage{}, err
	}

	query.ViewerID = userID
	scope(&query)

	return as.page(ctx, query, page, pageSize)
}

func (as *ActivityService) listAll(ctx context.Context, operation string, userID int, params request.ActivityListQuery, scope func(*domain.ActivityQuery)) (_ []domain.Activity, err error) {
	ctx, done := as.trace(ctx, operation, userID)
	defer done(&err)

	query, _, _, err := as.buildQuery(ctx, params, false)

	if err != nil {
		return nil, err
	}

	query.ViewerID = userID
	scope(&query)

	return as.repo.List(ctx, query)
}

func onlyOpen(q *domain.ActivityQuery) { q.OnlyOpen = true }

func createdBy(userID int) func(*domain.ActivityQuery) {
	return func(q *domain.ActivityQuery) { q.CreatorID = userID }
}

func participatedBy(userID int) func(*domain.ActivityQuery) {
	return func(q *domain.ActivityQuery) { q.ParticipantID = userID }
}

func (as *ActivityService) List(ctx context.Context, viewerID int, query request.ActivityListQuery) (domain.ActivityPage, error) {
	return as.list(ctx, "List", viewerID, query, onlyOpen)
}

func (as *ActivityService) ListAll(ctx context.Context, viewerID int, query request.ActivityListQuery) ([]domain.Activity, error) {
	return as.listAll(ctx, "ListAll", viewerID, query, onlyOpen)
}

func (as *ActivityService) ListCreatedBy(ctx context.Context, userID int, query request.ActivityListQuery) (domain.ActivityPage, error) {
	return as.list(ctx, "ListCreatedBy", userID, query, createdBy(userID))
}

func (as *ActivityService) ListAllCreatedBy(ctx context.Context, userID int, query request.ActivityListQuery) ([]domain.Activity, error) {
	return as.listAll(ctx, "ListAllCreatedBy", userID, query, createdBy(userID))
}

func (as *ActivityService) ListParticipatedBy(ctx context.Context, userID int, query request.ActivityListQuery) (domain.ActivityPage, error) {
	return as.list(ctx, "ListParticipatedBy", userID, query, participatedBy(userID))
}

func (as *ActivityService) ListAllParticipatedBy(ctx context.Context, userID int, query request.ActivityListQuery) ([]domain.Activity, error) {
	return as.listAll(ctx, "ListAllParticipatedBy", userID, query, participatedBy(userID))
}

func (as *ActivityService) getActivity(ctx context.Context, activityUUID string, viewerID int) (domain.Activity, error) {
	if _, err := uuid.Parse(activityUUID); err != nil {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	activity, err := as.repo.GetByUUID(ctx, activityUUID, viewerID)

	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	return activity, err
}

// getOwnActivity loads an activity the user created.
func (as *ActivityService) getOwnActivity(ctx context.Context, userID int, activityUUID string) (domain.Activity, error) {
	activity, err := as.getActivity(ctx, activityUUID, userID)

	if err != nil {
		return domain.Activity{}, err
	}

	if !activity.BelongsToUser(userID) {
		return domain.Activity{}, domain.ErrNotActivityCreator
	}

	return activity, nil
}

func (as *ActivityService) GetParticipants(ctx context.Context, activityUUID string) (_ []domain.Participant, err error) {
	ctx, done := as.trace(ctx, "GetParticipants", 0)
	defer done(&err)

	activity, err := as.getActivity(ctx, activityUUID, 0)

	if err != nil {
		return nil, err
	}

	return as.participations.ListByActivity(ctx, activity.ID)
}

func (as *ActivityService) Create(ctx context.Context, creatorID int, req *request.ActivityRequest, image *port.Upload) (_ domain.Activity, err error) {
	ctx, done := as.trace(ctx, "Create", creatorID)
	defer done(&err)

	if image == nil {
		return domain.Activity{}, domain.ErrImageRequired
	}

	address, err := req.ParseAddress()

	if err != nil {
		return domain.Activity{}, err
	}

	scheduledDate, err := req.ParseScheduledDate()

	if err != nil {
		return domain.Activity{}, err
	}

	if !scheduledDate.After(time.Now()) {
		return domain.Activity{}, domain.ErrScheduledDateInPast
	}

	activityType, err := as.resolveType(ctx, req.TypeID)

	if err != nil {
		return domain.Activity{}, err
	}

	code, err := util.GenerateConfirmationCode()

	if err != nil {
		return domain.Activity{}, err
	}

	path, err := as.storage.SaveImage(ctx, activityImageFolder, *image)

	if err != nil {
		return domain.Activity{}, err
	}

	now := time.Now()

	activity := domain.Activity{
		UUID:             uuid.New(),
		Title:            strings.TrimSpace(req.Title),
		Description:      strings.TrimSpace(req.Description),
		TypeID:           activityType.ID,
		Image:            &path,
		Address:          address,
		ScheduledDate:    scheduledDate,
		Private:          req.Private,
		ConfirmationCode: code,
		CreatorID:        creatorID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	saved, err := as.repo.Create(ctx, activity)

	if err != nil {
		slog.Error("Activity#Create", "error", err)
		as.storage.Delete(ctx, path)
		return domain.Activity{}, err
	}

	as.event(ctx, "created", "activity", saved.UUID.String(), creatorID, map[string]interface{}{
		"private": saved.Private,
		"type":    activityType.Name,
	})

	rewardQuietly(ctx, as.progress, "Activity#Create", creatorID, domain.XPForCreatingActivity)

	return saved, nil
}

func (as *ActivityService) Update(ctx context.Context, userID int, activityUUID string, req *request.UpdateActivityRequest, image *port.Upload) (_ domain.Activity, err error) {
	ctx, done := as.trace(ctx, "Update", userID)
	defer done(&err)

	activity, err := as.getOwnActivity(ctx, userID, activityUUID)

	if err != nil {
		return domain.Activity{}, err
	}

	if activity.IsConcluded() {
		return domain.Activity{}, domain.ErrActivityConcluded
	}

	if req.Title != nil {
		activity.Title = strings.TrimSpace(*req.Title)
	}

	if req.Description != nil {
		activity.Description = strings.TrimSpace(*req.Description)
	}

	if req.TypeID != nil {
		activityType, err := as.resolveType(ctx, *req.TypeID)

		if err != nil {
			return domain.Activity{}, err
		}

		activity.TypeID = activityType.ID
	}

	if req.HasAddress() {
		if activity.Address, err = req.ParseAddress(); err != nil {
			return domain.Activity{}, err
		}
	}

	if req.ScheduledDate != nil {
		scheduledDate, err := req.ParseScheduledDate()

		if err != nil {
			return domain.Activity{}, err
		}

		if !scheduledDate.After(time.Now()) {
			return domain.Activity{}, domain.ErrScheduledDateInPast
		}

		activity.ScheduledDate = scheduledDate
	}

	if req.Private != nil {
		activity.Private = *req.Private
	}

	previousImage := activity.Image

	if image != nil {
		path, err := as.storage.SaveImage(ctx, activityImageFolder, *image)

		if err != nil {
			return domain.Activity{}, err
		}

		activity.Image = &path
	}

	updated, err := as.repo.Update(ctx, activity)

	if errors.Is(err, domain.ErrStaleRecord) {
		err = domain.ErrActivityConcluded
	}

	if err != nil {
		if image != nil {
			as.storage.Delete(ctx, *activity.Image)
		}

		return domain.Activity{}, err
	}

	if image != nil && previousImage != nil {
		if err := as.storage.Delete(ctx, *previousImage); err != nil {
			slog.Warn("Activity#Update", "delete_previous", err, "path", *previousImage)
		}
	}

	return updated, nil
}

func (as *ActivityService) Conclude(ctx context.Context, userID int, activityUUID string) (_ domain.Activity, err error) {
	ctx, done := as.trace(ctx, "Conclude", userID)
	defer done(&err)

	activity, err := as.getOwnActivity(ctx, userID, activityUUID)

	if err != nil {
		return domain.Activity{}, err
	}

	if activity.IsConcluded() {
		return domain.Activity{}, domain.ErrActivityAlreadyConcluded
	}

	err = as.repo.Conclude(ctx, activity.ID, time.Now())

	if errors.Is(err, domain.ErrStaleRecord) {
		return domain.Activity{}, domain.ErrActivityAlreadyConcluded
	}

	if err != nil {
		return domain.Activity{}, err
	}

	as.event(ctx, "concluded", "activity", activity.UUID.String(), userID, nil)

	rewardQuietly(ctx, as.progress, "Activity#Conclude", userID, domain.XPForConcludingActivity)

	return as.getActivity(ctx, activityUUID, userID)
}

func (as *ActivityService) Delete(ctx context.Context, userID int, activityUUID string) (err error) {
	ctx, done := as.trace(ctx, "Delete", userID)
	defer done(&err)

	activity, err := as.getOwnActivity(ctx, userID, activityUUID)

	if err != nil {
		return err
	}

	err = as.repo.DeleteByUUID(ctx, activity.UUID.String(), time.Now())

	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.ErrActivityNotFound
	}

	if err != nil {
		return err
	}

	as.event(ctx, "deleted", "activity", activity.UUID.String(), userID, nil)

	return nil
}
