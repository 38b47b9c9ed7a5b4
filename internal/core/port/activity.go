package port

import (
	"context"
	"time"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
)

type ActivityTypeRepository interface {
	List(ctx context.Context) ([]domain.ActivityType, error)
	GetByUUID(ctx context.Context, uuid string) (domain.ActivityType, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	GetByUUID(ctx context.Context, uuid string, viewerID int) (domain.Activity, error)
	List(ctx context.Context, query domain.ActivityQuery) ([]domain.Activity, error)
	Count(ctx context.Context, query domain.ActivityQuery) (int, error)
	Update(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	Conclude(ctx context.Context, id int, at time.Time) error
	DeleteByUUID(ctx context.Context, uuid string, at time.Time) error
}

type ParticipationRepository interface {
	Create(ctx context.Context, participation domain.Participation) (domain.Participation, error)
	GetByUserAndActivity(ctx context.Context, userID int, activityID int) (domain.Participation, error)
	ListByActivity(ctx context.Context, activityID int) ([]domain.Participant, error)
	Transition(ctx context.Context, id int, from domain.ParticipationStatus, to domain.ParticipationStatus, at time.Time) (domain.Participation, error)
	Delete(ctx context.Context, id int) error
}

type ActivityService interface {
	ListTypes(ctx context.Context) ([]domain.ActivityType, error)
	List(ctx context.Context, viewerID int, query request.ActivityListQuery) (domain.ActivityPage, error)
	ListAll(ctx context.Context, viewerID int, query request.ActivityListQuery) ([]domain.Activity, error)
	ListCreatedBy(ctx context.Context, userID int, query request.ActivityListQuery) (domain.ActivityPage, error)
	ListAllCreatedBy(ctx context.Context, userID int, query request.ActivityListQuery) ([]domain.Activity, error)
	ListParticipatedBy(ctx context.Context, userID int, query request.ActivityListQuery) (domain.ActivityPage, error)
	ListAllParticipatedBy(ctx context.Context, userID int, query request.ActivityListQuery) ([]domain.Activity, error)
	GetParticipants(ctx context.Context, activityUUID string) ([]domain.Participant, error)
	Create(ctx context.Context, creatorID int, req *request.ActivityRequest, image *Upload) (domain.Activity, error)
	Update(ctx context.Context, userID int, activityUUID string, req *request.UpdateActivityRequest, image *Upload) (domain.Activity, error)
	Conclude(ctx context.Context, userID int, activityUUID string) (domain.Activity, error)
	Delete(ctx context.Context, userID int, activityUUID string) error
}

type SubscriptionService interface {
	Subscribe(ctx context.Context, userID int, activityUUID string) (domain.Participation, error)
	Approve(ctx context.Context, userID int, activityUUID string, participantUUID string, approved bool) (domain.Participation, error)
	CheckIn(ctx context.Context, userID int, activityUUID string, confirmationCode string) (domain.Participation, error)
	Unsubscribe(ctx context.Context, userID int, activityUUID string) error
}
