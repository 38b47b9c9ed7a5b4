package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/port"
)

type SubscriptionService struct {
	activities     port.ActivityRepository
	participations port.ParticipationRepository
	users          port.UserRepository
	progress       port.ProgressService
	tracer
}

func NewSubscriptionService(
	activities port.ActivityRepository,
	participations port.ParticipationRepository,
	users port.UserRepository,
	progress port.ProgressService,
	telemetry port.Telemetry,
) *SubscriptionService {
	return &SubscriptionService{
		activities:     activities,
		participations: participations,
		users:          users,
		progress:       progress,
		tracer:         newTracer(telemetry, "subscription"),
	}
}

func (ss *SubscriptionService) getActivity(ctx context.Context, activityUUID string, viewerID int) (domain.Activity, error) {
	if _, err := uuid.Parse(activityUUID); err != nil {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	activity, err := ss.activities.GetByUUID(ctx, activityUUID, viewerID)

	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	return activity, err
}

func (ss *SubscriptionService) getParticipation(ctx context.Context, userID int, activityID int, missing error) (domain.Participation, error) {
	participation, err := ss.participations.GetByUserAndActivity(ctx, userID, activityID)

	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.Participation{}, missing
	}

	return participation, err
}

// Subscribe joins the activity as Inscrito, or Pendente when it is private.
func (ss *SubscriptionService) Subscribe(ctx context.Context, userID int, activityUUID string) (_ domain.Participation, err error) {
	ctx, done := ss.trace(ctx, "Subscribe", userID)
	defer done(&err)

	activity, err := ss.getActivity(ctx, activityUUID, userID)

	if err != nil {
		return domain.Participation{}, err
	}

	if activity.BelongsToUser(userID) {
		return domain.Participation{}, domain.ErrOwnActivitySubscription
	}

	if activity.IsConcluded() {
		return domain.Participation{}, domain.ErrActivityConcluded
	}

	if activity.ViewerStatus != nil {
		return domain.Participation{}, domain.ErrAlreadySubscribed
	}

	participation := domain.Participation{
		UUID:       uuid.New(),
		UserID:     userID,
		ActivityID: activity.ID,
		Status:     activity.InitialParticipationStatus(),
		CreatedAt:  time.Now(),
	}

	saved, err := ss.participations.Create(ctx, participation)

	if errors.Is(err, domain.ErrDuplicateRecord) {
		return domain.Participation{}, domain.ErrAlreadySubscribed
	}

	if err != nil {
		return domain.Participation{}, err
	}

	ss.event(ctx, "subscribed", "participation", saved.UUID.String(), userID, map[string]interface{}{
		"activity": activity.UUID.String(),
		"status":   string(saved.Status),
	})

	return saved, nil
}

// Approve decides a pending request. participantUUID is the participant's user id.
func (ss *SubscriptionService) Approve(ctx context.Context, userID int, activityUUID string, participantUUID string, approved bool) (_ domain.Participation, err error) {
	ctx, done := ss.trace(ctx, "Approve", userID)
	defer done(&err)

	activity, err := ss.getActivity(ctx, activityUUID, userID)

	if err != nil {
		return domain.Participation{}, err
	}

	if !activity.BelongsToUser(userID) {
		return domain.Participation{}, domain.ErrNotActivityCreator
	}

	participant, err := ss.users.GetByUUID(ctx, participantUUID)

	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.Participation{}, domain.ErrParticipantNotFound
	}

	if err != nil {
		return domain.Participation{}, err
	}

	participation, err := ss.getParticipation(ctx, participant.ID, activity.ID, domain.ErrParticipantNotFound)

	if err != nil {
		return domain.Participation{}, err
	}

	status, err := participation.Decide(approved)

	if err != nil {
		return domain.Participation{}, err
	}

	updated, err := ss.participations.Transition(ctx, participation.ID, participation.Status, status, time.Now())

	if errors.Is(err, domain.ErrStaleRecord) {
		return domain.Participation{}, domain.ErrParticipationNotPending
	}

	if err != nil {
		return domain.Participation{}, err
	}

	ss.event(ctx, strings.ToLower(string(status)), "participation", updated.UUID.String(), userID, map[string]interface{}{
		"activity":    activity.UUID.String(),
		"participant": participantUUID,
	})

	return updated, nil
}

func (ss *SubscriptionService) CheckIn(ctx context.Context, userID int, activityUUID string, confirmationCode string) (_ domain.Participation, err error) {
	ctx, done := ss.trace(ctx, "CheckIn", userID)
	defer done(&err)

	if strings.TrimSpace(confirmationCode) == "" {
		return domain.Participation{}, domain.ErrConfirmationCodeRequired
	}

	activity, err := ss.getActivity(ctx, activityUUID, userID)

	if err != nil {
		return domain.Participation{}, err
	}

	if activity.IsConcluded() {
		return domain.Participation{}, domain.ErrActivityConcluded
	}

	participation, err := ss.getParticipation(ctx, userID, activity.ID, domain.ErrNotSubscribed)

	if err != nil {
		return domain.Participation{}, err
	}

	if err := participation.CanCheckIn(); err != nil {
		return domain.Participation{}, err
	}

	if !activity.MatchesConfirmationCode(confirmationCode) {
		return domain.Participation{}, domain.ErrWrongConfirmationCode
	}

	updated, err := ss.participations.Transition(ctx, participation.ID, domain.ParticipationSubscribed, domain.ParticipationCheckedIn, time.Now())

	if errors.Is(err, domain.ErrStaleRecord) {
		return domain.Participation{}, domain.ErrAlreadyCheckedIn
	}

	if err != nil {
		return domain.Participation{}, err
	}

	ss.event(ctx, "checked_in", "participation", updated.UUID.String(), userID, map[string]interface{}{
		"activity": activity.UUID.String(),
	})

	rewardQuietly(ctx, ss.progress, "Subscription#CheckIn", userID, domain.XPForCheckIn)

	return updated, nil
}

func (ss *SubscriptionService) Unsubscribe(ctx context.Context, userID int, activityUUID string) (err error) {
	ctx, done := ss.trace(ctx, "Unsubscribe", userID)
	defer done(&err)

	activity, err := ss.getActivity(ctx, activityUUID, userID)

	if err != nil {
		return err
	}

	participation, err := ss.getParticipation(ctx, userID, activity.ID, domain.ErrNotSubscribed)

	if err != nil {
		return err
	}

	if err := participation.CanLeave(); err != nil {
		return err
	}

	err = ss.participations.Delete(ctx, participation.ID)

	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.ErrNotSubscribed
	}

	if err != nil {
		return err
	}

	ss.event(ctx, "unsubscribed", "participation", participation.UUID.String(), userID, map[string]interface{}{
		"activity": activity.UUID.String(),
	})

	return nil
}
