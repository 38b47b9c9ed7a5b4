package response

import (
	"time"

	"activityapp/internal/core/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details []ValidationError `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AchievementResponse struct {
	Name       string     `json:"name"`
	Criterion  string     `json:"criterion"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

type UserResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	CPF          string                `json:"cpf"`
	Avatar       *string               `json:"avatar"`
	XP           int                   `json:"xp"`
	Level        int                   `json:"level"`
	Achievements []AchievementResponse `json:"achievements"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

type SignInResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ActivityTypeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

type AddressResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CreatorResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

type ActivityResponse struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	Type             ActivityTypeResponse `json:"type"`
	Image            *string              `json:"image"`
	Address          AddressResponse      `json:"address"`
	ScheduledDate    time.Time            `json:"scheduledDate"`
	CreatedAt        time.Time            `json:"createdAt"`
	CompletedAt      *time.Time           `json:"completedAt"`
	Private          bool                 `json:"private"`
	ConfirmationCode string               `json:"confirmationCode,omitempty"`
	ParticipantCount int                  `json:"participantCount"`
	Creator          CreatorResponse      `json:"creator"`
	// UserSubscriptionStatus is null when the viewer has no participation.
	UserSubscriptionStatus *string `json:"userSubscriptionStatus"`
}

type PaginatedActivitiesResponse struct {
	Page            int                `json:"page"`
	PageSize        int                `json:"pageSize"`
	TotalActivities int                `json:"totalActivities"`
	TotalPages      int                `json:"totalPages"`
	Previous        *int               `json:"previous"`
	Next            *int               `json:"next"`
	Activities      []ActivityResponse `json:"activities"`
}

type ParticipantResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Avatar             *string    `json:"avatar"`
	SubscriptionStatus string     `json:"subscriptionStatus"`
	ConfirmedAt        *time.Time `json:"confirmedAt"`
}

type SubscriptionResponse struct {
	ID          string     `json:"id"`
	ActivityID  string     `json:"activityId"`
	Status      string     `json:"subscriptionStatus"`
	ApprovedAt  *time.Time `json:"approvedAt"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewUserResponse(user domain.User) UserResponse {
	achievements := make([]AchievementResponse, 0, len(user.Achievements))

	for _, achievement := range user.Achievements {
		achievements = append(achievements, NewAchievementResponse(achievement))
	}

	return UserResponse{
		ID:           user.UUID.String(),
		Name:         user.Name,
		Email:        user.Email,
		CPF:          user.CPF,
		Avatar:       user.Avatar,
		XP:           user.XP,
		Level:        user.Level,
		Achievements: achievements,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func NewAchievementResponse(achievement domain.Achievement) AchievementResponse {
	return AchievementResponse{
		Name:       achievement.Name,
		Criterion:  achievement.Criterion,
		UnlockedAt: achievement.UnlockedAt,
	}
}

func NewActivityTypeResponse(activityType domain.ActivityType) ActivityTypeResponse {
	return ActivityTypeResponse{
		ID:          activityType.UUID.String(),
		Name:        activityType.Name,
		Description: activityType.Description,
		Image:       activityType.Image,
	}
}

func NewActivityTypesResponse(types []domain.ActivityType) []ActivityTypeResponse {
	data := make([]ActivityTypeResponse, 0, len(types))

	for _, activityType := range types {
		data = append(data, NewActivityTypeResponse(activityType))
	}

	return data
}

// NewActivityResponse only exposes the confirmation code to the activity creator.
func NewActivityResponse(activity domain.Activity, viewerID int) ActivityResponse {
	resp := ActivityResponse{
		ID:               activity.UUID.String(),
		Title:            activity.Title,
		Description:      activity.Description,
		Type:             NewActivityTypeResponse(activity.Type),
		Image:            activity.Image,
		Address:          AddressResponse(activity.Address),
		ScheduledDate:    activity.ScheduledDate,
		CreatedAt:        activity.CreatedAt,
		CompletedAt:      activity.CompletedAt,
		Private:          activity.Private,
		ParticipantCount: activity.ParticipantCount,
		Creator: CreatorResponse{
			ID:     activity.Creator.UUID.String(),
			Name:   activity.Creator.Name,
			Avatar: activity.Creator.Avatar,
		},
	}

	if activity.BelongsToUser(viewerID) {
		resp.ConfirmationCode = activity.ConfirmationCode
	}

	if activity.ViewerStatus != nil {
		label := activity.ViewerStatus.Label()
		resp.UserSubscriptionStatus = &label
	}

	return resp
}

func NewActivitiesResponse(activities []domain.Activity, viewerID int) []ActivityResponse {
	data := make([]ActivityResponse, 0, len(activities))

	for _, activity := range activities {
		data = append(data, NewActivityResponse(activity, viewerID))
	}

	return data
}

func NewPaginatedActivitiesResponse(page domain.ActivityPage, viewerID int) PaginatedActivitiesResponse {
	return PaginatedActivitiesResponse{
		Page:            page.Page,
		PageSize:        page.PageSize,
		TotalActivities: page.Total,
		TotalPages:      page.TotalPages(),
		Previous:        page.Previous(),
		Next:            page.Next(),
		Activities:      NewActivitiesResponse(page.Activities, viewerID),
	}
}

func NewParticipantsResponse(participants []domain.Participant) []ParticipantResponse {
	data := make([]ParticipantResponse, 0, len(participants))

	for _, participant := range participants {
		data = append(data, ParticipantResponse{
			ID:                 participant.User.UUID.String(),
			Name:               participant.User.Name,
			Avatar:             participant.User.Avatar,
			SubscriptionStatus: participant.Status.Label(),
			ConfirmedAt:        participant.ConfirmedAt,
		})
	}

	return data
}

func NewSubscriptionResponse(participation domain.Participation, activityUUID string) SubscriptionResponse {
	return SubscriptionResponse{
		ID:          participation.UUID.String(),
		ActivityID:  activityUUID,
		Status:      participation.Status.Label(),
		ApprovedAt:  participation.ApprovedAt,
		ConfirmedAt: participation.ConfirmedAt,
		CreatedAt:   participation.CreatedAt,
	}
}
