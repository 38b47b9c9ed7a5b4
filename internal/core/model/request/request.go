package request

import (
	"encoding/json"
	"strings"
	"time"

	"activityapp/internal/core/domain"
)

type SignUpRequest struct {
	Name     string `json:"name,omitempty" validate:"required,min=2,max=100"`
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	CPF      string `json:"cpf,omitempty" validate:"required,cpf"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,max=100"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=100"`
}

func (r *UpdateProfileRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Password == nil
}

type PreferencesRequest struct {
	TypeIDs []string `json:"typeIds" validate:"required,dive,uuid"`
}

// ActivityListQuery holds the query string of the activity listings.
type ActivityListQuery struct {
	Page     int    `form:"page" validate:"gte=0"`
	PageSize int    `form:"pageSize" validate:"gte=0,lte=100"`
	TypeID   string `form:"typeId" validate:"omitempty,uuid"`
	OrderBy  string `form:"orderBy"`
	Order    string `form:"order"`
}

type ActivityRequest struct {
	Title         string   `form:"title" json:"title" validate:"required,min=3,max=255"`
	Description   string   `form:"description" json:"description" validate:"required,max=1000"`
	TypeID        string   `form:"typeId" json:"typeId" validate:"required,uuid"`
	Address       string   `form:"address" json:"address"`
	Latitude      *float64 `form:"latitude" json:"latitude"`
	Longitude     *float64 `form:"longitude" json:"longitude"`
	ScheduledDate string   `form:"scheduledDate" json:"scheduledDate" validate:"required"`
	Private       bool     `form:"private" json:"private"`
}

func (r *ActivityRequest) ParseAddress() (domain.Address, error) {
	return parseAddress(r.Address, r.Latitude, r.Longitude)
}

func (r *ActivityRequest) ParseScheduledDate() (time.Time, error) {
	return parseScheduledDate(r.ScheduledDate)
}

// UpdateActivityRequest only changes the fields that are present.
type UpdateActivityRequest struct {
	Title         *string  `form:"title" json:"title" validate:"omitempty,min=3,max=255"`
	Description   *string  `form:"description" json:"description" validate:"omitempty,max=1000"`
	TypeID        *string  `form:"typeId" json:"typeId" validate:"omitempty,uuid"`
	Address       *string  `form:"address" json:"address"`
	Latitude      *float64 `form:"latitude" json:"latitude"`
	Longitude     *float64 `form:"longitude" json:"longitude"`
	ScheduledDate *string  `form:"scheduledDate" json:"scheduledDate"`
	Private       *bool    `form:"private" json:"private"`
}

func (r *UpdateActivityRequest) HasAddress() bool {
	return r.Address != nil || r.Latitude != nil || r.Longitude != nil
}

func (r *UpdateActivityRequest) ParseAddress() (domain.Address, error) {
	var raw string

	if r.Address != nil {
		raw = *r.Address
	}

	return parseAddress(raw, r.Latitude, r.Longitude)
}

// ParseScheduledDate must only be called when ScheduledDate is set.
func (r *UpdateActivityRequest) ParseScheduledDate() (time.Time, error) {
	if r.ScheduledDate == nil {
		return time.Time{}, domain.ErrInvalidScheduledDate
	}

	return parseScheduledDate(*r.ScheduledDate)
}

type ApproveRequest struct {
	ParticipantID string `json:"participantId" validate:"required,uuid"`
	Approved      *bool  `json:"approved" validate:"required"`
}

type CheckInRequest struct {
	ConfirmationCode string `json:"confirmationCode"`
}

type addressPayload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// parseAddress accepts either a JSON encoded address or separate coordinates.
func parseAddress(raw string, latitude, longitude *float64) (domain.Address, error) {
	payload := addressPayload{Latitude: latitude, Longitude: longitude}

	if raw = strings.TrimSpace(raw); raw != "" {
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return domain.Address{}, domain.ErrInvalidAddress
		}
	}

	if payload.Latitude == nil || payload.Longitude == nil {
		return domain.Address{}, domain.ErrInvalidAddress
	}

	lat, lng := *payload.Latitude, *payload.Longitude

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return domain.Address{}, domain.ErrInvalidAddress
	}

	return domain.Address{Latitude: lat, Longitude: lng}, nil
}

func parseScheduledDate(value string) (time.Time, error) {
	date, err := time.Parse(time.RFC3339, strings.TrimSpace(value))

	if err != nil {
		return time.Time{}, domain.ErrInvalidScheduledDate
	}

	return date.UTC(), nil
}
