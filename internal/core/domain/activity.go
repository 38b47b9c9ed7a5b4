package domain

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ActivityType struct {
	ID          int
	UUID        uuid.UUID
	Name        string
	Description string
	Image       *string
}

type Address struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

type Activity struct {
	ID               int
	UUID             uuid.UUID
	Title            string `validate:"required,min=3,max=255"`
	Description      string `validate:"required,max=1000"`
	TypeID           int
	Type             ActivityType
	Image            *string
	Address          Address
	ScheduledDate    time.Time
	Private          bool
	ConfirmationCode string
	CreatorID        int
	Creator          User
	ParticipantCount int
	// ViewerStatus is the status of the requesting user's participation, if any.
	ViewerStatus *ParticipationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
	DeletedAt    *time.Time
}

func (a *Activity) IsConcluded() bool {
	return a.CompletedAt != nil
}

func (a *Activity) IsDeleted() bool {
	return a.DeletedAt != nil
}

func (a *Activity) BelongsToUser(userID int) bool {
	return a.CreatorID == userID
}

// MatchesConfirmationCode compares case-insensitively, ignoring surrounding spaces.
func (a *Activity) MatchesConfirmationCode(code string) bool {
	given := strings.ToUpper(strings.TrimSpace(code))
	expected := strings.ToUpper(a.ConfirmationCode)

	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}

// InitialParticipationStatus is Pendente for private activities and Inscrito otherwise.
func (a *Activity) InitialParticipationStatus() ParticipationStatus {
	if a.Private {
		return ParticipationPending
	}

	return ParticipationSubscribed
}

type ActivityOrderField string

const (
	OrderByTitle            ActivityOrderField = "title"
	OrderByCreatedAt        ActivityOrderField = "createdAt"
	OrderByScheduledDate    ActivityOrderField = "scheduledDate"
	OrderByParticipantCount ActivityOrderField = "participantCount"
)

func ParseActivityOrderField(value string) (ActivityOrderField, error) {
	switch ActivityOrderField(value) {
	case "":
		return OrderByCreatedAt, nil
	case OrderByTitle, OrderByCreatedAt, OrderByScheduledDate, OrderByParticipantCount:
		return ActivityOrderField(value), nil
	default:
		return "", ErrInvalidOrderBy
	}
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(value string) (SortDirection, error) {
	switch strings.ToLower(value) {
	case "":
		return SortDesc, nil
	case string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	default:
		return "", ErrInvalidOrder
	}
}

// ActivityQuery selects activities for listings. Zero Limit means unpaginated.
type ActivityQuery struct {
	TypeID        int
	CreatorID     int
	ParticipantID int
	ViewerID      int
	OnlyOpen      bool
	OrderBy       ActivityOrderField
	Order         SortDirection
	Limit         int
	Offset        int
}

type ActivityPage struct {
	Page       int
	PageSize   int
	Total      int
	Activities []Activity
}

func (p ActivityPage) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}

	return (p.Total + p.PageSize - 1) / p.PageSize
}

func (p ActivityPage) Previous() *int {
	if p.Page <= 1 {
		return nil
	}

	previous := p.Page - 1
	return &previous
}

func (p ActivityPage) Next() *int {
	if p.Page >= p.TotalPages() {
		return nil
	}

	next := p.Page + 1
	return &next
}
