package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ParticipationStatus string

const (
	ParticipationPending    ParticipationStatus = "PENDING"
	ParticipationSubscribed ParticipationStatus = "SUBSCRIBED"
	ParticipationDenied     ParticipationStatus = "DENIED"
	ParticipationCheckedIn  ParticipationStatus = "CHECKED_IN"
)

var participationLabels = map[ParticipationStatus]string{
	ParticipationPending:    "Pendente",
	ParticipationSubscribed: "Inscrito",
	ParticipationDenied:     "Negado",
	ParticipationCheckedIn:  "Participante",
}

// Label is the pt-BR name exposed by the API.
func (s ParticipationStatus) Label() string {
	if label, ok := participationLabels[s]; ok {
		return label
	}

	return string(s)
}

func ParseParticipationStatus(value string) (ParticipationStatus, error) {
	status := ParticipationStatus(value)

	if _, ok := participationLabels[status]; !ok {
		return "", fmt.Errorf("invalid participation status: %s", value)
	}

	return status, nil
}

type Participation struct {
	ID          int
	UUID        uuid.UUID
	UserID      int
	ActivityID  int
	Status      ParticipationStatus
	ApprovedAt  *time.Time
	ConfirmedAt *time.Time
	CreatedAt   time.Time
}

// Participant is a participation joined with its user, as listed for an activity.
type Participant struct {
	Participation
	User User
}

// Decide returns the status reached when the creator approves or denies a pending request.
func (p *Participation) Decide(approved bool) (ParticipationStatus, error) {
	if p.Status != ParticipationPending {
		return "", ErrParticipationNotPending
	}

	if approved {
		return ParticipationSubscribed, nil
	}

	return ParticipationDenied, nil
}

// CanCheckIn reports why a participation cannot move to CHECKED_IN, if it cannot.
func (p *Participation) CanCheckIn() error {
	switch p.Status {
	case ParticipationSubscribed:
		return nil
	case ParticipationCheckedIn:
		return ErrAlreadyCheckedIn
	default:
		return ErrSubscriptionNotApproved
	}
}

// CanLeave keeps DENIED rows in place: they are the record that blocks a new request.
func (p *Participation) CanLeave() error {
	switch p.Status {
	case ParticipationCheckedIn:
		return ErrCheckedInCannotLeave
	case ParticipationDenied:
		return ErrNotSubscribed
	default:
		return nil
	}
}
