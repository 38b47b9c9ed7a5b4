package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipationStatus_Label(t *testing.T) {
	assert.Equal(t, "Pendente", ParticipationPending.Label())
	assert.Equal(t, "Inscrito", ParticipationSubscribed.Label())
	assert.Equal(t, "Negado", ParticipationDenied.Label())
	assert.Equal(t, "Participante", ParticipationCheckedIn.Label())
}

func TestParseParticipationStatus(t *testing.T) {
	status, err := ParseParticipationStatus("CHECKED_IN")

	assert.NoError(t, err)
	assert.Equal(t, ParticipationCheckedIn, status)

	_, err = ParseParticipationStatus("Inscrito")
	assert.Error(t, err)
}

func TestParticipation_Decide(t *testing.T) {
	pending := Participation{Status: ParticipationPending}

	status, err := pending.Decide(true)
	assert.NoError(t, err)
	assert.Equal(t, ParticipationSubscribed, status)

	status, err = pending.Decide(false)
	assert.NoError(t, err)
	assert.Equal(t, ParticipationDenied, status)

	for _, current := range []ParticipationStatus{ParticipationSubscribed, ParticipationDenied, ParticipationCheckedIn} {
		p := Participation{Status: current}

		_, err := p.Decide(true)
		assert.ErrorIs(t, err, ErrParticipationNotPending)
	}
}

func TestParticipation_CanCheckIn(t *testing.T) {
	cases := map[ParticipationStatus]error{
		ParticipationSubscribed: nil,
		ParticipationCheckedIn:  ErrAlreadyCheckedIn,
		ParticipationPending:    ErrSubscriptionNotApproved,
		ParticipationDenied:     ErrSubscriptionNotApproved,
	}

	for status, expected := range cases {
		p := Participation{Status: status}

		if expected == nil {
			assert.NoError(t, p.CanCheckIn(), status)
		} else {
			assert.ErrorIs(t, p.CanCheckIn(), expected, status)
		}
	}
}

func TestParticipation_CanLeave(t *testing.T) {
	assert.NoError(t, (&Participation{Status: ParticipationPending}).CanLeave())
	assert.NoError(t, (&Participation{Status: ParticipationSubscribed}).CanLeave())
	assert.ErrorIs(t, (&Participation{Status: ParticipationCheckedIn}).CanLeave(), ErrCheckedInCannotLeave)
	assert.ErrorIs(t, (&Participation{Status: ParticipationDenied}).CanLeave(), ErrNotSubscribed)
}
