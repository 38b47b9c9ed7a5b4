package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/response"
)

type SubscriptionHandlerSuite struct {
	suite.Suite
	api              *api
	creator          domain.User
	creatorToken     string
	participant      domain.User
	participantToken string
}

func (s *SubscriptionHandlerSuite) SetupTest() {
	s.api = newAPI(s.T())
	s.creator, s.creatorToken = s.api.createUser()
	s.participant, s.participantToken = s.api.createUser()
}

func TestSubscriptionHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(SubscriptionHandlerSuite))
}

func activityPath(activity domain.Activity, action string) string {
	return fmt.Sprintf("/activities/%s/%s", activity.UUID, action)
}

func (s *SubscriptionHandlerSuite) TestSubscribe() {
	activity := s.api.createActivity(s.creator.ID)

	rr := s.api.request(http.MethodPost, activityPath(activity, "subscribe"), s.participantToken, nil)

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := decode[response.SubscriptionResponse](s.T(), rr)

	Expect(data.Status).To(Equal("Inscrito"))
	Expect(data.ActivityID).To(Equal(activity.UUID.String()))
}

func (s *SubscriptionHandlerSuite) TestSubscribeTwice() {
	activity := s.api.createActivity(s.creator.ID)

	s.api.request(http.MethodPost, activityPath(activity, "subscribe"), s.participantToken, nil)
	rr := s.api.request(http.MethodPost, activityPath(activity, "subscribe"), s.participantToken, nil)

	Expect(rr.Code).To(Equal(http.StatusConflict))
	Expect(errorMessage(s.T(), rr)).To(Equal(domain.ErrAlreadySubscribed.Message))
}

func (s *SubscriptionHandlerSuite) TestSubscribeOwnActivity() {
	activity := s.api.createActivity(s.creator.ID)

	rr := s.api.request(http.MethodPost, activityPath(activity, "subscribe"), s.creatorToken, nil)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(errorMessage(s.T(), rr)).To(Equal(domain.ErrOwnActivitySubscription.Message))
}

func (s *SubscriptionHandlerSuite) TestSubscribeMissingActivity() {
	rr := s.api.request(http.MethodPost, fmt.Sprintf("/activities/%s/subscribe", uuid.New()), s.participantToken, nil)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *SubscriptionHandlerSuite) TestApprovePrivate() {
	activity := s.api.createActivity(s.creator.ID, map[string]any{"Private": true})

	rr := s.api.request(http.MethodPost, activityPath(activity, "subscribe"), s.participantToken, nil)

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decode[response.SubscriptionResponse](s.T(), rr).Status).To(Equal("Pendente"))

	body := map[string]any{"participantId": s.participant.UUID.String(), "approved": true}

	rr = s.api.request(http.MethodPut, activityPath(activity, "approve"), s.participantToken, body)

	Expect(rr.Code).To(Equal(http.StatusForbidden))

	rr = s.api.request(http.MethodPut, activityPath(activity, "approve"), s.creatorToken, body)

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decode[response.SubscriptionResponse](s.T(), rr).Status).To(Equal("Inscrito"))

	rr = s.api.request(http.MethodPut, activityPath(activity, "approve"), s.creatorToken, body)

	Expect(rr.Code).To(Equal(http.StatusConflict))
}

func (s *SubscriptionHandlerSuite) TestApproveValidation() {
	activity := s.api.createActivity(s.creator.ID, map[string]any{"Private": true})

	rr := s.api.request(http.MethodPut, activityPath(activity, "approve"), s.creatorToken, map[string]any{"participantId": "x"})

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	rr = s.api.request(http.MethodPut, activityPath(activity, "approve"), s.creatorToken, map[string]any{
		"participantId": uuid.NewString(),
		"approved":      false,
	})

	Expect(rr.Code).To(Equal(http.StatusNotFound))
	Expect(errorMessage(s.T(), rr)).To(Equal(domain.ErrParticipantNotFound.Message))
}

func (s *SubscriptionHandlerSuite) TestCheckIn() {
	activity := s.api.createActivity(s.creator.ID)

	s.api.request(http.MethodPost, activityPath(activity, "subscribe"), s.participantToken, nil)

	rr := s.api.request(http.MethodPut, activityPath(activity, "check-in"), s.participantToken, map[string]any{"confirmationCode": "WRONG1"})

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(errorMessage(s.T(), rr)).To(Equal(domain.ErrWrongConfirmationCode.Message))

	rr = s.api.request(http.MethodPut, activityPath(activity, "check-in"), s.participantToken, map[string]any{"confirmationCode": activity.ConfirmationCode})

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := decode[response.SubscriptionResponse](s.T(), rr)

	Expect(data.Status).To(Equal("Participante"))
	Expect(data.ConfirmedAt).ToNot(BeNil())

	rr = s.api.request(http.MethodPut, activityPath(activity, "check-in"), s.participantToken, map[string]any{"confirmationCode": activity.ConfirmationCode})

	Expect(rr.Code).To(Equal(http.StatusConflict))
	Expect(errorMessage(s.T(), rr)).To(Equal(domain.ErrAlreadyCheckedIn.Message))

	rr = s.api.request(http.MethodGet, "/user", s.participantToken, nil)

	Expect(decode[response.UserResponse](s.T(), rr).XP).To(Equal(domain.XPForCheckIn))
}

func (s *SubscriptionHandlerSuite) TestCheckInRejections() {
	activity := s.api.createActivity(s.creator.ID, map[string]any{"Private": true})

	rr := s.api.request(http.MethodPut, activityPath(activity, "check-in"), s.participantToken, map[string]any{})

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(errorMessage(s.T(), rr)).To(Equal(domain.ErrConfirmationCodeRequired.Message))

	rr = s.api.request(http.MethodPut, activityPath(activity, "check-in"), s.participantToken, map[string]any{"confirmationCode": activity.ConfirmationCode})

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(errorMessage(s.T(), rr)).To(Equal(domain.ErrNotSubscribed.Message))

	s.api.request(http.MethodPost, activityPath(activity, "subscribe"), s.participantToken, nil)

	rr = s.api.request(http.MethodPut, activityPath(activity, "check-in"), s.participantToken, map[string]any{"confirmationCode": activity.ConfirmationCode})

	Expect(rr.Code).To(Equal(http.StatusForbidden))
	Expect(errorMessage(s.T(), rr)).To(Equal(domain.ErrSubscriptionNotApproved.Message))
}

func (s *SubscriptionHandlerSuite) TestUnsubscribe() {
	activity := s.api.createActivity(s.creator.ID)

	rr := s.api.request(http.MethodDelete, activityPath(activity, "unsubscribe"), s.participantToken, nil)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	s.api.request(http.MethodPost, activityPath(activity, "subscribe"), s.participantToken, nil)

	rr = s.api.request(http.MethodDelete, activityPath(activity, "unsubscribe"), s.participantToken, nil)

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decode[response.MessageResponse](s.T(), rr).Message).To(Equal("Inscrição cancelada com sucesso"))

	s.api.request(http.MethodPost, activityPath(activity, "subscribe"), s.participantToken, nil)
	s.api.request(http.MethodPut, activityPath(activity, "check-in"), s.participantToken, map[string]any{"confirmationCode": activity.ConfirmationCode})

	rr = s.api.request(http.MethodDelete, activityPath(activity, "unsubscribe"), s.participantToken, nil)

	Expect(rr.Code).To(Equal(http.StatusConflict))
}

func (s *SubscriptionHandlerSuite) TestDeniedRequestStaysDenied() {
	activity := s.api.createActivity(s.creator.ID, map[string]any{"Private": true})

	s.api.request(http.MethodPost, activityPath(activity, "subscribe"), s.participantToken, nil)

	rr := s.api.request(http.MethodPut, activityPath(activity, "approve"), s.creatorToken, map[string]any{
		"participantId": s.participant.UUID.String(),
		"approved":      false,
	})

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decode[response.SubscriptionResponse](s.T(), rr).Status).To(Equal("Negado"))

	rr = s.api.request(http.MethodDelete, activityPath(activity, "unsubscribe"), s.participantToken, nil)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	rr = s.api.request(http.MethodPost, activityPath(activity, "subscribe"), s.participantToken, nil)

	Expect(rr.Code).To(Equal(http.StatusConflict))
}
