package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "activityapp/internal/adapter/http/helper"
	"activityapp/internal/adapter/http/middleware"
	. "activityapp/internal/adapter/http/validation"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
	"activityapp/internal/core/model/response"
	"activityapp/internal/core/port"
	"activityapp/internal/core/util"
	. "activityapp/pkg/tracing"
)

const unsubscribedMessage = "Inscrição cancelada com sucesso"

type SubscriptionHandler struct {
	svc port.SubscriptionService
}

func NewSubscriptionHandler(svc port.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		svc: svc,
	}
}

func (s *SubscriptionHandler) Subscribe(c *gin.Context) {
	ctx, span := startSpan(c, "subscription.Subscribe")
	defer span.End()

	participation, err := s.svc.Subscribe(ctx, middleware.CurrentUserID(c), c.Param("id"))

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewSubscriptionResponse(participation, c.Param("id")))
}

func (s *SubscriptionHandler) Approve(c *gin.Context) {
	ctx, span := startSpan(c, "subscription.Approve")
	defer span.End()

	params, err := util.ParamsToMap[request.ApproveRequest](c)

	if err != nil {
		SendBadRequestError(c, domain.ErrInvalidRequest.Message)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	participation, err := s.svc.Approve(ctx, middleware.CurrentUserID(c), c.Param("id"), params.ParticipantID, *params.Approved)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewSubscriptionResponse(participation, c.Param("id")))
}

func (s *SubscriptionHandler) CheckIn(c *gin.Context) {
	ctx, span := startSpan(c, "subscription.CheckIn")
	defer span.End()

	params, err := util.ParamsToMap[request.CheckInRequest](c)

	if err != nil {
		SendDomainError(c, domain.ErrConfirmationCodeRequired)
		return
	}

	participation, err := s.svc.CheckIn(ctx, middleware.CurrentUserID(c), c.Param("id"), params.ConfirmationCode)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewSubscriptionResponse(participation, c.Param("id")))
}

func (s *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	ctx, span := startSpan(c, "subscription.Unsubscribe")
	defer span.End()

	if err := s.svc.Unsubscribe(ctx, middleware.CurrentUserID(c), c.Param("id")); err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendMessage(c, http.StatusOK, unsubscribedMessage)
}
