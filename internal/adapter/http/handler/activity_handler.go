package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	. "activityapp/internal/adapter/http/helper"
	"activityapp/internal/adapter/http/middleware"
	. "activityapp/internal/adapter/http/validation"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
	"activityapp/internal/core/model/response"
	"activityapp/internal/core/port"
	. "activityapp/pkg/tracing"
)

const deletedMessage = "Atividade excluída com sucesso"

type ActivityHandler struct {
	svc port.ActivityService
}

func NewActivityHandler(svc port.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		svc: svc,
	}
}

type pagedLister func(ctx context.Context, userID int, query request.ActivityListQuery) (domain.ActivityPage, error)

type allLister func(ctx context.Context, userID int, query request.ActivityListQuery) ([]domain.Activity, error)

func (a *ActivityHandler) ListTypes(c *gin.Context) {
	ctx, span := startSpan(c, "activity.ListTypes")
	defer span.End()

	types, err := a.svc.ListTypes(ctx)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewActivityTypesResponse(types))
}

func (a *ActivityHandler) List(c *gin.Context) {
	a.listPaged(c, "activity.List", a.svc.List)
}

func (a *ActivityHandler) ListAll(c *gin.Context) {
	a.listAll(c, "activity.ListAll", a.svc.ListAll)
}

func (a *ActivityHandler) ListCreated(c *gin.Context) {
	a.listPaged(c, "activity.ListCreated", a.svc.ListCreatedBy)
}

func (a *ActivityHandler) ListAllCreated(c *gin.Context) {
	a.listAll(c, "activity.ListAllCreated", a.svc.ListAllCreatedBy)
}

func (a *ActivityHandler) ListParticipated(c *gin.Context) {
	a.listPaged(c, "activity.ListParticipated", a.svc.ListParticipatedBy)
}

func (a *ActivityHandler) ListAllParticipated(c *gin.Context) {
	a.listAll(c, "activity.ListAllParticipated", a.svc.ListAllParticipatedBy)
}

func (a *ActivityHandler) listPaged(c *gin.Context, name string, list pagedLister) {
	ctx, span := startSpan(c, name)
	defer span.End()

	var query request.ActivityListQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		SendDomainError(c, domain.ErrInvalidPagination)
		return
	}

	userID := middleware.CurrentUserID(c)

	page, err := list(ctx, userID, query)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	span.SetAttributes(
		attribute.Int("activity.page", page.Page),
		attribute.Int("activity.total", page.Total),
	)

	SendSuccess(c, http.StatusOK, response.NewPaginatedActivitiesResponse(page, userID))
}

func (a *ActivityHandler) listAll(c *gin.Context, name string, list allLister) {
	ctx, span := startSpan(c, name)
	defer span.End()

	var query request.ActivityListQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		SendDomainError(c, domain.ErrInvalidPagination)
		return
	}

	userID := middleware.CurrentUserID(c)

	activities, err := list(ctx, userID, query)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewActivitiesResponse(activities, userID))
}

func (a *ActivityHandler) GetParticipants(c *gin.Context) {
	ctx, span := startSpan(c, "activity.GetParticipants")
	defer span.End()

	participants, err := a.svc.GetParticipants(ctx, c.Param("id"))

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewParticipantsResponse(participants))
}

func (a *ActivityHandler) Create(c *gin.Context) {
	ctx, span := startSpan(c, "activity.Create")
	defer span.End()

	var params request.ActivityRequest

	if err := c.ShouldBind(&params); err != nil {
		SendBadRequestError(c, domain.ErrInvalidRequest.Message)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	upload, file, err := readUpload(c, "image")

	if err != nil {
		SendBadRequestError(c, domain.ErrInvalidRequest.Message)
		return
	}

	if file != nil {
		defer file.Close()
	}

	userID := middleware.CurrentUserID(c)

	activity, err := a.svc.Create(ctx, userID, &params, upload)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	span.SetAttributes(attribute.String("activity.uuid", activity.UUID.String()))

	SendSuccess(c, http.StatusCreated, response.NewActivityResponse(activity, userID))
}

func (a *ActivityHandler) Update(c *gin.Context) {
	ctx, span := startSpan(c, "activity.Update")
	defer span.End()

	var params request.UpdateActivityRequest

	if err := c.ShouldBind(&params); err != nil {
		SendBadRequestError(c, domain.ErrInvalidRequest.Message)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	upload, file, err := readUpload(c, "image")

	if err != nil {
		SendBadRequestError(c, domain.ErrInvalidRequest.Message)
		return
	}

	if file != nil {
		defer file.Close()
	}

	userID := middleware.CurrentUserID(c)

	activity, err := a.svc.Update(ctx, userID, c.Param("id"), &params, upload)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewActivityResponse(activity, userID))
}

func (a *ActivityHandler) Conclude(c *gin.Context) {
	ctx, span := startSpan(c, "activity.Conclude")
	defer span.End()

	userID := middleware.CurrentUserID(c)

	activity, err := a.svc.Conclude(ctx, userID, c.Param("id"))

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewActivityResponse(activity, userID))
}

func (a *ActivityHandler) Delete(c *gin.Context) {
	ctx, span := startSpan(c, "activity.Delete")
	defer span.End()

	if err := a.svc.Delete(ctx, middleware.CurrentUserID(c), c.Param("id")); err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendMessage(c, http.StatusOK, deletedMessage)
}
