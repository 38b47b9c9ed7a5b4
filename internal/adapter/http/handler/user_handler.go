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

const deactivatedMessage = "Conta desativada com sucesso"

type UserHandler struct {
	svc port.UserService
}

func NewUserHandler(svc port.UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

func (u *UserHandler) GetSelf(c *gin.Context) {
	ctx, span := startSpan(c, "user.GetSelf")
	defer span.End()

	user, err := u.svc.GetProfile(ctx, middleware.CurrentUserID(c))

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserResponse(user))
}

func (u *UserHandler) GetPreferences(c *gin.Context) {
	ctx, span := startSpan(c, "user.GetPreferences")
	defer span.End()

	types, err := u.svc.GetPreferences(ctx, middleware.CurrentUserID(c))

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewActivityTypesResponse(types))
}

func (u *UserHandler) DefinePreferences(c *gin.Context) {
	ctx, span := startSpan(c, "user.DefinePreferences")
	defer span.End()

	params, err := util.ParamsToMap[request.PreferencesRequest](c)

	if err != nil {
		SendBadRequestError(c, domain.ErrInvalidRequest.Message)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	types, err := u.svc.UpdatePreferences(ctx, middleware.CurrentUserID(c), params.TypeIDs)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewActivityTypesResponse(types))
}

func (u *UserHandler) UpdateAvatar(c *gin.Context) {
	ctx, span := startSpan(c, "user.UpdateAvatar")
	defer span.End()

	upload, file, err := readUpload(c, "avatar")

	if err != nil {
		SendBadRequestError(c, domain.ErrInvalidRequest.Message)
		return
	}

	if upload == nil {
		SendDomainError(c, domain.ErrImageRequired)
		return
	}

	defer file.Close()

	user, err := u.svc.UpdateAvatar(ctx, middleware.CurrentUserID(c), *upload)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserResponse(user))
}

func (u *UserHandler) UpdateProfile(c *gin.Context) {
	ctx, span := startSpan(c, "user.UpdateProfile")
	defer span.End()

	params, err := util.ParamsToMap[request.UpdateProfileRequest](c)

	if err != nil {
		SendBadRequestError(c, domain.ErrInvalidRequest.Message)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	user, err := u.svc.UpdateProfile(ctx, middleware.CurrentUserID(c), &params)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewUserResponse(user))
}

func (u *UserHandler) Deactivate(c *gin.Context) {
	ctx, span := startSpan(c, "user.Deactivate")
	defer span.End()

	if err := u.svc.Deactivate(ctx, middleware.CurrentUserID(c)); err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendMessage(c, http.StatusOK, deactivatedMessage)
}

func (u *UserHandler) GetAchievements(c *gin.Context) {
	ctx, span := startSpan(c, "user.GetAchievements")
	defer span.End()

	achievements, err := u.svc.GetAchievements(ctx, middleware.CurrentUserID(c))

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	data := make([]response.AchievementResponse, 0, len(achievements))

	for _, achievement := range achievements {
		data = append(data, response.NewAchievementResponse(achievement))
	}

	SendSuccess(c, http.StatusOK, data)
}
