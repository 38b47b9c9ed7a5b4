package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "activityapp/internal/adapter/http/helper"
	. "activityapp/internal/adapter/http/validation"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
	"activityapp/internal/core/model/response"
	"activityapp/internal/core/port"
	"activityapp/internal/core/util"
	"activityapp/pkg/auth"
	. "activityapp/pkg/tracing"
)

const registeredMessage = "Usuário cadastrado com sucesso"

type AuthHandler struct {
	svc    port.AuthService
	tokens *auth.JWT
}

func NewAuthHandler(svc port.AuthService, tokens *auth.JWT) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		tokens: tokens,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx, span := startSpan(c, "auth.Register")
	defer span.End()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		SendBadRequestError(c, domain.ErrInvalidRequest.Message)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	if _, err := a.svc.Registration(ctx, &params); err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendMessage(c, http.StatusCreated, registeredMessage)
}

func (a *AuthHandler) SignIn(c *gin.Context) {
	ctx, span := startSpan(c, "auth.SignIn")
	defer span.End()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		SendBadRequestError(c, domain.ErrInvalidRequest.Message)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	user, err := a.svc.Authenticate(ctx, &params)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	token, err := a.tokens.CreateToken(user.ID)

	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.SignInResponse{
		Token: token,
		User:  response.NewUserResponse(*user),
	})
}
