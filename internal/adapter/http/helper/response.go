package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	. "activityapp/internal/adapter/http/validation"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/response"
)

const (
	internalErrorMessage     = "Erro interno do servidor"
	unauthorizedErrorMessage = "Token de acesso inválido ou ausente"
)

var kindStatus = map[domain.ErrorKind]int{
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusConflict,
}

func SendSuccess(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func SendMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, response.MessageResponse{Message: message})
}

func SendError(c *gin.Context, statusCode int, message string, details ...response.ValidationError) {
	c.AbortWithStatusJSON(statusCode, response.ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// SendValidationError answers 400 with the first translated message as the
// error and every failing field as details.
func SendValidationError(c *gin.Context, err error) {
	details := FormatValidationErrors(err)

	if len(details) == 0 {
		SendError(c, http.StatusBadRequest, domain.ErrInvalidRequest.Message)
		return
	}

	SendError(c, http.StatusBadRequest, details[0].Message, details...)
}

func SendBadRequestError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendUnauthorizedError(c *gin.Context) {
	SendError(c, http.StatusUnauthorized, unauthorizedErrorMessage)
}

func SendInternalError(c *gin.Context) {
	SendError(c, http.StatusInternalServerError, internalErrorMessage)
}

// SendDomainError maps a *domain.Error to its status. Anything else is
// attached to the context for the logging middleware and answered with a 500.
func SendDomainError(c *gin.Context, err error) {
	var domainErr *domain.Error

	if errors.As(err, &domainErr) {
		if status, ok := kindStatus[domainErr.Kind]; ok {
			SendError(c, status, domainErr.Message)
			return
		}
	}

	c.Error(err)
	SendInternalError(c)
}
