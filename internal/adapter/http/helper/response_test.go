package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	. "activityapp/internal/adapter/http/validation"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/model/request"
	"activityapp/internal/core/model/response"
)

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, response.ErrorResponse) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	fn(c)

	var body response.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &body)

	return w, body
}

func TestSendDomainError(t *testing.T) {
	cases := map[error]int{
		domain.ErrMissingFields:      http.StatusBadRequest,
		domain.ErrWrongPassword:      http.StatusUnauthorized,
		domain.ErrAccountDeactivated: http.StatusForbidden,
		domain.ErrActivityNotFound:   http.StatusNotFound,
		domain.ErrAlreadySubscribed:  http.StatusConflict,
		fmt.Errorf("wrapped: %w", domain.ErrAlreadyCheckedIn): http.StatusConflict,
	}

	for err, status := range cases {
		w, body := record(func(c *gin.Context) { SendDomainError(c, err) })

		assert.Equal(t, status, w.Code, err.Error())
		assert.Equal(t, domain.KindOf(err) != domain.KindInternal, body.Error != internalErrorMessage)
	}

	w, body := record(func(c *gin.Context) { SendDomainError(c, errors.New("database is locked")) })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, internalErrorMessage, body.Error)
}

func TestSendValidationError(t *testing.T) {
	err := Validator.Struct(request.LoginRequest{})

	w, body := record(func(c *gin.Context) { SendValidationError(c, err) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email é obrigatório", body.Error)
	assert.Len(t, body.Details, 2)

	w, body = record(func(c *gin.Context) { SendValidationError(c, errors.New("bad json")) })

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.ErrInvalidRequest.Message, body.Error)
	assert.Empty(t, body.Details)
}

func TestSendMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendMessage(c, http.StatusCreated, "Usuário cadastrado com sucesso")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Usuário cadastrado com sucesso"}`, w.Body.String())
}
