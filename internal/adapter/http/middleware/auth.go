package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	. "activityapp/internal/adapter/http/helper"
	"activityapp/internal/core/domain"
	"activityapp/internal/core/port"
	"activityapp/pkg/auth"
	"activityapp/pkg/config"
	ct "activityapp/pkg/context"
)

const (
	UserIDKey      = "x-user-id"
	CurrentUserKey = "current_user"
)

// AuthMiddleware accepts a valid bearer token that belongs to an active account.
func AuthMiddleware(tokens *auth.JWT, users port.UserRepository, logger *config.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))

		if !ok {
			SendUnauthorizedError(c)
			return
		}

		userID, err := tokens.VerifyToken(token)

		if err != nil {
			SendUnauthorizedError(c)
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)

		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				SendUnauthorizedError(c)
				return
			}

			config.LogError(c.Request.Context(), logger, err, "Failed to load authenticated user", zap.Int("user_id", userID))
			SendInternalError(c)
			return
		}

		if !user.IsActive() {
			SendDomainError(c, domain.ErrAccountDeactivated)
			return
		}

		current := GetCurrent(c)
		current.Set(ct.UserIDKey, user.ID)
		current.Set(ct.UserUUIDKey, user.UUID.String())

		c.Set(UserIDKey, user.ID)
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUserID is only meaningful behind AuthMiddleware.
func CurrentUserID(c *gin.Context) int {
	return c.GetInt(UserIDKey)
}
