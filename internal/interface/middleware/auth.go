package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/communitydesk/bulletin-board/internal/application"
	"github.com/communitydesk/bulletin-board/pkg/helpers"
	"github.com/communitydesk/bulletin-board/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserNameKey  = "userName"
	CtxUserEmailKey = "userEmail"
)

// Auth is the session gate: it resolves the session cookie through the
// store and attaches the identity to the Gin context, or aborts before
// any handler runs. Protected handlers therefore never see an anonymous
// request. A store outage is a 500, not a 401: the caller's session may
// be perfectly valid and must not be dropped over an infra fault.
func Auth(sessions application.SessionStore, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookie)
		if err != nil || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		id, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, application.ErrSessionNotFound) {
				resp := response.Error[any](c, http.StatusUnauthorized, "session expired or not found", nil)
				c.AbortWithStatusJSON(resp.Status, resp)
				return
			}
			helpers.LogError(logger, "session lookup failed", err, nil)
			resp := response.Error[any](c, http.StatusInternalServerError, "session store unavailable", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		c.Set(CtxUserIDKey, id.ID)
		c.Set(CtxUserNameKey, id.Name)
		c.Set(CtxUserEmailKey, id.Email)
		c.Next()
	}
}
