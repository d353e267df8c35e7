package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/communitydesk/bulletin-board/internal/application"
	"github.com/communitydesk/bulletin-board/internal/domain/repository"
	"github.com/communitydesk/bulletin-board/pkg/helpers"
	"github.com/communitydesk/bulletin-board/pkg/oauth"
	"github.com/communitydesk/bulletin-board/pkg/response"
)

// OAuthHandler runs the provider login flow: redirect out with a signed
// state, and on callback exchange the code, upsert the identity, and
// establish a session. One flow for every provider.
type OAuthHandler struct {
	Identity    *application.IdentityService
	Providers   map[string]oauth.Provider
	State       *oauth.StateSigner
	Logger      *logrus.Logger
	Cookies     *helpers.Manager
	SessionTTL  time.Duration
	RedirectURL string
}

func NewOAuthHandler(identity *application.IdentityService, providers map[string]oauth.Provider, state *oauth.StateSigner, logger *logrus.Logger, cookies *helpers.Manager, sessionTTL time.Duration, redirectURL string) *OAuthHandler {
	return &OAuthHandler{
		Identity:    identity,
		Providers:   providers,
		State:       state,
		Logger:      logger,
		Cookies:     cookies,
		SessionTTL:  sessionTTL,
		RedirectURL: redirectURL,
	}
}

// Begin GET /api/auth/:provider
func (h *OAuthHandler) Begin(c *gin.Context) {
	name := c.Param("provider")
	p, ok := h.Providers[name]
	if !ok {
		resp := response.Error[any](c, http.StatusNotFound, "unknown provider", nil)
		c.JSON(resp.Status, resp)
		return
	}
	state, err := h.State.Sign(name)
	if err != nil {
		helpers.LogError(h.Logger, "state sign failed", err, logrus.Fields{"provider": name})
		resp := response.Error[any](c, http.StatusInternalServerError, "could not start login", nil)
		c.JSON(resp.Status, resp)
		return
	}
	c.Redirect(http.StatusFound, p.AuthCodeURL(state))
}

// Callback GET /api/auth/:provider/callback. The exchange runs under the
// request context, so a disconnected caller cancels the provider round
// trip.
func (h *OAuthHandler) Callback(c *gin.Context) {
	name := c.Param("provider")
	p, ok := h.Providers[name]
	if !ok {
		resp := response.Error[any](c, http.StatusNotFound, "unknown provider", nil)
		c.JSON(resp.Status, resp)
		return
	}

	if err := h.State.Verify(c.Query("state"), name); err != nil {
		resp := response.Error[any](c, http.StatusUnauthorized, "invalid state", nil)
		c.JSON(resp.Status, resp)
		return
	}

	code := c.Query("code")
	if code == "" {
		resp := response.Error[any](c, http.StatusUnauthorized, "authorization denied", nil)
		c.JSON(resp.Status, resp)
		return
	}

	profile, err := p.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		helpers.LogError(h.Logger, "code exchange failed", err, logrus.Fields{"provider": name})
		resp := response.Error[any](c, http.StatusUnauthorized, "login failed", nil)
		c.JSON(resp.Status, resp)
		return
	}

	// Provider subjects are only unique per vendor; prefixing keeps ids
	// from colliding across providers.
	externalID := name + "-" + profile.ExternalID
	u, err := h.Identity.UpsertIdentity(c.Request.Context(), externalID, profile.Name, profile.Email)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			resp := response.Error[any](c, http.StatusConflict, "email already registered with another login method", nil)
			c.JSON(resp.Status, resp)
			return
		}
		helpers.LogError(h.Logger, "identity upsert failed", err, logrus.Fields{"provider": name})
		resp := response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		c.JSON(resp.Status, resp)
		return
	}

	token, err := h.Identity.EstablishSession(c.Request.Context(), u)
	if err != nil {
		helpers.LogError(h.Logger, "session create failed", err, logrus.Fields{"user_id": u.ID})
		resp := response.Error[any](c, http.StatusInternalServerError, "session unavailable", nil)
		c.JSON(resp.Status, resp)
		return
	}
	h.Cookies.SetSession(c, token, h.SessionTTL)

	c.Redirect(http.StatusFound, h.RedirectURL)
}
