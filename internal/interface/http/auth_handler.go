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
	"github.com/communitydesk/bulletin-board/pkg/response"
	"github.com/communitydesk/bulletin-board/pkg/validation"
)

// AuthHandler serves local-account registration, login, and logout.
type AuthHandler struct {
	Identity   *application.IdentityService
	Logger     *logrus.Logger
	Cookies    *helpers.Manager
	SessionTTL time.Duration
}

func NewAuthHandler(identity *application.IdentityService, logger *logrus.Logger, cookies *helpers.Manager, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{Identity: identity, Logger: logger, Cookies: cookies, SessionTTL: sessionTTL}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, err := h.Identity.RegisterLocal(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			resp := response.Error[any](c, http.StatusConflict, "email already registered", nil)
			c.JSON(resp.Status, resp)
		case errors.Is(err, application.ErrMissingFields):
			resp := response.Error[any](c, http.StatusBadRequest, "missing required fields", nil)
			c.JSON(resp.Status, resp)
		default:
			helpers.LogError(h.Logger, "register failed", err, logrus.Fields{"email": req.Email})
			resp := response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
			c.JSON(resp.Status, resp)
		}
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

	resp := response.Success(c, http.StatusCreated, gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}, "registered", nil)
	c.JSON(resp.Status, resp)
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	id, token, err := h.Identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			c.JSON(resp.Status, resp)
			return
		}
		helpers.LogError(h.Logger, "login failed", err, logrus.Fields{"email": req.Email})
		resp := response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	h.Cookies.SetSession(c, token, h.SessionTTL)

	resp := response.Success(c, http.StatusOK, id, "login successful", nil)
	c.JSON(resp.Status, resp)
}

// Logout GET /api/logout. Destroying an absent session is fine; logout is
// idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(helpers.SessionCookie); err == nil && token != "" {
		if err := h.Identity.Logout(c.Request.Context(), token); err != nil {
			helpers.LogError(h.Logger, "session destroy failed", err, nil)
		}
	}
	h.Cookies.Clear(c)
	resp := response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
	c.JSON(resp.Status, resp)
}
