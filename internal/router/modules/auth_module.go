package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/communitydesk/bulletin-board/internal/container"
	handlers "github.com/communitydesk/bulletin-board/internal/interface/http"
	"github.com/communitydesk/bulletin-board/internal/interface/middleware"
)

// AuthModule wires local-account routes.
// Public: POST /api/register, POST /api/login, GET /api/logout

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil) // 5 req/min per IP
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)          // 10 req/min per IP

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.GET("/logout", m.Handler.Logout)
}
