package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/communitydesk/bulletin-board/internal/container"
	handlers "github.com/communitydesk/bulletin-board/internal/interface/http"
	"github.com/communitydesk/bulletin-board/internal/interface/middleware"
)

// OAuthModule wires the provider login flow.
// Public: GET /api/auth/:provider, GET /api/auth/:provider/callback

type OAuthModule struct {
	Handler *handlers.OAuthHandler
}

func NewOAuthModule(h *handlers.OAuthHandler) *OAuthModule {
	return &OAuthModule{Handler: h}
}

func (m *OAuthModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/auth/:provider", limiter, m.Handler.Begin)
	rg.GET("/auth/:provider/callback", limiter, m.Handler.Callback)
}
