package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/communitydesk/bulletin-board/internal/container"
	handlers "github.com/communitydesk/bulletin-board/internal/interface/http"
	"github.com/communitydesk/bulletin-board/internal/interface/middleware"
)

// PostModule wires the post routes.
// Public: GET /api/posts — the feed is readable without an account.
// Protected: GET /api/posts/mine, POST /api/posts, DELETE /api/posts/:id

type PostModule struct {
	Handler *handlers.PostHandler
}

func NewPostModule(h *handlers.PostHandler) *PostModule {
	return &PostModule{Handler: h}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	feedLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/posts", feedLimiter, m.Handler.ListAll)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetSessions(), container.GetLogger()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/posts/mine", m.Handler.ListMine)
		auth.POST("/posts", m.Handler.Create)
		auth.DELETE("/posts/:id", m.Handler.Delete)
	}
}
