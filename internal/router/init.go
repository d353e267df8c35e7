package router

import (
	"time"

	"github.com/communitydesk/bulletin-board/internal/application"
	"github.com/communitydesk/bulletin-board/internal/container"
	pginfra "github.com/communitydesk/bulletin-board/internal/infrastructure/postgres"
	handlers "github.com/communitydesk/bulletin-board/internal/interface/http"
	"github.com/communitydesk/bulletin-board/internal/router/modules"
	"github.com/communitydesk/bulletin-board/pkg/oauth"
)

// oauthStateTTL bounds how long a login redirect may sit before the
// callback arrives.
const oauthStateTTL = 10 * time.Minute

func buildIdentityService() *application.IdentityService {
	users := pginfra.NewUserRepository(container.GetPGPool())
	return application.NewIdentityService(
		users,
		container.GetSessions(),
		container.GetLogger(),
		container.GetConfig().BcryptCost,
		container.GetRabbitPub(),
	)
}

func buildProviders() map[string]oauth.Provider {
	cfg := container.GetConfig()
	providers := map[string]oauth.Provider{}
	if cfg.GoogleClientID != "" {
		providers["google"] = oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
	}
	if cfg.GitHubClientID != "" {
		providers["github"] = oauth.NewGitHub(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.GitHubCallbackURL)
	}
	if cfg.DiscordClientID != "" {
		providers["discord"] = oauth.NewDiscord(cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.DiscordCallbackURL)
	}
	return providers
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	identity := buildIdentityService()

	authHandler := handlers.NewAuthHandler(identity, container.GetLogger(), container.GetCookies(), cfg.SessionTTL)
	r.Add(modules.NewAuthModule(authHandler))

	posts := pginfra.NewPostRepository(container.GetPGPool())
	postSvc := application.NewPostService(posts, container.GetLogger())
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, container.GetLogger())))

	state := oauth.NewStateSigner(cfg.OAuthStateSecret, oauthStateTTL)
	oauthHandler := handlers.NewOAuthHandler(
		identity,
		buildProviders(),
		state,
		container.GetLogger(),
		container.GetCookies(),
		cfg.SessionTTL,
		cfg.LoginRedirectURL,
	)
	r.Add(modules.NewOAuthModule(oauthHandler))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
