package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitydesk/bulletin-board/pkg/oauth"
)

// stubProvider skips the real vendor round trip: any non-empty code yields
// a fixed profile.
type stubProvider struct {
	name    string
	profile oauth.Profile
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) AuthCodeURL(state string) string {
	return "https://provider.example/authorize?state=" + url.QueryEscape(state)
}

func (p *stubProvider) ExchangeCode(_ context.Context, code string) (*oauth.Profile, error) {
	if code != "valid-code" {
		return nil, errors.New("bad code")
	}
	cp := p.profile
	return &cp, nil
}

var _ oauth.Provider = (*stubProvider)(nil)

func newOAuthApp() (*testApp, *oauth.StateSigner) {
	app := newTestApp()
	signer := oauth.NewStateSigner("test-secret", 10*time.Minute)

	h := NewOAuthHandler(
		app.identity,
		map[string]oauth.Provider{
			"github": &stubProvider{
				name:    "github",
				profile: oauth.Profile{ExternalID: "77", Name: "Octo", Email: "octo@x.com"},
			},
		},
		signer,
		quietLogger(),
		newTestCookies(),
		time.Hour,
		"/home",
	)
	app.engine.GET("/api/auth/:provider", h.Begin)
	app.engine.GET("/api/auth/:provider/callback", h.Callback)
	return app, signer
}

func TestOAuthBegin(t *testing.T) {
	app, _ := newOAuthApp()

	t.Run("RedirectsWithSignedState", func(t *testing.T) {
		w := doJSON(app, http.MethodGet, "/api/auth/github", nil)
		require.Equal(t, http.StatusFound, w.Code)

		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "provider.example", loc.Host)
		assert.NotEmpty(t, loc.Query().Get("state"))
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		w := doJSON(app, http.MethodGet, "/api/auth/myspace", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOAuthCallback(t *testing.T) {
	app, signer := newOAuthApp()

	t.Run("EstablishesSessionAndRedirects", func(t *testing.T) {
		state, err := signer.Sign("github")
		require.NoError(t, err)

		w := doJSON(app, http.MethodGet, "/api/auth/github/callback?code=valid-code&state="+url.QueryEscape(state), nil)
		require.Equal(t, http.StatusFound, w.Code, w.Body.String())
		assert.Equal(t, "/home", w.Header().Get("Location"))

		// The cookie from the callback opens protected routes.
		ck := sessionCookie(t, w)
		mine := doJSON(app, http.MethodGet, "/api/posts/mine", nil, ck)
		assert.Equal(t, http.StatusOK, mine.Code)

		// The provider identity landed in the user store under a
		// provider-prefixed id.
		u, err := app.users.GetByID(context.Background(), "github-77")
		require.NoError(t, err)
		assert.Equal(t, "Octo", u.Name)
		assert.Empty(t, u.PasswordHash)
	})

	t.Run("EmailTakenByLocalAccountIsConflictNot500", func(t *testing.T) {
		conflicted, conflictSigner := newOAuthApp()
		registerAs(t, conflicted, "Octo Local", "octo@x.com")

		state, err := conflictSigner.Sign("github")
		require.NoError(t, err)

		w := doJSON(conflicted, http.MethodGet, "/api/auth/github/callback?code=valid-code&state="+url.QueryEscape(state), nil)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "another login method")
	})

	t.Run("ForgedState", func(t *testing.T) {
		w := doJSON(app, http.MethodGet, "/api/auth/github/callback?code=valid-code&state=forged", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("StateForOtherProviderRejected", func(t *testing.T) {
		other := oauth.NewStateSigner("test-secret", 10*time.Minute)
		state, err := other.Sign("google")
		require.NoError(t, err)

		w := doJSON(app, http.MethodGet, "/api/auth/github/callback?code=valid-code&state="+url.QueryEscape(state), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("DeniedAuthorization", func(t *testing.T) {
		state, err := signer.Sign("github")
		require.NoError(t, err)

		w := doJSON(app, http.MethodGet, "/api/auth/github/callback?state="+url.QueryEscape(state), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("BadCode", func(t *testing.T) {
		state, err := signer.Sign("github")
		require.NoError(t, err)

		w := doJSON(app, http.MethodGet, "/api/auth/github/callback?code=stolen&state="+url.QueryEscape(state), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
