package oauth

import (
	"context"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubUserURL = "https://api.github.com/user"

type GitHub struct {
	conf *oauth2.Config
}

func NewGitHub(clientID, clientSecret, callbackURL string) *GitHub {
	return &GitHub{conf: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  callbackURL,
		Scopes:       []string{"user:email"},
		Endpoint:     github.Endpoint,
	}}
}

func (g *GitHub) Name() string { return "github" }

func (g *GitHub) AuthCodeURL(state string) string {
	return g.conf.AuthCodeURL(state)
}

func (g *GitHub) ExchangeCode(ctx context.Context, code string) (*Profile, error) {
	tok, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	var info struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := fetchJSON(ctx, g.conf, tok, githubUserURL, &info); err != nil {
		return nil, err
	}
	if info.ID == 0 {
		return nil, ErrIncompleteProfile
	}
	id := strconv.FormatInt(info.ID, 10)
	name := info.Name
	if name == "" {
		name = info.Login
	}
	email := info.Email
	if email == "" {
		// GitHub hides the email for private profiles.
		email = id + "@github.com"
	}
	return &Profile{ExternalID: id, Name: name, Email: email}, nil
}

var _ Provider = (*GitHub)(nil)
