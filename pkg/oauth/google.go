package oauth

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type Google struct {
	conf *oauth2.Config
}

func NewGoogle(clientID, clientSecret, callbackURL string) *Google {
	return &Google{conf: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  callbackURL,
		Scopes:       []string{"profile", "email"},
		Endpoint:     google.Endpoint,
	}}
}

func (g *Google) Name() string { return "google" }

func (g *Google) AuthCodeURL(state string) string {
	return g.conf.AuthCodeURL(state)
}

func (g *Google) ExchangeCode(ctx context.Context, code string) (*Profile, error) {
	tok, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	var info struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := fetchJSON(ctx, g.conf, tok, googleUserInfoURL, &info); err != nil {
		return nil, err
	}
	if info.ID == "" || info.Email == "" {
		return nil, ErrIncompleteProfile
	}
	return &Profile{ExternalID: info.ID, Name: info.Name, Email: info.Email}, nil
}

var _ Provider = (*Google)(nil)
