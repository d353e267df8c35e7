package oauth

import (
	"context"

	"golang.org/x/oauth2"
)

const discordUserURL = "https://discord.com/api/users/@me"

var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/api/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

type Discord struct {
	conf *oauth2.Config
}

func NewDiscord(clientID, clientSecret, callbackURL string) *Discord {
	return &Discord{conf: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  callbackURL,
		Scopes:       []string{"identify", "email"},
		Endpoint:     discordEndpoint,
	}}
}

func (d *Discord) Name() string { return "discord" }

func (d *Discord) AuthCodeURL(state string) string {
	return d.conf.AuthCodeURL(state)
}

func (d *Discord) ExchangeCode(ctx context.Context, code string) (*Profile, error) {
	tok, err := d.conf.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	var info struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := fetchJSON(ctx, d.conf, tok, discordUserURL, &info); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, ErrIncompleteProfile
	}
	email := info.Email
	if email == "" {
		// Discord omits the email without the email scope grant.
		email = info.ID + "@discord.com"
	}
	return &Profile{ExternalID: info.ID, Name: info.Username, Email: email}, nil
}

var _ Provider = (*Discord)(nil)
