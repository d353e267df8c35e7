package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Profile is the claim set a provider yields after the code exchange.
type Profile struct {
	ExternalID string
	Name       string
	Email      string
}

// Provider abstracts one OAuth vendor: an authorization redirect out, a
// profile back. Every vendor integration reduces to this shape so the
// upsert-and-redirect flow exists exactly once.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	// ExchangeCode trades the callback code for the vendor's profile claims.
	ExchangeCode(ctx context.Context, code string) (*Profile, error)
}

var ErrIncompleteProfile = errors.New("provider returned an incomplete profile")

// fetchJSON performs an authenticated GET against the vendor's profile
// endpoint and decodes the body into dst.
func fetchJSON(ctx context.Context, conf *oauth2.Config, tok *oauth2.Token, url string, dst any) error {
	client := conf.Client(ctx, tok)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("profile endpoint returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
