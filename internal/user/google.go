package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type GoogleClient struct {
	config *oauth2.Config
}

func NewGoogleClient() *GoogleClient {
	return &GoogleClient{
		config: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Exchange trades the authorization code for tokens and resolves the
// Google profile behind it.
func (c *GoogleClient) Exchange(ctx context.Context, code string) (*GoogleUserInfo, *string, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao trocar código de autorização: %w", err)
	}

	client := c.config.Client(ctx, token)
	resp, err := client.Get(userInfoEndpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao buscar perfil do Google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("perfil do Google retornou status %d", resp.StatusCode)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, nil, fmt.Errorf("falha ao decodificar perfil do Google: %w", err)
	}

	var refreshToken *string
	if token.RefreshToken != "" {
		refreshToken = &token.RefreshToken
	}
	return &info, refreshToken, nil
}
