package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ErrNoToken is returned when the token endpoint answers without a token.
var ErrNoToken = errors.New("token endpoint returned no token")

// TokenResponse is the reply of the JWT authentication plugin.
type TokenResponse struct {
	Token           string `json:"token"`
	UserEmail       string `json:"user_email,omitempty"`
	UserNicename    string `json:"user_nicename,omitempty"`
	UserDisplayName string `json:"user_display_name,omitempty"`
}

// FetchJWTToken exchanges a username and password for a bearer token
// through the JWT Authentication plugin endpoint.
func (c *Client) FetchJWTToken(ctx context.Context, username, password string) (*TokenResponse, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}

	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		url:         c.baseURL + restPrefix + "/jwt-auth/v1/token",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	})
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	var tok TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}
	if tok.Token == "" {
		return nil, ErrNoToken
	}
	return &tok, nil
}
