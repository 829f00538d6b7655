// Package banklink issues short-lived link tokens for the external account
// aggregator. Token creation is rate limited per user and client address
// because the aggregator bills per issued token.
package banklink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type LinkToken struct {
	Token      string    `json:"linkToken"`
	Expiration time.Time `json:"expiration"`
}

type AggregatorClient interface {
	CreateLinkToken(ctx context.Context, userID string) (*LinkToken, error)
}

// HTTPAggregatorClient talks to the aggregator's REST API.
type HTTPAggregatorClient struct {
	baseURL     string
	clientID    string
	secret      string
	redirectURI string
	httpClient  *http.Client
}

func NewHTTPAggregatorClient(baseURL, clientID, secret, redirectURI string) *HTTPAggregatorClient {
	return &HTTPAggregatorClient{
		baseURL:     baseURL,
		clientID:    clientID,
		secret:      secret,
		redirectURI: redirectURI,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type linkTokenRequest struct {
	ClientID     string   `json:"client_id"`
	Secret       string   `json:"secret"`
	ClientName   string   `json:"client_name"`
	Language     string   `json:"language"`
	CountryCodes []string `json:"country_codes"`
	Products     []string `json:"products"`
	RedirectURI  string   `json:"redirect_uri,omitempty"`
	User         struct {
		ClientUserID string `json:"client_user_id"`
	} `json:"user"`
}

type linkTokenResponse struct {
	LinkToken  string    `json:"link_token"`
	Expiration time.Time `json:"expiration"`
}

func (c *HTTPAggregatorClient) CreateLinkToken(ctx context.Context, userID string) (*LinkToken, error) {
	payload := linkTokenRequest{
		ClientID:     c.clientID,
		Secret:       c.secret,
		ClientName:   "FinFlow",
		Language:     "en",
		CountryCodes: []string{"CA"},
		Products:     []string{"transactions"},
		RedirectURI:  c.redirectURI,
	}
	payload.User.ClientUserID = userID

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/link/token/create", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aggregator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aggregator returned status %d", resp.StatusCode)
	}

	var decoded linkTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding aggregator response: %w", err)
	}
	return &LinkToken{Token: decoded.LinkToken, Expiration: decoded.Expiration}, nil
}
