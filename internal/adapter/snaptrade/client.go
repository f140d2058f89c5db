package snaptrade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nestfolio/nestfolio-backend/internal/domain"
)

const (
	defaultBaseURL = "https://api.snaptrade.com/api/v1"
	defaultBroker  = "ALPACA"

	// Default prefix for the deterministic per-user secret. Guessable by
	// construction; kept only as a demo stand-in and surfaced as a
	// configuration point rather than silently replaced.
	defaultSecretPrefix = "secret-"

	headerClientID = "SNAPTRADE-CLIENT-ID"
	headerAPIKey   = "SNAPTRADE-API-KEY"
)

// Config carries the SnapTrade credentials and tunables.
type Config struct {
	ClientID     string
	APIKey       string
	BaseURL      string // defaults to the production API
	Broker       string // broker slug passed to the login call
	SecretPrefix string // per-user secret derivation prefix
}

// Client talks to the SnapTrade HTTP API. It implements
// domain.LinkingService. Every call sends the two credential headers;
// non-2xx responses surface as domain.ErrExternalService and are never
// retried.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a SnapTrade client with the given configuration.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Broker == "" {
		cfg.Broker = defaultBroker
	}
	if cfg.SecretPrefix == "" {
		cfg.SecretPrefix = defaultSecretPrefix
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// accountPayload mirrors the accounts list response.
type accountPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// holdingPayload mirrors a single entry of the holdings list response.
type holdingPayload struct {
	Symbol         string  `json:"symbol"`
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	Price          float64 `json:"price"`
	MarketValue    float64 `json:"market_value"`
	GainAmount     float64 `json:"gain_amount"`
	GainPercentage float64 `json:"gain_percentage"`
}

// registerUserRequest is the body of the registerUser call.
type registerUserRequest struct {
	UserID     string `json:"userId"`
	UserSecret string `json:"userSecret"`
}

// loginRequest is the body of the login call.
type loginRequest struct {
	UserID            string `json:"userId"`
	UserSecret        string `json:"userSecret"`
	Broker            string `json:"broker"`
	ImmediateRedirect bool   `json:"immediateRedirect"`
	RedirectURI       string `json:"redirectUri"`
}

// loginResponse is the body of the login response.
type loginResponse struct {
	RedirectURI string `json:"redirectUri"`
}

// ListAccounts lists the user's linked brokerage accounts.
func (c *Client) ListAccounts(ctx context.Context, userID string) ([]domain.BrokerageAccount, error) {
	var payload []accountPayload
	path := "/accounts?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accounts := make([]domain.BrokerageAccount, 0, len(payload))
	for _, a := range payload {
		accounts = append(accounts, domain.BrokerageAccount{ID: a.ID, Name: a.Name})
	}
	return accounts, nil
}

// ListHoldings lists the holdings of a single brokerage account. Amounts
// arrive as JSON floats and are converted to decimals at this boundary;
// a holding without a description falls back to its symbol as the name.
func (c *Client) ListHoldings(ctx context.Context, accountID string) ([]domain.Holding, error) {
	var payload []holdingPayload
	path := "/accounts/" + url.PathEscape(accountID) + "/holdings"
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch holdings for account %s: %w", accountID, err)
	}

	holdings := make([]domain.Holding, 0, len(payload))
	for _, h := range payload {
		name := h.Description
		if name == "" {
			name = h.Symbol
		}
		holdings = append(holdings, domain.Holding{
			Symbol:           h.Symbol,
			Name:             name,
			Quantity:         decimal.NewFromFloat(h.Quantity),
			PricePerShare:    decimal.NewFromFloat(h.Price),
			TotalValue:       decimal.NewFromFloat(h.MarketValue),
			GainLoss:         decimal.NewFromFloat(h.GainAmount),
			ChangePercentage: decimal.NewFromFloat(h.GainPercentage),
			AccountID:        accountID,
		})
	}
	return holdings, nil
}

// RegisterUser registers (or re-registers) the user with SnapTrade using
// the deterministic per-user secret.
func (c *Client) RegisterUser(ctx context.Context, userID string) error {
	body := registerUserRequest{
		UserID:     userID,
		UserSecret: c.userSecret(userID),
	}
	if err := c.do(ctx, http.MethodPost, "/snapTrade/registerUser", body, nil); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginRedirect requests a one-time redirect URL scoped to the configured
// broker, returning to redirectURI when the handshake completes.
func (c *Client) LoginRedirect(ctx context.Context, userID, redirectURI string) (string, error) {
	body := loginRequest{
		UserID:            userID,
		UserSecret:        c.userSecret(userID),
		Broker:            c.cfg.Broker,
		ImmediateRedirect: false,
		RedirectURI:       redirectURI,
	}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/snapTrade/login", body, &resp); err != nil {
		return "", fmt.Errorf("failed to generate redirect URI: %w", err)
	}
	if resp.RedirectURI == "" {
		return "", domain.ErrNoRedirectURI
	}
	return resp.RedirectURI, nil
}

// userSecret derives the per-user secret from the configured prefix.
func (c *Client) userSecret(userID string) string {
	return c.cfg.SecretPrefix + userID
}

// do performs one HTTP round trip with the credential headers, optionally
// sending body as JSON and decoding the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerClientID, c.cfg.ClientID)
	req.Header.Set(headerAPIKey, c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: %s", domain.ErrExternalService, method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
