package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/guidewell/guidewell-server/internal/config"
)

// Client handles integration with the bank-linking provider
type Client struct {
	baseURL  string
	clientID string
	secret   string
	client   *http.Client
	log      *logrus.Logger
}

// NewClient initializes a new linking-provider client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL:  cfg.PlaidBaseURL,
		clientID: cfg.PlaidClientID,
		secret:   cfg.PlaidSecret,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

type linkTokenRequest struct {
	ClientID     string   `json:"client_id"`
	Secret       string   `json:"secret"`
	ClientName   string   `json:"client_name"`
	Language     string   `json:"language"`
	CountryCodes []string `json:"country_codes"`
	Products     []string `json:"products"`
	User         struct {
		ClientUserID string `json:"client_user_id"`
	} `json:"user"`
}

type linkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

// CreateLinkToken requests a short-lived token used to open the link widget.
func (c *Client) CreateLinkToken(ctx context.Context, userID string) (string, error) {
	req := linkTokenRequest{
		ClientID:     c.clientID,
		Secret:       c.secret,
		ClientName:   "Guidewell",
		Language:     "en",
		CountryCodes: []string{"US"},
		Products:     []string{"auth", "transactions", "liabilities"},
	}
	req.User.ClientUserID = userID

	var resp linkTokenResponse
	if err := c.post(ctx, "/link/token/create", req, &resp); err != nil {
		return "", err
	}
	if resp.LinkToken == "" {
		return "", fmt.Errorf("provider returned empty link token")
	}
	return resp.LinkToken, nil
}

type exchangeRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	PublicToken string `json:"public_token"`
}

// ExchangeResult is the outcome of trading a public token for credentials.
type ExchangeResult struct {
	ItemID      string `json:"item_id"`
	AccessToken string `json:"access_token"`
}

// ExchangePublicToken trades the widget's public token for an item id and a
// long-lived access token.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (*ExchangeResult, error) {
	req := exchangeRequest{ClientID: c.clientID, Secret: c.secret, PublicToken: publicToken}

	var resp ExchangeResult
	if err := c.post(ctx, "/item/public_token/exchange", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("provider returned empty access token")
	}
	return &resp, nil
}

type accessTokenRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
}

type accountsResponse struct {
	Accounts []RawAccount `json:"accounts"`
}

// GetAccounts fetches the base account list for a linked item.
func (c *Client) GetAccounts(ctx context.Context, accessToken string) ([]RawAccount, error) {
	req := accessTokenRequest{ClientID: c.clientID, Secret: c.secret, AccessToken: accessToken}

	var resp accountsResponse
	if err := c.post(ctx, "/accounts/get", req, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

type liabilitiesResponse struct {
	Liabilities Liabilities `json:"liabilities"`
}

// GetLiabilities fetches credit and student loan detail records for a linked
// item.
func (c *Client) GetLiabilities(ctx context.Context, accessToken string) (Liabilities, error) {
	req := accessTokenRequest{ClientID: c.clientID, Secret: c.secret, AccessToken: accessToken}

	var resp liabilitiesResponse
	if err := c.post(ctx, "/liabilities/get", req, &resp); err != nil {
		return Liabilities{}, err
	}
	return resp.Liabilities, nil
}

// FetchAccountData runs the accounts and liabilities fetches concurrently.
// A liabilities failure degrades to empty record sets with a warning; an
// accounts failure fails the whole fetch.
func (c *Client) FetchAccountData(ctx context.Context, accessToken string) (*AccountData, error) {
	var (
		wg       sync.WaitGroup
		accounts []RawAccount
		acctErr  error
		liab     Liabilities
		liabErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		accounts, acctErr = c.GetAccounts(ctx, accessToken)
	}()
	go func() {
		defer wg.Done()
		liab, liabErr = c.GetLiabilities(ctx, accessToken)
	}()
	wg.Wait()

	if acctErr != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", acctErr)
	}
	if liabErr != nil {
		c.log.Warnf("Liabilities fetch failed, proceeding without liability detail: %v", liabErr)
		liab = Liabilities{}
	}

	return &AccountData{Accounts: accounts, Liabilities: liab}, nil
}

// post sends a JSON request to the provider and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from %s: %s", resp.StatusCode, path, raw)
	}

	c.log.Debugf("Provider response from %s: %s", path, raw)

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
