package tms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// Client is a session-holding client for the TMS admin backend. All requests
// ride on the cookie jar established at login plus the route token the login
// response embeds.
type Client struct {
	baseURL  string
	username string
	password string
	userID   int

	token        string
	client       *http.Client
	apiCallCount int64
	apiCallMutex sync.Mutex
}

func NewClient(baseURL, username, password string, userID int) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		userID:   userID,
		client: &http.Client{
			Timeout: 15 * time.Second,
			Jar:     jar,
		},
	}
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// Login posts the credential form and captures the session token for
// subsequent routes. The backend redirects to a dashboard URL carrying
// token=<hex>; that value authorizes every other route.
func (c *Client) Login(ctx context.Context) error {
	log.Info().Msg("Logging in to TMS")

	form := url.Values{
		"username": {c.username},
		"password": {c.password},
	}
	loginURL := fmt.Sprintf("%s/index.php?route=common/login", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, "POST", loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.IncrementAPICall()

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("login failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read login response: %w", err)
	}

	token, err := extractToken(string(body))
	if err != nil {
		return err
	}
	c.token = token

	log.Info().Msg("Login successful")
	return nil
}

// extractToken pulls the session token out of the login response body.
func extractToken(body string) (string, error) {
	_, after, found := strings.Cut(body, "token=")
	if !found {
		return "", fmt.Errorf("login response carries no session token")
	}
	token := after
	for _, stop := range []string{`"`, `'`, "&", "\n"} {
		if head, _, ok := strings.Cut(token, stop); ok {
			token = head
		}
	}
	if token == "" {
		return "", fmt.Errorf("login response carries an empty session token")
	}
	return token, nil
}

// FetchAllOrderIDs loads the order listing filtered to the internal operator
// and returns the order ids in document order.
func (c *Client) FetchAllOrderIDs(ctx context.Context) ([]string, error) {
	params := url.Values{
		"route":                    {"sale/order"},
		"token":                    {c.token},
		"filter_user_id":           {strconv.Itoa(c.userID)},
		"filter_created_priority":  {"0"},
		"filter_payment_priority":  {"0"},
		"filter_verified_priority": {"0"},
	}

	doc, err := c.fetchDocument(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order listing: %w", err)
	}

	ids := ParseOrderIDs(doc)
	log.Debug().Int("count", len(ids)).Msg("Parsed order ids from listing")
	return ids, nil
}

// FetchOrder retrieves one order's raw payload and validates its shape.
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*OrderPayload, error) {
	log.Debug().Str("order_id", orderID).Msg("Fetching order")

	params := url.Values{
		"route":    {"sale/order_new/get"},
		"order_id": {orderID},
		"token":    {c.token},
	}
	reqURL := fmt.Sprintf("%s/index.php?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.IncrementAPICall()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", orderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("order %s request failed with status %d: %s", orderID, resp.StatusCode, string(body))
	}

	var envelope orderEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode order %s: %w", orderID, err)
	}
	if envelope.Data.Order == nil {
		return nil, fmt.Errorf("order %s response carries no order payload", orderID)
	}
	if err := envelope.Data.Order.Validate(); err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}

	return envelope.Data.Order, nil
}

// FetchPurchase retrieves the purchase edit page as a parsed document.
func (c *Client) FetchPurchase(ctx context.Context, purchaseID int) (*html.Node, error) {
	log.Debug().Int("purchase_id", purchaseID).Msg("Fetching purchase page")

	params := url.Values{
		"route":       {"sale/purchase/edit"},
		"purchase_id": {strconv.Itoa(purchaseID)},
		"token":       {c.token},
	}

	doc, err := c.fetchDocument(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch purchase %d: %w", purchaseID, err)
	}
	return doc, nil
}

// fetchDocument GETs an index.php route and parses the HTML response.
func (c *Client) fetchDocument(ctx context.Context, params url.Values) (*html.Node, error) {
	reqURL := fmt.Sprintf("%s/index.php?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.IncrementAPICall()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response document: %w", err)
	}
	return doc, nil
}
