package trello

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the API root used when no base URL is configured.
const DefaultBaseURL = "https://trello.com/1"

// REST collection names.
const (
	CollectionActions       = "actions"
	CollectionBoards        = "boards"
	CollectionCards         = "cards"
	CollectionChecklists    = "checklists"
	CollectionLists         = "lists"
	CollectionMembers       = "members"
	CollectionOrganizations = "organizations"
	CollectionWebhooks      = "webhooks"
)

// Client is an HTTP client for the Trello REST API.
//
// A Client holds no per-request state: every call returns its own Response,
// so one Client may be shared between goroutines. The underlying transport is
// created on first use and released by Close.
type Client struct {
	apiKey    string
	apiSecret string
	timeout   time.Duration

	mu          sync.RWMutex
	baseURL     string
	accessToken string
	http        *http.Client
}

// NewClient creates a new Trello API client.
//
// The API key is required. Optional options:
//   - WithAccessToken: sets the user token sent with every request
//   - WithAPISecret: sets the application secret
//   - WithBaseURL: overrides the API root (default: https://trello.com/1)
//   - WithTimeout: sets the HTTP client timeout (default: none)
//   - WithHTTPClient: supplies a preconfigured *http.Client
//
// Example:
//
//	client, err := trello.NewClient(os.Getenv("TRELLO_API_KEY"),
//	    trello.WithAccessToken(os.Getenv("TRELLO_TOKEN")),
//	)
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, newArgumentError("Invalid API key")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Client{
		apiKey:      apiKey,
		apiSecret:   strings.TrimSpace(cfg.apiSecret),
		accessToken: strings.TrimSpace(cfg.accessToken),
		timeout:     cfg.timeout,
		http:        cfg.httpClient,
	}
	c.SetBaseURL(cfg.baseURL)

	return c, nil
}

// APIKey returns the application key.
func (c *Client) APIKey() string {
	return c.apiKey
}

// APISecret returns the application secret, or "" if none was given.
func (c *Client) APISecret() string {
	return c.apiSecret
}

// AccessToken returns the user token, or "" if none is set.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetAccessToken sets the token a user was granted after authorizing the
// application. Surrounding whitespace is trimmed.
func (c *Client) SetAccessToken(token string) *Client {
	c.mu.Lock()
	c.accessToken = strings.TrimSpace(token)
	c.mu.Unlock()
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL overrides the API root. Trailing slashes and spaces are stripped.
func (c *Client) SetBaseURL(baseURL string) *Client {
	c.mu.Lock()
	c.baseURL = strings.TrimRight(baseURL, " /")
	c.mu.Unlock()
	return c
}

// Close releases the idle connections held by the client's transport.
// It is safe to call Close more than once, and on a client that never made a request.
func (c *Client) Close() error {
	c.mu.RLock()
	h := c.http
	c.mu.RUnlock()

	if h != nil {
		h.CloseIdleConnections()
	}
	return nil
}

// transport returns the HTTP client, creating it on first use.
func (c *Client) transport() *http.Client {
	c.mu.RLock()
	h := c.http
	c.mu.RUnlock()
	if h != nil {
		return h
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.http == nil {
		c.http = &http.Client{
			Timeout:   c.timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}
	return c.http
}

// GetBoard fetches the board with the given id.
func (c *Client) GetBoard(ctx context.Context, id string) (*Board, error) {
	return NewBoard(c, nil).SetID(id).Fetch(ctx)
}

// GetCard fetches the card with the given id.
func (c *Client) GetCard(ctx context.Context, id string) (*Card, error) {
	return NewCard(c, nil).SetID(id).Fetch(ctx)
}

// GetAction fetches the action with the given id.
func (c *Client) GetAction(ctx context.Context, id string) (*Action, error) {
	return NewAction(c, nil).SetID(id).Fetch(ctx)
}

// GetOrganization fetches the organization with the given id.
func (c *Client) GetOrganization(ctx context.Context, id string) (*Organization, error) {
	return NewOrganization(c, nil).SetID(id).Fetch(ctx)
}

// GetMember fetches the member with the given id or username. "me" refers to
// the member owning the access token.
func (c *Client) GetMember(ctx context.Context, id string) (*Member, error) {
	return NewMember(c, nil).SetID(id).Fetch(ctx)
}

// GetLane fetches the list with the given id.
func (c *Client) GetLane(ctx context.Context, id string) (*Lane, error) {
	return NewLane(c, nil).SetID(id).Fetch(ctx)
}

// GetChecklist fetches the checklist with the given id.
func (c *Client) GetChecklist(ctx context.Context, id string) (*Checklist, error) {
	return NewChecklist(c, nil).SetID(id).Fetch(ctx)
}
