package trello

import (
	"net/http"
	"time"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// clientConfig holds the configuration for a Client.
type clientConfig struct {
	baseURL     string
	accessToken string
	apiSecret   string
	timeout     time.Duration
	httpClient  *http.Client
}

// defaultConfig returns the default client configuration.
func defaultConfig() *clientConfig {
	return &clientConfig{
		baseURL: DefaultBaseURL,
	}
}

// WithAccessToken sets the user token sent with every request.
func WithAccessToken(token string) ClientOption {
	return func(c *clientConfig) {
		c.accessToken = token
	}
}

// WithAPISecret sets the application secret.
func WithAPISecret(secret string) ClientOption {
	return func(c *clientConfig) {
		c.apiSecret = secret
	}
}

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout. Ignored when WithHTTPClient is used.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithHTTPClient supplies the HTTP client used for requests.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = h
	}
}

// Authorization scopes.
const (
	ScopeRead    = "read"
	ScopeWrite   = "write"
	ScopeAccount = "account"
)

// Token expirations.
const (
	Expiration1Hour  = "1hour"
	Expiration1Day   = "1day"
	Expiration30Days = "30days"
	ExpirationNever  = "never"
)

// Authorization callback methods.
const (
	CallbackPostMessage = "postMessage"
	CallbackFragment    = "fragment"
)

// AuthorizationOption configures an AuthorizationURL call.
type AuthorizationOption func(*authorizationOptions)

// authorizationOptions holds options for building an authorization URL.
type authorizationOptions struct {
	scopes         []string
	expiration     string
	callbackMethod string
}

// defaultAuthorizationOptions returns read scope, 30 day expiration and fragment callback.
func defaultAuthorizationOptions() *authorizationOptions {
	return &authorizationOptions{
		scopes:         []string{ScopeRead},
		expiration:     Expiration30Days,
		callbackMethod: CallbackFragment,
	}
}

// WithScopes sets the requested scopes.
func WithScopes(scopes ...string) AuthorizationOption {
	return func(o *authorizationOptions) {
		o.scopes = scopes
	}
}

// WithExpiration sets how long the granted token stays valid.
func WithExpiration(expiration string) AuthorizationOption {
	return func(o *authorizationOptions) {
		o.expiration = expiration
	}
}

// WithCallbackMethod sets how the token is handed back to the application.
func WithCallbackMethod(method string) AuthorizationOption {
	return func(o *authorizationOptions) {
		o.callbackMethod = method
	}
}

// CopyOption configures a Board or Card copy.
type CopyOption func(*copyOptions)

// copyOptions holds options for copying a board or card.
type copyOptions struct {
	name       string
	listID     string
	keepFields []string
}

// WithCopyName sets the name of the copy. Defaults to "<name> Copy".
func WithCopyName(name string) CopyOption {
	return func(o *copyOptions) {
		o.name = name
	}
}

// WithTargetList puts a copied card on another list. Ignored for boards.
func WithTargetList(listID string) CopyOption {
	return func(o *copyOptions) {
		o.listID = listID
	}
}

// WithKeepFromSource limits the properties copied from the source.
func WithKeepFromSource(fields ...string) CopyOption {
	return func(o *copyOptions) {
		o.keepFields = fields
	}
}

func applyCopyOptions(opts []CopyOption) *copyOptions {
	o := &copyOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
