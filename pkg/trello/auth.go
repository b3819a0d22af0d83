package trello

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	validExpirations     = []string{Expiration1Hour, Expiration1Day, Expiration30Days, ExpirationNever}
	validScopes          = []string{ScopeRead, ScopeWrite, ScopeAccount}
	validCallbackMethods = []string{CallbackPostMessage, CallbackFragment}
)

// AuthorizationURL returns the URL a user must visit to grant the application
// an access token.
//
// Defaults are read scope, a 30 day expiration and the fragment callback method.
// Values are placed in the URL as given, without escaping.
//
// Example:
//
//	u, err := client.AuthorizationURL("My App", "https://example.com/cb",
//	    trello.WithScopes(trello.ScopeRead, trello.ScopeWrite),
//	    trello.WithExpiration(trello.ExpirationNever),
//	)
func (c *Client) AuthorizationURL(applicationName, returnURL string, opts ...AuthorizationOption) (string, error) {
	o := defaultAuthorizationOptions()
	for _, opt := range opts {
		opt(o)
	}

	if err := checkAllowed("expiration", o.expiration, validExpirations); err != nil {
		return "", err
	}
	for _, scope := range o.scopes {
		if err := checkAllowed("scope", scope, validScopes); err != nil {
			return "", err
		}
	}
	if err := checkAllowed("callback method", o.callbackMethod, validCallbackMethods); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/authorize?callback_method=%s&return_url=%s&scope=%s&expiration=%s&name=%s&key=%s",
		c.BaseURL(),
		o.callbackMethod,
		returnURL,
		strings.Join(o.scopes, ","),
		o.expiration,
		applicationName,
		c.APIKey(),
	), nil
}

// checkAllowed returns an argument error naming the field, the value and the
// allowed set when value is not one of allowed.
func checkAllowed(field, value string, allowed []string) error {
	in := make([]interface{}, len(allowed))
	for i, v := range allowed {
		in[i] = v
	}

	if err := validation.Validate(value, validation.Required, validation.In(in...)); err != nil {
		e := newArgumentError("Invalid %[1]s %[2]s. Valid %[1]ss are [%[3]s]", field, value, strings.Join(allowed, ", "))
		e.Err = err
		return e
	}
	return nil
}
