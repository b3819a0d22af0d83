package trello

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Response is the outcome of one successful API call.
type Response struct {
	StatusCode int
	Header     http.Header
	// Raw is the undecoded response body.
	Raw []byte
	// Duration is the time from sending the request to reading the full body.
	Duration time.Duration

	data any
}

// Data returns the decoded body: a *Record for a JSON object or []any for a JSON array.
func (r *Response) Data() any {
	return r.data
}

// Record returns the decoded body as a record. It fails if the body is an array.
func (r *Response) Record() (*Record, error) {
	rec, ok := r.data.(*Record)
	if !ok {
		return nil, newDecodeError(r.StatusCode, r.Raw, errors.New("response is not a JSON object"))
	}
	return rec, nil
}

// Records returns the decoded body as a list of records. It fails if the body
// is not an array of objects.
func (r *Response) Records() ([]*Record, error) {
	list, ok := r.data.([]any)
	if !ok {
		return nil, newDecodeError(r.StatusCode, r.Raw, errors.New("response is not a JSON array"))
	}

	out := make([]*Record, 0, len(list))
	for i, item := range list {
		rec, ok := item.(*Record)
		if !ok {
			return nil, newDecodeError(r.StatusCode, r.Raw, fmt.Errorf("item %d is not a JSON object", i))
		}
		out = append(out, rec)
	}
	return out, nil
}

// Get issues a GET request for path. A non-empty query is appended to the URL.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, nil)
}

// Post issues a POST request for path with payload sent as a form body.
func (c *Client) Post(ctx context.Context, path string, payload *Record, headers http.Header) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, payload, headers)
}

// Put issues a PUT request for path with payload sent as a form body.
func (c *Client) Put(ctx context.Context, path string, payload *Record, headers http.Header) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, nil, payload, headers)
}

// Delete issues a DELETE request for path.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// endpoint builds the request URL for path with the key and token appended.
func (c *Client) endpoint(path string) string {
	u := fmt.Sprintf("%s/%s?key=%s", c.BaseURL(), strings.TrimPrefix(path, "/"), url.QueryEscape(c.apiKey))
	if token := c.AccessToken(); token != "" {
		u += "&token=" + url.QueryEscape(token)
	}
	return u
}

// do executes one request and decodes its JSON body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload *Record, headers http.Header) (*Response, error) {
	reqURL := c.endpoint(path)
	if method == http.MethodGet && len(query) > 0 {
		reqURL += "&" + query.Encode()
	}

	var body io.Reader
	var encoded string
	if (method == http.MethodPost || method == http.MethodPut) && payload.Len() > 0 {
		encoded = encodeForm(payload)
		body = strings.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		e := newArgumentError("failed to create request: %v", err)
		e.Err = err
		return nil, e
	}

	for name, values := range headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.ContentLength = int64(len(encoded))
	}

	start := time.Now()
	resp, err := c.transport().Do(req)
	if err != nil {
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(err)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Raw:        raw,
		Duration:   time.Since(start),
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, newAPIError(resp.StatusCode, raw)
	}

	data, err := decodeJSON(raw)
	if err != nil {
		return nil, newDecodeError(resp.StatusCode, raw, err)
	}
	switch data.(type) {
	case *Record, []any:
	default:
		return nil, newDecodeError(resp.StatusCode, raw, errors.New("response is not a JSON object or array"))
	}
	out.data = data

	return out, nil
}
