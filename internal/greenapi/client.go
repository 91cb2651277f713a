// the greenapi package calls the GREEN-API WhatsApp REST API.
// Responses are not interpreted: a successful call returns the body as raw JSON so that callers can display it unchanged.
// Every failure is reported as a *RequestFailure (see greenapi/errors.go)
package greenapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.green-api.com"
	DefaultTimeout = 30 * time.Second
)

// endpoint names as they appear in the request path
const (
	EndpointGetSettings      = "getSettings"
	EndpointGetStateInstance = "getStateInstance"
	EndpointSendMessage      = "sendMessage"
	EndpointSendFileByURL    = "sendFileByUrl"
)

// Credentials identify a GREEN-API instance. The values are opaque and are not validated.
type Credentials struct {
	IDInstance       string `json:"idInstance"`
	APITokenInstance string `json:"apiTokenInstance"`
}

// Result is the response body of a successful call. It is always valid JSON.
type Result = json.RawMessage

// CallOptions configure a single call. The zero value is a GET without a body.
type CallOptions struct {
	Method string
	Body   any
}

// Client handles communication with the GREEN-API REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the API at baseURL (normally DefaultBaseURL).
// A timeout <= 0 means requests are only bounded by the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout < 0 {
		timeout = 0
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// BuildURL returns the request URL for endpoint: <baseURL>/waInstance<id>/<endpoint>/<token>.
// The credentials are substituted verbatim, empty values included.
func BuildURL(baseURL, endpoint string, creds Credentials) string {
	return fmt.Sprintf("%s/waInstance%s/%s/%s", baseURL, creds.IDInstance, endpoint, creds.APITokenInstance)
}

// URL returns the request URL this client uses for endpoint
func (c *Client) URL(endpoint string, creds Credentials) string {
	return BuildURL(c.baseURL, endpoint, creds)
}

// Call performs one request against endpoint.
// The Content-Type header is always application/json, also on requests without a body.
func (c *Client) Call(ctx context.Context, endpoint string, creds Credentials, opts CallOptions) (Result, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := encodeJSON(opts.Body)
		if err != nil {
			return nil, NewInternalFailure(err, "encoding request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(endpoint, creds), body)
	if err != nil {
		return nil, NewInternalFailure(err, "creating request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewNetworkFailure(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, NewHTTPFailure(res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, NewNetworkFailure(err)
	}
	data = bytes.TrimSpace(data)

	if !json.Valid(data) {
		return nil, NewDecodeFailure(decodeError(data))
	}

	return Result(data), nil
}

// encodeJSON marshals v without escaping <, > and &, so message text reaches the API as typed
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeError returns the reason data failed json.Valid
func decodeError(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return fmt.Errorf("unexpected content")
}
