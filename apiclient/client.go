// Package apiclient is the typed REST client for the PadiPos backend. Every
// response is decoded into an explicit schema and narrowed before use; shapes
// that do not match fail with a DecodeError instead of leaking zero values.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const maxResponseBytes = 10 << 20

// Client talks to the backend. Authenticated calls take the bearer token
// explicitly; the client itself holds no session state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the backend root, used to resolve relative image paths.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type validator interface {
	Validate() error
}

type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string

	// emptyOK treats a null or absent data field as an empty result.
	emptyOK bool
}

func jsonRequest(method, path, token string, payload any) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	return request{
		method:      method,
		path:        path,
		token:       token,
		body:        bytes.NewReader(b),
		contentType: "application/json",
	}, nil
}

// do sends req and decodes the envelope. When out is non-nil the data field
// is required and decoded into it. The envelope message is returned so
// callers can surface it to the operator.
func (c *Client) do(ctx context.Context, req request, out any) (string, error) {
	endpoint := req.method + " " + req.path

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return "", fmt.Errorf("build %s: %w", endpoint, err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%s: read response: %w", endpoint, err)
	}

	logrus.WithFields(logrus.Fields{
		"endpoint":   endpoint,
		"status":     resp.StatusCode,
		"request_id": requestID,
		"duration":   time.Since(start),
	}).Debug("api call")

	if resp.StatusCode >= http.StatusBadRequest {
		return "", newAPIError(resp.StatusCode, body)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", &DecodeError{Endpoint: endpoint, Err: err}
	}
	if out == nil {
		return env.Message, nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		if req.emptyOK {
			return env.Message, nil
		}
		return "", &DecodeError{Endpoint: endpoint, Field: "data", Err: errMissing}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return "", &DecodeError{Endpoint: endpoint, Field: "data", Err: err}
	}
	if err := validate(out); err != nil {
		return "", &DecodeError{Endpoint: endpoint, Field: "data", Err: err}
	}
	return env.Message, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if gjson.ValidBytes(body) {
		apiErr.Message = gjson.GetBytes(body, "message").String()
		if data := gjson.GetBytes(body, "data"); data.Exists() && data.Type != gjson.Null {
			apiErr.Data = data.Raw
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) < 256 {
		apiErr.Message = text
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// validate narrows a decoded value that knows how to check itself.
func validate(out any) error {
	if v, ok := out.(validator); ok {
		return v.Validate()
	}
	return nil
}

func validateAll[T validator](items []T) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// decodeList fetches a list endpoint and narrows every element.
func decodeList[T validator](ctx context.Context, c *Client, req request) ([]T, error) {
	req.emptyOK = true
	items := []T{}
	if _, err := c.do(ctx, req, &items); err != nil {
		return nil, err
	}
	if err := validateAll(items); err != nil {
		return nil, &DecodeError{Endpoint: req.method + " " + req.path, Field: "data", Err: err}
	}
	return items, nil
}
