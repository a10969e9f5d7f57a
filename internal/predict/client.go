// Package predict sends encoded customer records to the churn prediction
// endpoint and turns its answer into an outcome.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/f3rmion/churn/internal/churn"
	"github.com/f3rmion/churn/internal/logger"
)

// DefaultEndpoint is the hosted prediction service.
const DefaultEndpoint = "https://blinkit-churn-predictor.onrender.com/predict"

// UserMessage is shown for every failed prediction.
const UserMessage = "An error occurred while making the prediction. Please try again."

// ErrorKind says which step of a request failed.
type ErrorKind string

const (
	KindTransport ErrorKind = "transport" // request could not be sent or read
	KindStatus    ErrorKind = "status"    // endpoint answered with a non-2xx status
	KindDecode    ErrorKind = "decode"    // body was not usable JSON
)

// RequestError is returned when a prediction request fails.
type RequestError struct {
	Kind   ErrorKind
	Status int // HTTP status, 0 if no response was received
	Err    error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("prediction %s error (HTTP %d): %v", e.Kind, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("prediction %s error: HTTP %d", e.Kind, e.Status)
	default:
		return fmt.Sprintf("prediction %s error: %v", e.Kind, e.Err)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client calls the prediction endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero waits indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger requests are reported to.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for endpoint. An empty endpoint uses
// DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		log:        logger.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Endpoint returns the URL predictions are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

// request is the body sent to the endpoint.
type request struct {
	Features churn.FeatureVector `json:"features"`
}

// Predict submits features and returns the label the endpoint chose.
func (c *Client) Predict(ctx context.Context, features churn.FeatureVector) (churn.Label, error) {
	body, err := json.Marshal(request{Features: features})
	if err != nil {
		return "", &RequestError{Kind: KindTransport, Err: fmt.Errorf("marshaling request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &RequestError{Kind: KindTransport, Err: fmt.Errorf("creating request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.log.Debug("sending prediction request", "endpoint", c.endpoint, "features", features[:])

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &RequestError{Kind: KindTransport, Err: fmt.Errorf("making request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{Kind: KindTransport, Status: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RequestError{Kind: KindStatus, Status: resp.StatusCode}
	}

	label, err := interpret(respBody)
	if err != nil {
		return "", &RequestError{Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}

	c.log.Debug("prediction received", "status", resp.StatusCode, "label", label)
	return label, nil
}

// interpret reads the endpoint's answer. Only a JSON object whose prediction
// is the number 1 means churn; every other well-formed body means stay.
func interpret(body []byte) (churn.Label, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if v == nil {
		return "", fmt.Errorf("response body is null")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return churn.LabelStay, nil
	}
	if p, ok := obj["prediction"].(float64); ok && p == 1 {
		return churn.LabelChurn, nil
	}
	return churn.LabelStay, nil
}
