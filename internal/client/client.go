// Package client talks to the text analysis service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/f3rmion/baitlens/internal/analysis"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// DefaultServer is used when no server URL is configured.
const DefaultServer = "http://localhost:8000"

// requestFailed is the banner text when an error body has no detail.
const requestFailed = "Request failed"

// Client is an analysis service client.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the service at server.
// A zero timeout lets requests run until the transport gives up.
func NewClient(server string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		server = DefaultServer
	}

	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url must be http or https: %s", server)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// Server returns the base URL the client talks to.
func (c *Client) Server() string {
	return c.baseURL.String()
}

// Outcome is the result of one analyze call: either a Response or a
// failure Message. Raw holds the pretty-printed body whenever the body
// was valid JSON, on both paths.
type Outcome struct {
	Status   int
	Raw      string
	Response *analysis.Response
	Message  string
}

// OK reports whether the outcome carries a response.
func (o Outcome) OK() bool {
	return o.Response != nil
}

// HasRaw reports whether a body could be mirrored.
func (o Outcome) HasRaw() bool {
	return o.Raw != ""
}

// Failure builds a failed outcome with no mirrored body.
func Failure(message string) Outcome {
	return Outcome{Message: message}
}

// Analyze submits text to POST /analyze.
func (c *Client) Analyze(ctx context.Context, text string, embeddings bool) Outcome {
	status, body, err := c.post(ctx, "/analyze", embeddings, analysis.Request{Text: text})
	if err != nil {
		return Failure(err.Error())
	}

	out, ok := mirror(status, body)
	if !ok {
		return out
	}

	resp, err := analysis.ParseResponse(body)
	if err != nil {
		out.Message = err.Error()
		return out
	}
	out.Response = resp
	return out
}

// BatchOutcome is the batch counterpart of Outcome.
type BatchOutcome struct {
	Status  int
	Raw     string
	Results []analysis.BatchResult
	Message string
}

// OK reports whether the outcome carries results.
func (o BatchOutcome) OK() bool {
	return o.Message == ""
}

// AnalyzeBatch submits several texts to POST /analyze/batch.
// Results come back in item order.
func (c *Client) AnalyzeBatch(ctx context.Context, items []analysis.BatchItem, embeddings bool) BatchOutcome {
	status, body, err := c.post(ctx, "/analyze/batch", embeddings, analysis.BatchRequest{Items: items})
	if err != nil {
		return BatchOutcome{Message: err.Error()}
	}

	single, ok := mirror(status, body)
	out := BatchOutcome{Status: single.Status, Raw: single.Raw, Message: single.Message}
	if !ok {
		return out
	}

	results, err := analysis.ParseBatch(body)
	if err != nil {
		out.Message = err.Error()
		return out
	}
	out.Results = results
	return out
}

// Health fetches GET /health.
func (c *Client) Health(ctx context.Context) (*analysis.Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/health", nil), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("health check returned status %d", status)
	}

	var h analysis.Health
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("unmarshaling health: %w", err)
	}
	return &h, nil
}

// mirror pretty-prints body and applies the status check. ok is false when
// the outcome is already a failure.
func mirror(status int, body []byte) (Outcome, bool) {
	out := Outcome{Status: status}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		out.Message = fmt.Sprintf("parsing response body: %v", err)
		return out, false
	}
	out.Raw = strings.TrimSpace(pretty.String())

	if status < 200 || status > 299 {
		out.Message = detail(body)
		return out, false
	}
	return out, true
}

// detail extracts the service's error explanation, falling back when the
// field is absent or falsy.
func detail(body []byte) string {
	d := gjson.GetBytes(body, "detail")
	switch d.Type {
	case gjson.Null, gjson.False:
		return requestFailed
	case gjson.Number:
		if d.Num == 0 {
			return requestFailed
		}
	case gjson.String:
		if d.Str == "" {
			return requestFailed
		}
	}
	return d.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path += path
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *Client) post(ctx context.Context, path string, embeddings bool, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshaling request: %w", err)
	}

	query := url.Values{}
	query.Set("embeddings", strconv.FormatBool(embeddings))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, query), bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// do executes req and reads the whole body whatever the status.
func (c *Client) do(req *http.Request) (int, []byte, error) {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", requestID,
			"error", err,
		)
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}

	c.logger.Info("request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"query", req.URL.RawQuery,
		"request_id", requestID,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return resp.StatusCode, body, nil
}
