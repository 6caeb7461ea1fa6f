package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/riskscan/internal/model"
)

// Backend endpoint paths, relative to the configured origin.
const (
	EndpointAnalyzeScreenshot = "/api/analyze-screenshot"
	EndpointAnalyzeText       = "/api/analyze-text"
	EndpointAnalyzeWebsite    = "/api/analyze-website"
	EndpointHistory           = "/api/history"
	EndpointStats             = "/api/stats"
)

// screenshotField is the multipart form field the backend reads the image from.
const screenshotField = "image"

// defaultMaxBodySize is used when no positive limit is configured.
const defaultMaxBodySize = 5 * 1024 * 1024

// Client talks to one analysis backend.
// It is safe for concurrent use; independent calls share nothing but the
// underlying http.Client.
type Client struct {
	// baseURL is the backend origin. Endpoint paths are joined onto its path.
	baseURL *url.URL

	// httpClient performs the requests.
	httpClient *http.Client

	// maxBodySize caps how many response bytes are read.
	maxBodySize int64

	// logger receives request-level debug logs.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
// Use NewHTTPClient to build one with a timeout, proxy, and User-Agent.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMaxBodySize limits the response size. Non-positive values keep the default.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the backend at baseURL
// (for example "http://127.0.0.1:5000").
//
// No connection is made here; the first request reveals whether the
// backend is reachable.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""

	c := &Client{
		baseURL:     u,
		httpClient:  http.DefaultClient,
		maxBodySize: defaultMaxBodySize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Analyze dispatches a validated request to the matching analyze endpoint.
// It does not validate the request; callers are expected to do so first.
func (c *Client) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	switch req.Kind {
	case model.KindScreenshot:
		return c.AnalyzeScreenshot(ctx, req.Filename, req.Image)
	case model.KindText:
		return c.AnalyzeText(ctx, req.Text)
	case model.KindWebsite:
		return c.AnalyzeWebsite(ctx, req.URL)
	default:
		return nil, model.ErrUnknownRequestKind
	}
}

// AnalyzeScreenshot uploads an image as multipart form field "image".
func (c *Client) AnalyzeScreenshot(ctx context.Context, filename string, image []byte) (*model.AnalysisResult, error) {
	body, contentType, err := encodeScreenshot(filename, image)
	if err != nil {
		return nil, &TransportError{
			Method:   http.MethodPost,
			Endpoint: EndpointAnalyzeScreenshot,
			Err:      fmt.Errorf("%w: %w", ErrRequestFailed, err),
		}
	}

	var result model.AnalysisResult
	if err := c.do(ctx, http.MethodPost, EndpointAnalyzeScreenshot, body, contentType, &result); err != nil {
		return nil, err
	}
	return normalizeResult(&result, EndpointAnalyzeScreenshot)
}

// AnalyzeText submits free text as JSON {"text": text}.
func (c *Client) AnalyzeText(ctx context.Context, text string) (*model.AnalysisResult, error) {
	return c.postJSON(ctx, EndpointAnalyzeText, map[string]string{"text": text})
}

// AnalyzeWebsite submits a URL as JSON {"url": url}.
func (c *Client) AnalyzeWebsite(ctx context.Context, websiteURL string) (*model.AnalysisResult, error) {
	return c.postJSON(ctx, EndpointAnalyzeWebsite, map[string]string{"url": websiteURL})
}

// History fetches the full history collection in backend order.
// A JSON null is treated as an empty history.
func (c *Client) History(ctx context.Context) (model.History, error) {
	var history model.History
	if err := c.do(ctx, http.MethodGet, EndpointHistory, nil, "", &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = model.History{}
	}
	for i := range history {
		history[i].RiskLevel = model.ParseRiskLevel(string(history[i].RiskLevel))
	}
	return history, nil
}

// Stats fetches the current verdict counts.
func (c *Client) Stats(ctx context.Context) (*model.StatsSnapshot, error) {
	var stats model.StatsSnapshot
	if err := c.do(ctx, http.MethodGet, EndpointStats, nil, "", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// postJSON sends payload as a JSON body and decodes an AnalysisResult.
func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) (*model.AnalysisResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &TransportError{
			Method:   http.MethodPost,
			Endpoint: endpoint,
			Err:      fmt.Errorf("%w: %w", ErrRequestFailed, err),
		}
	}

	var result model.AnalysisResult
	if err := c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(data), "application/json", &result); err != nil {
		return nil, err
	}
	return normalizeResult(&result, endpoint)
}

// errorBody is the shape of the backend's error responses.
type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// do performs one request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out any) error {
	fail := func(status int, message string, err error) error {
		return &TransportError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: status,
			Message:    message,
			Err:        err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint), body)
	if err != nil {
		return fail(0, "", fmt.Errorf("%w: %w", ErrRequestFailed, err))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("backend request failed", "method", method, "endpoint", endpoint, "error", err)
		return fail(0, "", fmt.Errorf("%w: %w", ErrRequestFailed, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("%w: %w", ErrRequestFailed, err))
	}

	c.logger.Debug("backend request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"bytes", len(data),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, errorMessage(data), ErrUnexpectedStatus)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}
	return nil
}

// endpointURL joins an endpoint path onto the base URL's path.
func (c *Client) endpointURL(endpoint string) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + endpoint
	return u.String()
}

// errorMessage extracts the backend's error text from a failure body.
// Non-JSON bodies are returned trimmed and shortened.
func errorMessage(data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil {
		if eb.Error != "" {
			return eb.Error
		}
		return eb.Reason
	}
	return model.Preview(strings.TrimSpace(string(data)), 200)
}

// normalizeResult checks that a verdict is present and normalizes its level.
func normalizeResult(result *model.AnalysisResult, endpoint string) (*model.AnalysisResult, error) {
	if strings.TrimSpace(string(result.RiskLevel)) == "" {
		return nil, &TransportError{
			Method:     http.MethodPost,
			Endpoint:   endpoint,
			StatusCode: http.StatusOK,
			Err:        fmt.Errorf("%w: missing riskLevel", ErrMalformedResponse),
		}
	}
	result.RiskLevel = model.ParseRiskLevel(string(result.RiskLevel))
	return result, nil
}

// encodeScreenshot builds the multipart body for a screenshot upload.
// The part's Content-Type is sniffed from the image bytes, as a browser would
// send the file's detected type.
func encodeScreenshot(filename string, image []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, screenshotField, escapeQuotes(filename)))
	header.Set("Content-Type", http.DetectContentType(image))

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// quoteEscaper mirrors mime/multipart's escaping for filenames.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// escapeQuotes escapes backslashes and quotes in a filename.
func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
