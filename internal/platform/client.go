package platform

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rflorenc/teamroadmaps/internal/config"
)

// APIError is a non-2xx response from the remote API.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string // "message" field of the JSON error body, or the truncated body
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Client talks to the remote resource-configuration API and the page catalog.
type Client struct {
	apiURL     string
	catalogURL string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client from the loaded configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	transport := &http.Transport{}
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	} else if cfg.CACert != "" {
		caCertPool := x509.NewCertPool()
		if caCertPool.AppendCertsFromPEM([]byte(cfg.CACert)) {
			transport.TLSClientConfig = &tls.Config{RootCAs: caCertPool}
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		catalogURL: strings.TrimRight(cfg.CatalogURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		logger:     logger,
	}
}

// do sends a JSON request and decodes a 2xx response into dest.
func (c *Client) do(ctx context.Context, method, rawURL string, payload, dest any) error {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	c.logger.Debug("remote call", "method", method, "path", req.URL.Path,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Method:  method,
			Path:    req.URL.Path,
			Status:  resp.StatusCode,
			Message: errorMessage(body),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parsing response from %s: %w", req.URL.Path, err)
	}
	return nil
}

// Get performs a GET against the API and decodes the response into dest.
func (c *Client) Get(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodGet, c.apiURL+path, nil, dest)
}

// Put performs a PUT with a JSON body and decodes the response into dest.
func (c *Client) Put(ctx context.Context, path string, payload, dest any) error {
	return c.do(ctx, http.MethodPut, c.apiURL+path, payload, dest)
}

// Post performs a POST with a JSON body and decodes the response into dest.
func (c *Client) Post(ctx context.Context, path string, payload, dest any) error {
	return c.do(ctx, http.MethodPost, c.apiURL+path, payload, dest)
}

// errorMessage extracts {"message": "..."} from an error body, falling back
// to the raw body.
func errorMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return truncate(strings.TrimSpace(string(body)), 200)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
