package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joefazee/neo-admin/internal/logger"
	"github.com/joefazee/neo-admin/models"
)

const (
	// DefaultTimeout for a single backend call
	DefaultTimeout = 15 * time.Second
	// maxBodyBytes caps how much of a response is read
	maxBodyBytes = 4 << 20
)

// HTTPClient interface for dependency injection and testing
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds the configuration for the backend client
type ClientConfig struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient HTTPClient
	Logger     logger.Logger
}

// Client performs single-shot JSON calls against the admin backend and
// unwraps its response envelope. It never retries.
type Client struct {
	baseURL    string
	token      string
	timeout    time.Duration
	httpClient HTTPClient
	logger     logger.Logger
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorInfo      `json:"error"`
}

// NewClient creates a new backend client
func NewClient(config ClientConfig) (*Client, error) {
	u, err := url.Parse(config.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", config.BaseURL)
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	log := config.Logger
	if log == nil {
		log = logger.NewNullLogger()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		token:      config.Token,
		timeout:    timeout,
		httpClient: httpClient,
		logger:     log,
	}, nil
}

// Do sends body (when non-nil) as JSON and decodes the envelope's data into
// out (when non-nil). It returns the envelope message. Every failure after
// the request was built is a *models.RemoteError.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) (string, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("backend request failed", logger.Fields{
			"method": method, "path": path, "request_id": requestID, "error": err.Error(),
		})
		return "", models.NewNetworkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", models.NewNetworkError(err)
	}

	c.logger.Debug("backend request", logger.Fields{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"request_id":  requestID,
		"duration_ms": time.Since(started).Milliseconds(),
	})

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", failure(resp.StatusCode, env, decodeErr)
	}

	if decodeErr != nil {
		return "", &models.RemoteError{
			Kind:   models.ErrServer,
			Status: resp.StatusCode,
			Cause:  fmt.Errorf("malformed response: %w", decodeErr),
		}
	}

	if out != nil {
		if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
			return "", &models.RemoteError{
				Kind:   models.ErrServer,
				Status: resp.StatusCode,
				Cause:  errors.New("response has no data"),
			}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", &models.RemoteError{
				Kind:   models.ErrServer,
				Status: resp.StatusCode,
				Cause:  fmt.Errorf("malformed response data: %w", err),
			}
		}
	}

	return env.Message, nil
}

func failure(status int, env envelope, decodeErr error) *models.RemoteError {
	remote := &models.RemoteError{
		Kind:   models.KindForStatus(status),
		Status: status,
	}
	if decodeErr != nil {
		return remote
	}

	remote.Message = env.Message
	if env.Error != nil {
		remote.Code = env.Error.Code
		remote.Fields = env.Error.Details
		if remote.Message == "" {
			remote.Message = env.Error.Message
		}
	}
	return remote
}

// PathEscape joins a fixed prefix with an escaped identifier.
func PathEscape(prefix, id string) string {
	return prefix + "/" + url.PathEscape(id)
}
