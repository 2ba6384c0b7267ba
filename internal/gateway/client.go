// Package gateway is the only code that talks to the remote analysis
// backend and to the GitHub metadata API. Every call takes a context,
// is attempted once, and reports failure through the domain error types.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/joss/repochat/internal/config"
	"github.com/joss/repochat/internal/domain"
	"github.com/joss/repochat/internal/logging"
	"github.com/joss/repochat/internal/store"
)

// maxErrorBody caps how much of a failed response is read for a message.
const maxErrorBody = 64 << 10

// Config holds the endpoints the gateway talks to.
type Config struct {
	BackendURL   string
	GitHubAPIURL string
	GitHubToken  string
}

// ConfigFromEnv copies the gateway settings out of env.
func ConfigFromEnv(env *config.RepochatEnv) Config {
	return Config{
		BackendURL:   env.BackendURL,
		GitHubAPIURL: env.GitHubAPIURL,
		GitHubToken:  env.GitHubToken,
	}
}

// Client is the backend gateway.
type Client struct {
	cfg      Config
	http     HTTPClient
	sessions store.SessionStore
	log      *logging.Logger
	now      func() time.Time
}

// New creates a gateway. sessions is where a successful analysis is cached
// and where later calls read the current repository name from.
func New(cfg Config, client HTTPClient, sessions store.SessionStore, log *logging.Logger) *Client {
	if client == nil {
		client = NewHTTPClient(0)
	}
	if log == nil {
		log = logging.New("gateway")
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	cfg.GitHubAPIURL = strings.TrimRight(cfg.GitHubAPIURL, "/")
	if cfg.BackendURL == "" {
		cfg.BackendURL = config.DefaultBackendURL
	}
	if cfg.GitHubAPIURL == "" {
		cfg.GitHubAPIURL = config.DefaultGitHubAPIURL
	}
	return &Client{
		cfg:      cfg,
		http:     client,
		sessions: sessions,
		log:      log,
		now:      time.Now,
	}
}

// Sessions returns the injected session store.
func (c *Client) Sessions() store.SessionStore {
	return c.sessions
}

// statusError describes a non-2xx response.
type statusError struct {
	Status  int
	Message string
}

func (e *statusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("status %d", e.Status)
}

// errorBody is the backend's failure payload.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// do sends one request and returns the raw body of a 2xx response.
// Non-2xx responses become *statusError carrying the backend message when
// the body is JSON with a message field.
func (c *Client) do(ctx context.Context, method, url string, body any, header http.Header) ([]byte, error) {
	ctx, reqID := logging.EnsureRequestID(ctx)
	start := time.Now()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set(logging.HeaderRequestID, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		err = fmt.Errorf("send request: %w", err)
		c.log.Request(reqID, method, url, 0, start, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		serr := &statusError{Status: resp.StatusCode, Message: errorMessage(raw)}
		c.log.Request(reqID, method, url, resp.StatusCode, start, serr)
		return nil, serr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("read response: %w", err)
		c.log.Request(reqID, method, url, resp.StatusCode, start, err)
		return nil, err
	}
	c.log.Request(reqID, method, url, resp.StatusCode, start, nil)
	return data, nil
}

// doJSON is do followed by decoding the body into out.
func (c *Client) doJSON(ctx context.Context, method, url string, body, out any, header http.Header) error {
	data, err := c.do(ctx, method, url, body, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls message (or detail) out of a JSON error body.
// Bodies that are not JSON yield "".
func errorMessage(raw []byte) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Detail
}

// split separates a do error into HTTP status, backend message and cause.
func split(err error) (status int, message string, cause error) {
	var se *statusError
	if errors.As(err, &se) {
		return se.Status, se.Message, nil
	}
	return 0, "", err
}

// repoName reads the current repository name from the session store.
// A missing session yields "" so calls still go out, matching how the
// backend treats an unknown repository.
func (c *Client) repoName(ctx context.Context) string {
	if c.sessions == nil {
		return ""
	}
	sess, err := c.sessions.Load(ctx)
	if err != nil {
		if !store.IsNotFound(err) {
			c.log.Warn("session_load_failed", nil, err)
		}
		return ""
	}
	return sess.Name
}

// CurrentSession returns the cached session, if any.
func (c *Client) CurrentSession(ctx context.Context) (*domain.RepositorySession, error) {
	if c.sessions == nil {
		return nil, store.NewNotFoundError("", store.SessionKey)
	}
	return c.sessions.Load(ctx)
}
