package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sony/gobreaker"

	"github.com/xavierca1/formapro-console/internal/entity"
)

var (
	ErrInvalidCredentials = errors.New("identifiants invalides")
	ErrProgrammeNotFound  = errors.New("programme introuvable")
)

// Client talks to the headless CMS REST API (Strapi conventions).
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	APIToken   string
	CacheTTL   time.Duration
	MaxTries   uint

	// RetryInterval is the first backoff delay between attempts.
	RetryInterval time.Duration

	breaker *gobreaker.CircuitBreaker

	mu    sync.Mutex
	cache map[string]cachedProgramme
}

type cachedProgramme struct {
	programme entity.Programme
	expiresAt time.Time
}

func NewClient(baseURL, apiToken string, timeout, cacheTTL time.Duration) *Client {
	return &Client{
		HTTPClient:    &http.Client{Timeout: timeout},
		BaseURL:       strings.TrimRight(baseURL, "/"),
		APIToken:      apiToken,
		CacheTTL:      cacheTTL,
		MaxTries:      3,
		RetryInterval: 500 * time.Millisecond,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "cms",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			IsSuccessful: func(err error) bool {
				// 4xx answers mean the CMS is up
				var apiErr *APIError
				return err == nil || (errors.As(err, &apiErr) && apiErr.Status < 500)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("⚠️ [CMS] Circuit %s: %s -> %s", name, from, to)
			},
		}),
		cache: map[string]cachedProgramme{},
	}
}

// Login exchanges back-office credentials for a CMS JWT.
func (c *Client) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	body, err := json.Marshal(loginRequest{Identifier: identifier, Password: password})
	if err != nil {
		return nil, err
	}

	var out loginResponse
	err = c.do(ctx, http.MethodPost, "/auth/local", body, false, &out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: out.User.toEntity(), Token: out.JWT}, nil
}

// GetProgramme implements usecase.ProgrammeCatalog. Transient failures are
// retried with exponential backoff; answers are cached for CacheTTL.
func (c *Client) GetProgramme(ctx context.Context, id string) (*entity.Programme, error) {
	if p, ok := c.cached(id); ok {
		return p, nil
	}

	path := "/programmes/" + url.PathEscape(id)
	p, err := backoff.Retry(ctx, func() (*entity.Programme, error) {
		var env programmeEnvelope
		err := c.do(ctx, http.MethodGet, path, nil, true, &env)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			if apiErr.Status == http.StatusNotFound {
				return nil, backoff.Permanent(ErrProgrammeNotFound)
			}
			return nil, backoff.Permanent(err)
		}
		if errors.Is(err, gobreaker.ErrOpenState) {
			return nil, backoff.Permanent(err)
		}
		if err != nil {
			return nil, err
		}
		if env.Data == nil {
			return nil, backoff.Permanent(ErrProgrammeNotFound)
		}
		return env.Data.toEntity(), nil
	},
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(c.MaxTries),
	)
	if err != nil {
		return nil, err
	}

	c.store(id, *p)
	return p, nil
}

func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.RetryInterval
	return b
}

func (c *Client) cached(id string) (*entity.Programme, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.cache[id]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	p := e.programme
	return &p, true
}

func (c *Client) store(id string, p entity.Programme) {
	if c.CacheTTL <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[id] = cachedProgramme{programme: p, expiresAt: time.Now().Add(c.CacheTTL)}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, auth bool, out any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if auth && c.APIToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.APIToken)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("requête CMS %s %s: %w", method, path, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("lecture de la réponse CMS: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var env errorEnvelope
			msg := strings.TrimSpace(string(raw))
			if json.Unmarshal(raw, &env) == nil && env.Error.Message != "" {
				msg = env.Error.Message
			}
			return nil, &APIError{Status: resp.StatusCode, Message: msg}
		}

		if out != nil {
			if err := json.Unmarshal(raw, out); err != nil {
				return nil, fmt.Errorf("décodage de la réponse CMS: %w", err)
			}
		}
		return nil, nil
	})
	return err
}
