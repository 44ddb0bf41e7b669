// Package client is the outbound API client used by tooling that talks
// to a vetsync server. Every request goes through one pipeline: attach
// the stored session token, refresh it once on 401, and retry transient
// failures with bounded exponential backoff.
package client

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

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/omarwahbi/VetSync-sub002/internal/config"
)

// ErrSessionTerminated reports that the stored session could not be
// refreshed. The credentials were cleared; the caller must log in again.
var ErrSessionTerminated = errors.New("session terminated")

type Client struct {
	baseURL     string
	http        *http.Client
	store       *TokenStore
	log         *zap.Logger
	refresh     singleflight.Group
	maxRetries  int
	backoffBase time.Duration
}

func New(cfg config.ClientConfig, log *zap.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		http:        &http.Client{Timeout: 15 * time.Second},
		store:       NewTokenStore(cfg.TokenFile),
		log:         log.Named("client"),
		maxRetries:  cfg.RetryMax,
		backoffBase: cfg.BackoffBase,
	}
}

// Store exposes the token store for login tooling.
func (c *Client) Store() *TokenStore {
	return c.store
}

type sessionPayload struct {
	Token            string    `json:"token"`
	RefreshToken     string    `json:"refresh_token"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// Login authenticates with email and password and persists the issued
// token pair.
func (c *Client) Login(ctx context.Context, email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("login returned HTTP %d", res.StatusCode)
	}

	var session sessionPayload
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		return err
	}
	return c.store.Save(Credentials(session))
}

// Do sends one API request through the pipeline. Network errors and 5xx
// responses retry with exponential delays (base, 2x, 4x, ...); a 401
// triggers at most one coalesced refresh before the request is replayed.
// The caller owns the response body on success.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.backoffBase
	bo.RandomizationFactor = 0
	bo.Multiplier = 2

	refreshed := false
	op := func() (*http.Response, error) {
		res, err := c.attempt(ctx, method, path, body)
		if err != nil {
			return nil, err
		}

		switch {
		case res.StatusCode == http.StatusUnauthorized:
			drainAndClose(res)
			if refreshed {
				_ = c.store.Clear()
				return nil, backoff.Permanent(ErrSessionTerminated)
			}
			refreshed = true
			if err := c.refreshSession(ctx); err != nil {
				return nil, backoff.Permanent(err)
			}

			replay, err := c.attempt(ctx, method, path, body)
			if err != nil {
				return nil, err
			}
			if replay.StatusCode == http.StatusUnauthorized {
				drainAndClose(replay)
				_ = c.store.Clear()
				return nil, backoff.Permanent(ErrSessionTerminated)
			}
			if replay.StatusCode >= http.StatusInternalServerError {
				drainAndClose(replay)
				return nil, fmt.Errorf("%s %s returned HTTP %d", method, path, replay.StatusCode)
			}
			return replay, nil

		case res.StatusCode >= http.StatusInternalServerError:
			drainAndClose(res)
			return nil, fmt.Errorf("%s %s returned HTTP %d", method, path, res.StatusCode)

		default:
			return res, nil
		}
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(c.maxRetries+1)),
	)
}

// DoJSON sends a request with a JSON body and decodes a JSON response.
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = encoded
	}

	res, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s returned HTTP %d", method, path, res.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func (c *Client) attempt(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds, err := c.store.Load(); err == nil {
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}

	return c.http.Do(req)
}

// refreshSession exchanges the stored refresh token for a new pair.
// Concurrent callers coalesce into a single refresh request; every
// waiter observes the same outcome.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		creds, err := c.store.Load()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSessionTerminated, err)
		}
		if creds.RefreshToken == "" {
			_ = c.store.Clear()
			return nil, ErrSessionTerminated
		}

		payload, err := json.Marshal(map[string]string{
			"refresh_token": creds.RefreshToken,
		})
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			_ = c.store.Clear()
			c.log.Warn("session refresh rejected", zap.Int("status", res.StatusCode))
			return nil, fmt.Errorf("%w: refresh returned HTTP %d", ErrSessionTerminated, res.StatusCode)
		}

		var session sessionPayload
		if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
			return nil, err
		}
		if err := c.store.Save(Credentials(session)); err != nil {
			return nil, err
		}

		c.log.Debug("session refreshed")
		return nil, nil
	})
	return err
}

func drainAndClose(res *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 64<<10))
	_ = res.Body.Close()
}
