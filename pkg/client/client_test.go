package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/omarwahbi/VetSync-sub002/internal/config"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return New(config.ClientConfig{
		BaseURL:     baseURL,
		RetryMax:    3,
		BackoffBase: time.Millisecond,
		TokenFile:   filepath.Join(t.TempDir(), "session.json"),
	}, zap.NewNop())
}

func seedStore(t *testing.T, c *Client, token, refreshToken string) {
	t.Helper()
	require.NoError(t, c.store.Save(Credentials{
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}))
}

func TestDoRetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	seedStore(t, c, "tok-1", "ref-1")

	res, err := c.Do(context.Background(), http.MethodGet, "/api/v1/owners", nil)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, int32(3), attempts.Load())
}

func TestDoBackoffDelaySchedule(t *testing.T) {
	var mu sync.Mutex
	var arrivals []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		arrivals = append(arrivals, time.Now())
		n := len(arrivals)
		mu.Unlock()
		if n <= 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	base := 100 * time.Millisecond
	c := New(config.ClientConfig{
		BaseURL:     srv.URL,
		RetryMax:    3,
		BackoffBase: base,
		TokenFile:   filepath.Join(t.TempDir(), "session.json"),
	}, zap.NewNop())
	seedStore(t, c, "tok-1", "ref-1")

	res, err := c.Do(context.Background(), http.MethodGet, "/api/v1/owners", nil)
	require.NoError(t, err)
	defer res.Body.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, arrivals, 4)

	// Delays double from the base with no jitter: 1x, 2x, 4x.
	for i, want := range []time.Duration{base, 2 * base, 4 * base} {
		gap := arrivals[i+1].Sub(arrivals[i])
		require.GreaterOrEqual(t, gap, want)
		require.Less(t, gap, want+75*time.Millisecond)
	}
}

func TestDoCoalescesConcurrentRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	var apiCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		refreshCalls.Add(1)
		// Keep the refresh in flight long enough for every caller's first
		// attempt to come back unauthorized and join it.
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-2","refresh_token":"ref-2"}`))
	})
	mux.HandleFunc("/api/v1/owners", func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	seedStore(t, c, "tok-1", "ref-1")

	const callers = 4
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := c.Do(context.Background(), http.MethodGet, "/api/v1/owners", nil)
			if err == nil {
				require.Equal(t, http.StatusOK, res.StatusCode)
				res.Body.Close()
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
	}
	require.Equal(t, int32(1), refreshCalls.Load())
	// One unauthorized attempt plus one replay per caller.
	require.Equal(t, int32(2*callers), apiCalls.Load())
}

func TestDoSurfacesLastErrorAfterExhaustion(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	seedStore(t, c, "tok-1", "ref-1")

	_, err := c.Do(context.Background(), http.MethodGet, "/api/v1/owners", nil)
	require.ErrorContains(t, err, "HTTP 502")

	// RetryMax retries on top of the initial attempt.
	require.Equal(t, int32(4), attempts.Load())
}

func TestDoRefreshesOnUnauthorized(t *testing.T) {
	var refreshCalls atomic.Int32
	var apiCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-2","refresh_token":"ref-2"}`))
	})
	mux.HandleFunc("/api/v1/owners", func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer tok-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	seedStore(t, c, "tok-1", "ref-1")

	res, err := c.Do(context.Background(), http.MethodGet, "/api/v1/owners", nil)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, int32(1), refreshCalls.Load())
	require.Equal(t, int32(2), apiCalls.Load())

	creds, err := c.store.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-2", creds.Token)
	require.Equal(t, "ref-2", creds.RefreshToken)
}

func TestDoTerminatesSessionWhenRefreshFails(t *testing.T) {
	var apiCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/v1/owners", func(w http.ResponseWriter, _ *http.Request) {
		apiCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	seedStore(t, c, "tok-1", "ref-1")

	_, err := c.Do(context.Background(), http.MethodGet, "/api/v1/owners", nil)
	require.ErrorIs(t, err, ErrSessionTerminated)

	// No backoff retries after a failed refresh, and the stored pair is
	// gone.
	require.Equal(t, int32(1), apiCalls.Load())
	_, err = c.store.Load()
	require.ErrorIs(t, err, ErrNoCredentials)
}

func TestDoReplayUnauthorizedTerminates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-2","refresh_token":"ref-2"}`))
	})
	mux.HandleFunc("/api/v1/owners", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	seedStore(t, c, "tok-1", "ref-1")

	_, err := c.Do(context.Background(), http.MethodGet, "/api/v1/owners", nil)
	require.ErrorIs(t, err, ErrSessionTerminated)

	_, err = c.store.Load()
	require.ErrorIs(t, err, ErrNoCredentials)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(config.ClientConfig{
		BaseURL:     srv.URL,
		RetryMax:    3,
		BackoffBase: 200 * time.Millisecond,
		TokenFile:   filepath.Join(t.TempDir(), "session.json"),
	}, zap.NewNop())
	seedStore(t, c, "tok-1", "ref-1")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.Do(ctx, http.MethodGet, "/api/v1/owners", nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled))
}

func TestLoginPersistsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-1","refresh_token":"ref-1"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	require.NoError(t, c.Login(context.Background(), "vet@clinic.example", "password123"))

	creds, err := c.store.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-1", creds.Token)
	require.Equal(t, "ref-1", creds.RefreshToken)
}

func TestTokenStoreRoundTrip(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoCredentials)

	require.NoError(t, store.Save(Credentials{Token: "tok", RefreshToken: "ref"}))
	creds, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "tok", creds.Token)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	require.ErrorIs(t, err, ErrNoCredentials)
	require.NoError(t, store.Clear())
}
