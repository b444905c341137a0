package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`{"price": 50123.45}`))
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{})
	var out struct {
		Price float64 `json:"price"`
	}
	err := c.GetJSON(context.Background(), srv.URL, map[string]string{"X-Api-Key": "secret"}, &out)
	require.NoError(t, err)
	require.Equal(t, 50123.45, out.Price)
}

func TestGetNon2xxIsStatusError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{})
	_, err := c.Get(context.Background(), srv.URL, nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	require.Equal(t, int32(1), calls.Load(), "must not retry")
}

func TestGetJSONMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{})
	var out map[string]any
	err := c.GetJSON(context.Background(), srv.URL, nil, &out)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
}

func TestGetTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{Timeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := c.Get(context.Background(), srv.URL, nil)
	require.Error(t, err)
	require.Less(t, time.Since(start), time.Second)
}
