// Package api is the HTTP facade over the CapFlow REST backend. It owns the
// JSON plumbing and the conversion of non-2xx responses into the error
// taxonomy; resource clients (ProductosClient, MaquinasClient) sit on top.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"capflow/internal/apierror"

	"github.com/rs/zerolog/log"
)

// Client talks to the backend. All requests send and expect JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *Breaker
}

// NewClient builds a facade against baseURL. The breaker is optional; when
// nil, requests go straight through.
func NewClient(baseURL string, timeout time.Duration, breaker *Breaker) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
	}
}

// do performs one JSON round trip. A nil body sends no payload; a nil out
// discards the response. HTTP 204 resolves with no payload regardless of out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.breaker == nil {
		return c.roundTrip(ctx, method, path, body, out)
	}

	// Only transport failures feed the breaker: a non-2xx status means the
	// backend answered, so it must not trip the circuit.
	var result error
	err := c.breaker.Execute(func() error {
		result = c.roundTrip(ctx, method, path, body, out)
		var httpErr *apierror.HTTPError
		if errors.As(result, &httpErr) {
			return nil
		}
		return result
	})
	if errors.Is(err, ErrBackendNoDisponible) {
		return err
	}
	return result
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return toHTTPError(resp)
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// toHTTPError converts a non-2xx response into an HTTPError carrying the
// server's "message" field when present, else a generic status line.
func toHTTPError(resp *http.Response) error {
	mensaje := fmt.Sprintf("Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(raw) > 0 {
		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &envelope) == nil && envelope.Message != "" {
			mensaje = envelope.Message
		}
	}
	return &apierror.HTTPError{Status: resp.StatusCode, Mensaje: mensaje}
}
