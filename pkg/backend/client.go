package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kiarashop/storefront/pkg/config"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
	"github.com/kiarashop/storefront/pkg/metrics"
)

// TokenSource yields the current bearer token, or "" for anonymous calls.
type TokenSource interface {
	Token() string
}

// Client talks to the remote storefront REST API. It owns transport-level
// error mapping; domain packages wrap its typed operations.
type Client struct {
	apiRoot string
	http    *http.Client
	tokens  TokenSource
	metrics *metrics.RequestMetrics
}

// New builds a client against the configured backend.
func New(cfg config.BackendConfig, tokens TokenSource, m *metrics.RequestMetrics) *Client {
	return &Client{
		apiRoot: cfg.APIRoot(),
		http:    &http.Client{Timeout: cfg.Timeout},
		tokens:  tokens,
		metrics: m,
	}
}

type callOptions struct {
	operation string
	method    string
	path      string
	body      any
	out       any
	// anonymous suppresses the Authorization header even when a token exists.
	anonymous bool
}

func (c *Client) call(ctx context.Context, opts callOptions) error {
	var reqBody io.Reader
	if opts.body != nil {
		encoded, err := json.Marshal(opts.body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, opts.method, c.apiRoot+opts.path, reqBody)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if opts.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !opts.anonymous && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.IncBackendCall(opts.operation, "network_error")
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "calling storefront api")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.IncBackendCall(opts.operation, "rejected")
		return c.rejectionError(resp)
	}

	if opts.out != nil {
		if err := json.NewDecoder(resp.Body).Decode(opts.out); err != nil {
			c.metrics.IncBackendCall(opts.operation, "decode_error")
			return pkgerrors.Wrap(pkgerrors.CodeServerRejected, err, "decoding storefront response")
		}
	}

	c.metrics.IncBackendCall(opts.operation, "success")
	return nil
}

// rejectionError relays the server's own message when one is present; error
// bodies arrive either as {"message": ...} JSON or plain text.
func (c *Client) rejectionError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	message := serverMessage(raw)

	switch resp.StatusCode {
	case http.StatusNotFound:
		if message == "" {
			message = "resource not found"
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	case http.StatusUnauthorized, http.StatusForbidden:
		if message == "" {
			message = "authentication required"
		}
		return pkgerrors.New(pkgerrors.CodeUnauthorized, message)
	}

	if message == "" {
		message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	return pkgerrors.New(pkgerrors.CodeServerRejected, message).WithDetails(map[string]any{
		"status": resp.StatusCode,
	})
}

func serverMessage(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return ""
	}
	return trimmed
}
