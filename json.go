// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package botrpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/gorilla/rpc/v2/json2"
	"go.uber.org/zap"
)

const (
	controlAttempts     = 3
	controlBackoff      = 500 * time.Millisecond
	controlCallDeadline = 30 * time.Second
)

// CleanlyCloseBody drains and closes an HTTP response body to prevent
// HTTP/2 GOAWAY errors caused by closing bodies with unread data.
// See: https://github.com/golang/go/issues/46071
func CleanlyCloseBody(body io.ReadCloser) error {
	if body == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, body)
	return body.Close()
}

// errRetryableStatus marks a gateway answer worth another attempt
var errRetryableStatus = errors.New("botrpc: control plane unavailable")

// transient reports whether a failed control request may succeed if repeated.
func transient(err error) bool {
	switch {
	case errors.Is(err, errRetryableStatus),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.EPIPE):
		return true
	}
	return false
}

// ControlOption configures a control plane request
type ControlOption func(*controlOptions)

type controlOptions struct {
	headers http.Header
	logger  *zap.Logger
	client  *http.Client
}

// WithControlHeader adds a header to the request
func WithControlHeader(key, value string) ControlOption {
	return func(o *controlOptions) { o.headers.Add(key, value) }
}

// WithControlLogger logs retries on l
func WithControlLogger(l *zap.Logger) ControlOption {
	return func(o *controlOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithControlClient sends requests through c instead of a client private to
// the call.
func WithControlClient(c *http.Client) ControlOption {
	return func(o *controlOptions) {
		if c != nil {
			o.client = c
		}
	}
}

// CallControl invokes method (e.g. "Bot.SendPrivateMsg") on a gateway control
// plane at uri and decodes the result into reply. Resets, refusals, truncated
// answers and 502/503/504 are retried with exponential backoff.
func CallControl(
	ctx context.Context,
	uri *url.URL,
	method string,
	params any,
	reply any,
	options ...ControlOption,
) error {
	ops := controlOptions{
		headers: http.Header{},
		logger:  zap.NewNop(),
		client: &http.Client{
			Timeout:   controlCallDeadline,
			Transport: &http.Transport{DisableKeepAlives: true},
		},
	}
	for _, opt := range options {
		opt(&ops)
	}
	log := ops.logger.With(zap.String("method", method), zap.Stringer("uri", uri))

	body, err := json2.EncodeClientRequest(method, params)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	var lastErr error
	for attempt := range controlAttempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(controlBackoff << (attempt - 1)):
			}
		}
		lastErr = postControl(ctx, ops, uri, body, reply)
		if lastErr == nil || !transient(lastErr) {
			return lastErr
		}
		log.Debug("retrying control request", zap.Int("attempt", attempt+1), zap.Error(lastErr))
	}
	return fmt.Errorf("%s failed after %d attempts: %w", method, controlAttempts, lastErr)
}

// postControl makes a single attempt.
func postControl(ctx context.Context, ops controlOptions, uri *url.URL, body []byte, reply any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header = ops.headers.Clone()
	req.Header.Set("Content-Type", "application/json")

	resp, err := ops.client.Do(req)
	if err != nil {
		return err
	}
	defer CleanlyCloseBody(resp.Body)

	switch {
	case resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", errRetryableStatus, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("control plane answered status %d", resp.StatusCode)
	}
	if err := json2.DecodeClientResponse(resp.Body, reply); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
