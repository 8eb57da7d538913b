package hotelapi

//go:generate go run go.uber.org/mock/mockgen -source=./client.go -destination=./mocks/client_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"frontdesk/config"
	"frontdesk/infras/otel"
	"frontdesk/shared/constant"
	"frontdesk/shared/failure"
)

// Client is the JSON round-trip client for the hotel backend REST API. Every
// mutation of bookings, rooms, customers, invoices and payments goes through
// it; the backend stays the single source of truth.
type Client interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

type clientImpl struct {
	baseURL string
	http    *http.Client
	otel    otel.Otel
}

func New(config *config.Config, ot otel.Otel) Client {
	baseURL := strings.TrimRight(config.Backend.BaseURL, "/")

	log.Info().
		Str("baseURL", baseURL).
		Int("timeoutSeconds", config.Backend.TimeoutSeconds).
		Msg("Hotel backend client initialized")

	return &clientImpl{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: time.Duration(config.Backend.TimeoutSeconds) * time.Second,
		},
		otel: ot,
	}
}

func (c *clientImpl) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *clientImpl) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *clientImpl) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *clientImpl) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *clientImpl) do(ctx context.Context, method, path string, query url.Values, body, out any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+"."+method)
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelBackendPathAttribute, path)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to marshal request body")

			return fmt.Errorf("failed to marshal request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build backend request: %w", err)
	}

	if body != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")

		return failure.Network(err) //nolint:wrapcheck
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure.Network(err) //nolint:wrapcheck
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := errorMessage(raw, resp.StatusCode)

		log.Error().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("message", msg).
			Msg("backend returned non-success status")

		return failure.Upstream(resp.StatusCode, msg) //nolint:wrapcheck
	}

	if out != nil && len(raw) > 0 {
		if err = json.Unmarshal(raw, out); err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to decode backend response")

			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}

	return nil
}

// errorMessage extracts a human-readable reason from a failure body. Some
// backend endpoints answer plain text, others JSON, so parsing is best-effort.
func errorMessage(raw []byte, status int) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}

		if envelope.Error != "" {
			return envelope.Error
		}
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}

	return http.StatusText(status)
}
