package notification

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/night-assist/assist-service/internal/config"
)

// SMSSender dispatches a text message. Dispatch is fire-and-forget for
// callers: failures are logged, never surfaced to the reporting citizen.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// HTTPSMSSender posts messages to an HTTP SMS gateway as a form payload.
type HTTPSMSSender struct {
	providerURL string
	apiKey      string
	from        string
	client      *http.Client
}

// NewHTTPSMSSender builds a sender for the configured provider.
func NewHTTPSMSSender(cfg config.SMSConfig) *HTTPSMSSender {
	return &HTTPSMSSender{
		providerURL: cfg.ProviderURL,
		apiKey:      cfg.APIKey,
		from:        cfg.FromNumber,
		client:      &http.Client{Timeout: cfg.Timeout()},
	}
}

// Send posts the message to the gateway.
func (s *HTTPSMSSender) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("to", to)
	form.Set("from", s.from)
	form.Set("body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.providerURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}
	return nil
}

// NoopSMSSender is used when no provider is configured; it only logs.
type NoopSMSSender struct {
	logger *zap.Logger
}

// NewNoopSMSSender builds the logging-only sender.
func NewNoopSMSSender(logger *zap.Logger) *NoopSMSSender {
	return &NoopSMSSender{logger: logger}
}

// Send logs the dispatch and succeeds.
func (s *NoopSMSSender) Send(_ context.Context, to, body string) error {
	s.logger.Info("sms dispatch skipped: no provider configured",
		zap.String("to", to),
		zap.Int("body_len", len(body)))
	return nil
}

// SenderFromConfig picks the HTTP sender when a provider URL is set and
// the noop sender otherwise.
func SenderFromConfig(cfg config.SMSConfig, logger *zap.Logger) SMSSender {
	if cfg.ProviderURL == "" {
		return NewNoopSMSSender(logger)
	}
	return NewHTTPSMSSender(cfg)
}
