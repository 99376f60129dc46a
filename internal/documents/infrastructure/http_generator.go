// Package infrastructure contains document generator adapters.
package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	"github.com/felixgeelhaar/tribunal/internal/documents/domain"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
)

// HTTPConfig configures the rendering service client.
type HTTPConfig struct {
	BaseURL string
	Timeout time.Duration
	// BreakerFailures is the number of consecutive failures that opens the
	// breaker.
	BreakerFailures uint32
	// BreakerOpenDelay is how long the breaker stays open before probing.
	BreakerOpenDelay time.Duration
}

type renderRequest struct {
	TemplateID string `json:"template_id"`
	Filename   string `json:"filename"`
	CaseID     string `json:"case_id,omitempty"`
	Payload    any    `json:"payload"`
}

// HTTPGenerator posts payloads to the rendering service.
type HTTPGenerator struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[caserecord.DocumentLink]
	logger  *slog.Logger
}

var _ domain.Generator = (*HTTPGenerator)(nil)

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("document generator returned %d: %s", e.code, e.body)
}

// NewHTTPGenerator creates a client guarded by a circuit breaker.
func NewHTTPGenerator(cfg HTTPConfig, logger *slog.Logger) *HTTPGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}

	g := &HTTPGenerator{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
	g.breaker = gobreaker.NewCircuitBreaker[caserecord.DocumentLink](gobreaker.Settings{
		Name:    "docgen",
		Timeout: cfg.BreakerOpenDelay,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		// Rejected payloads say nothing about the service's health.
		IsSuccessful: func(err error) bool {
			var se *statusError
			return err == nil || (errors.As(err, &se) && se.code < 500)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return g
}

// Generate renders req and returns the stored document link.
func (g *HTTPGenerator) Generate(ctx context.Context, req domain.Request) (caserecord.DocumentLink, error) {
	link, err := g.breaker.Execute(func() (caserecord.DocumentLink, error) {
		return g.post(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return caserecord.DocumentLink{}, fmt.Errorf("%w: %v", domain.ErrGeneratorUnavailable, err)
	}
	if err != nil {
		return caserecord.DocumentLink{}, fmt.Errorf("generate %s: %w", req.TemplateID, err)
	}
	if link.Filename == "" {
		link.Filename = req.Filename
	}
	return link, nil
}

// State reports the breaker state for health checks.
func (g *HTTPGenerator) State() gobreaker.State {
	return g.breaker.State()
}

// Ping fails while the breaker is open.
func (g *HTTPGenerator) Ping(context.Context) error {
	if g.breaker.State() == gobreaker.StateOpen {
		return domain.ErrGeneratorUnavailable
	}
	return nil
}

func (g *HTTPGenerator) post(ctx context.Context, req domain.Request) (caserecord.DocumentLink, error) {
	body, err := json.Marshal(renderRequest{
		TemplateID: req.TemplateID,
		Filename:   req.Filename,
		CaseID:     req.CaseID,
		Payload:    req.Payload,
	})
	if err != nil {
		return caserecord.DocumentLink{}, fmt.Errorf("encode payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/documents", bytes.NewReader(body))
	if err != nil {
		return caserecord.DocumentLink{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if id := observability.CorrelationIDFromContext(ctx); id != "" {
		httpReq.Header.Set("X-Correlation-ID", id)
	}

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return caserecord.DocumentLink{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return caserecord.DocumentLink{}, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(msg))}
	}

	var link caserecord.DocumentLink
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return caserecord.DocumentLink{}, fmt.Errorf("decode response: %w", err)
	}

	g.logger.DebugContext(ctx, "document generated",
		"template_id", req.TemplateID,
		"case_id", req.CaseID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return link, nil
}
