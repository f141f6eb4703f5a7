package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const userAgent = "ReturnNotify-Go/0.1.0"

type gateway struct {
	name     string
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
}

// newGateway builds a JSON-over-HTTP client. perMinute > 0 paces requests
// with a token bucket; callers wait for a token rather than being dropped.
func newGateway(name, endpoint, apiKey string, timeoutSeconds, perMinute int) *gateway {
	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	g := &gateway{
		name:     name,
		endpoint: strings.TrimSpace(endpoint),
		apiKey:   strings.TrimSpace(apiKey),
		client:   &http.Client{Timeout: timeout},
	}
	if perMinute > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), max(1, perMinute/10))
	}
	return g
}

// post sends body as JSON and decodes a 2xx response into out when non-nil.
func (g *gateway) post(ctx context.Context, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", g.name, err)
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			gatewayRequestsTotal.WithLabelValues(g.name, "throttled").Inc()
			return fmt.Errorf("%s rate limit: %w", g.name, err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", g.name, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	gatewayRequestDuration.WithLabelValues(g.name).Observe(time.Since(start).Seconds())
	if err != nil {
		gatewayRequestsTotal.WithLabelValues(g.name, "error").Inc()
		return fmt.Errorf("send %s request: %w", g.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		gatewayRequestsTotal.WithLabelValues(g.name, "rejected").Inc()
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%s gateway returned %d: %s", g.name, resp.StatusCode, strings.TrimSpace(string(text)))
	}
	gatewayRequestsTotal.WithLabelValues(g.name, "ok").Inc()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", g.name, err)
	}
	return nil
}
