package signature

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/vui-gateway/internal/domain"
	"github.com/seu-repo/vui-gateway/internal/observability/telemetry"
	"github.com/seu-repo/vui-gateway/internal/ports"
)

// HTTPFetcher retrieves certificate material over a shared HTTP client
// guarded by a circuit breaker, so a flapping certificate host fails
// fast instead of stalling every webhook call.
type HTTPFetcher struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func NewHTTPFetcher(timeout time.Duration, log *zap.Logger) ports.CertificateFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "certificate-fetch",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Certificate fetch circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		breaker: cb,
		log:     log,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := f.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		telemetry.CertificateFetchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: fetch certificate from %s: %v", domain.ErrNetwork, url, err)
	}
	telemetry.CertificateFetchesTotal.WithLabelValues("ok").Inc()
	return body.([]byte), nil
}
