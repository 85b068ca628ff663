// Package report sends server error reports to an external collection
// endpoint, retrying with exponential backoff and jitter. Reporting is
// best effort; a report that cannot be delivered is logged and dropped.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const maxRetries = 4

// Report is a single error report payload
type Report struct {
	Timestamp time.Time         `json:"timestamp"`
	Message   string            `json:"message"`
	Path      string            `json:"path,omitempty"`
	Method    string            `json:"method,omitempty"`
	Context   map[string]string `json:"context,omitempty"`
}

// Reporter delivers error reports to a collection endpoint
type Reporter struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewReporter creates a reporter for the given endpoint. A nil logger
// falls back to zap.NewNop. An empty endpoint yields a disabled reporter.
func NewReporter(endpoint string, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Enabled reports whether an endpoint is configured
func (r *Reporter) Enabled() bool {
	return r != nil && r.endpoint != ""
}

// Send delivers a report, retrying transient failures with exponential
// backoff. It blocks until delivered or retries are exhausted.
func (r *Reporter) Send(ctx context.Context, rep Report) error {
	if !r.Enabled() {
		return nil
	}
	if rep.Timestamp.IsZero() {
		rep.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to encode error report: %w", err)
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.client.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("report endpoint returned %d", resp.StatusCode)
		}
		if resp.StatusCode >= http.StatusBadRequest {
			// Client errors will not improve on retry
			return backoff.Permanent(fmt.Errorf("report endpoint rejected report: %d", resp.StatusCode))
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries),
		ctx,
	)
	return backoff.Retry(operation, policy)
}

// Async delivers a report in the background, logging delivery failures
func (r *Reporter) Async(rep Report) {
	if !r.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := r.Send(ctx, rep); err != nil {
			r.logger.Warn("error report delivery failed",
				zap.String("endpoint", r.endpoint),
				zap.Error(err),
			)
		}
	}()
}
