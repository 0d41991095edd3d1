package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type retryTransport struct {
	attempts  uint
	opts      []retry.Option
	transport http.RoundTripper
}

type retryableStatusError struct {
	StatusCode int
}

func (e *retryableStatusError) Error() string {
	return fmt.Sprintf("retryable status %d", e.StatusCode)
}

// IsRetryableStatus reports whether a response status is worth another attempt.
func IsRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	var (
		resp    *http.Response
		attempt uint
	)

	// attempts, context and hooks are appended last so they override caller options
	opts := make([]retry.Option, 0, len(t.opts)+4)
	opts = append(opts, t.opts...)
	opts = append(opts,
		retry.Attempts(t.attempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "retrying outbound request",
				zap.String("url", req.URL.String()),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)

	err := retry.Do(func() error {
		attempt++

		attemptReq := req
		if attempt > 1 && req.Body != nil {
			if req.GetBody == nil {
				return retry.Unrecoverable(fmt.Errorf("request body cannot be replayed"))
			}
			body, err := req.GetBody()
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("replay request body: %w", err))
			}
			attemptReq = req.Clone(ctx)
			attemptReq.Body = body
		}

		r, err := t.transport.RoundTrip(attemptReq)
		if err != nil {
			return err
		}

		if IsRetryableStatus(r.StatusCode) && attempt < t.attempts {
			io.Copy(io.Discard, r.Body)
			r.Body.Close()
			return &retryableStatusError{StatusCode: r.StatusCode}
		}

		resp = r
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// WithRetry retries network failures, 429 and 5xx responses. The last
// attempt's response is returned as is, so callers still see the real status.
func WithRetry(attempts uint, opts ...retry.Option) HttpOpts {
	if attempts == 0 {
		attempts = 1
	}
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &retryTransport{
			attempts:  attempts,
			opts:      opts,
			transport: rt,
		}
	})
}
