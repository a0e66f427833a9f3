package hexbot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Transport fetches the raw body at a URL. Implementations own any retry,
// timeout and connection policy.
type Transport interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// StatusError is returned by [HTTPTransport] for a non-200 response.
type StatusError struct {
	StatusCode int
	// Body holds the (size-limited) response body; the service explains
	// refused requests there.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// ///////////////////////////////////////////////
// HTTP Transport
// ///////////////////////////////////////////////

// maxResponseBytes caps a response body. 1000 dots with coordinates are
// well under 100 KiB.
const maxResponseBytes = 1 << 20

// HTTPOptions configures an [HTTPTransport].
type HTTPOptions struct {
	// Timeout bounds each attempt. Zero means 10 seconds.
	Timeout time.Duration
	// RetryMax is the number of retries after the first attempt for
	// connection errors, 429 and 5xx responses. Zero disables retries.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff between attempts.
	// Zero keeps the retryablehttp defaults.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// Logger receives retry diagnostics. Nil silences them.
	Logger *slog.Logger
}

// HTTPTransport is a [Transport] over go-retryablehttp.
type HTTPTransport struct {
	client *retryablehttp.Client
}

// NewHTTPTransport builds an HTTPTransport from opts.
func NewHTTPTransport(opts HTTPOptions) *HTTPTransport {
	c := retryablehttp.NewClient()
	c.RetryMax = opts.RetryMax
	// Hand the final response back so refused requests keep their body.
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if opts.RetryWaitMin > 0 {
		c.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		c.RetryWaitMax = opts.RetryWaitMax
	}
	c.HTTPClient.Timeout = 10 * time.Second
	if opts.Timeout > 0 {
		c.HTTPClient.Timeout = opts.Timeout
	}
	if opts.Logger != nil {
		c.Logger = opts.Logger
	} else {
		c.Logger = nil // suppress retryablehttp's default logging
	}
	return &HTTPTransport{client: c}
}

// DefaultTransport returns an HTTPTransport without retries.
func DefaultTransport() *HTTPTransport {
	return NewHTTPTransport(HTTPOptions{})
}

// Get issues a GET request and returns the body of a 200 response. Other
// statuses yield a [*StatusError] carrying the body.
func (t *HTTPTransport) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(body)) > maxResponseBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", maxResponseBytes)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
