package hexbot

import (
	"context"
	"errors"
	"log/slog"
)

// Client fetches colors from a Hexbot endpoint.
type Client struct {
	endpoint  string
	transport Transport
	logger    *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithEndpoint replaces [DefaultEndpoint].
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithTransport replaces [DefaultTransport].
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithLogger sets the logger for request diagnostics. The default is
// [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a Client for [DefaultEndpoint] over [DefaultTransport]
// unless opts say otherwise.
func NewClient(opts ...Option) *Client {
	c := &Client{endpoint: DefaultEndpoint}
	for _, o := range opts {
		o(c)
	}
	if c.transport == nil {
		c.transport = DefaultTransport()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Endpoint returns the endpoint requests are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

// URL returns the URL [Client.Fetch] requests for req.
func (c *Client) URL(req Request) string { return req.URL(c.endpoint) }

// Fetch requests colors for req and decodes the reply.
//
// A transport failure is returned as a [*TransportError]. When the failure
// is a [*StatusError] whose body holds a service message, a
// [*ServiceError] is returned instead. Payload problems yield a
// [*DecodeError] or [*ServiceError] as described for [Decode].
func (c *Client) Fetch(ctx context.Context, req Request) (*Hexbot, error) {
	url := c.URL(req)
	c.logger.Debug("fetching colors", "url", url)

	body, err := c.transport.Get(ctx, url)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && len(se.Body) > 0 {
			var svc *ServiceError
			if _, decErr := Decode(se.Body); errors.As(decErr, &svc) {
				c.logger.Debug("service refused request", "status", se.StatusCode, "message", svc.Message)
				return nil, svc
			}
		}
		return nil, &TransportError{URL: url, Err: err}
	}

	hb, err := Decode(body)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("decoded colors", "count", hb.Len(), "coordinates", hb.HasCoordinates())
	return hb, nil
}
