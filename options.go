package moviekeep

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to
// discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviekeep/moviekeep/internal/calendar"
	"github.com/moviekeep/moviekeep/internal/store"
)

// Option configures a Client during construction in New.
// Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used for
// catalog requests. Prefer per-request context deadlines where
// possible; this is a coarse safety net. Must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each catalog
// request/response is dumped to the log when enabled is true. Do not
// enable in production; dumps include the API key.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			base := c.http.Transport
			if base == nil {
				base = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: base}
		}
		return nil
	}
}

// WithStore overrides the record store the Config would select.
func WithStore(s store.Store) Option {
	return func(c *Client) error {
		if s == nil {
			return fmt.Errorf("store must not be nil")
		}
		c.store = s
		return nil
	}
}

// WithCalendarGateway overrides the calendar capability the Config
// would select. Pass calendar.Unavailable{} to model a platform without
// calendar integration.
func WithCalendarGateway(gw calendar.Gateway) Option {
	return func(c *Client) error {
		if gw == nil {
			return fmt.Errorf("calendar gateway must not be nil")
		}
		c.cal = gw
		return nil
	}
}

// WithNotifier routes transient user notices (calendar unavailable,
// event creation failed, ...) to n instead of the log.
func WithNotifier(n Notifier) Option {
	return func(c *Client) error {
		if n == nil {
			return fmt.Errorf("notifier must not be nil")
		}
		c.notify = n
		return nil
	}
}

// WithLogger replaces the component logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}
