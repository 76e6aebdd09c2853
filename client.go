// Package moviekeep is a movie catalog/tracker SDK: it browses a
// paginated movie catalog, tracks watched / want-to-watch state per
// movie, and schedules viewing sessions optionally mirrored into a
// calendar. The Tracker owns the authoritative in-memory record map;
// presentation layers consume it through its read methods and invoke
// its mutations.
package moviekeep

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/moviekeep/moviekeep/internal/calendar"
	"github.com/moviekeep/moviekeep/internal/store"
	"github.com/moviekeep/moviekeep/internal/writequeue"
)

// Client owns the wired subsystems: durable record store, calendar
// gateway, coalescing persistence writer, and the HTTP client used by
// catalog browsers. Construct one per process and share it; never reach
// for ambient globals.
type Client struct {
	cfg     Config
	http    *http.Client
	log     zerolog.Logger
	store   store.Store
	cal     calendar.Gateway
	notify  Notifier
	writer  writer
	tracker *Tracker

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client from cfg. Additional options can be provided
// via functional arguments. A missing API key is not an error here: the
// catalog layer rejects requests with ErrMissingAPIKey at first use.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
		log:  zlog.With().Str("component", "moviekeep").Logger(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.store == nil {
		st, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		c.store = st
	}
	if c.cal == nil {
		gw, err := openCalendar(cfg, c.log)
		if err != nil {
			return nil, err
		}
		c.cal = gw
	}
	if c.notify == nil {
		c.notify = logNotifier{log: c.log}
	}
	if c.writer == nil {
		c.writer = newDefaultWriter(c.log)
	}

	c.tracker = newTracker(c.store, c.writer, c.cal, cfg.DefaultCalendar, c.notify, c.log)

	// Initial load must not block construction; until it settles the
	// tracker reports Loading and serves an empty map.
	go c.tracker.Load(context.Background())

	return c, nil
}

// Tracker returns the record reconciliation core.
func (c *Client) Tracker() *Tracker { return c.tracker }

// NewBrowser returns a fresh catalog browser (one per screen instance).
func (c *Client) NewBrowser() *Browser {
	return newBrowser(c.http, c.cfg, c.log)
}

// Flush blocks until every record mutation submitted so far has reached
// the durable store.
func (c *Client) Flush(ctx context.Context) error {
	return c.writer.Flush(ctx)
}

// Close drains pending persistence writes and releases the store.
// Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.writer != nil {
		c.writer.Stop()
	}
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}

// newDefaultWriter constructs the coalescing write queue with env-tuned
// defaults; write failures are logged, never surfaced to mutations.
func newDefaultWriter(log zerolog.Logger) *writequeue.Queue {
	cfg, err := writequeue.LoadConfig()
	if err != nil {
		log.Warn().Err(err).Msg("invalid WQ_ environment, using defaults")
		cfg = writequeue.Config{}
	}
	cfg.ErrorHandler = func(err error) {
		log.Warn().Err(err).Msg("record persistence failed; in-memory state remains authoritative")
	}
	return writequeue.New(cfg)
}

func openStore(cfg Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "", "file":
		return store.NewFileStore(cfg.StorePath)
	case "sqlite":
		return store.OpenSQLite(context.Background(), cfg.StorePath)
	case "memory":
		return store.NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openCalendar(cfg Config, log zerolog.Logger) (calendar.Gateway, error) {
	if cfg.CalendarDir == "" {
		return calendar.Unavailable{}, nil
	}
	return calendar.NewICSGateway(cfg.CalendarDir, log)
}
