package moviekeep

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviekeep/moviekeep/internal/tmdb"
	"github.com/moviekeep/moviekeep/internal/types"
)

// BrowseMode selects which catalog feed a browser is driving.
type BrowseMode int

const (
	// ModePopular pages through the popular-movies listing.
	ModePopular BrowseMode = iota
	// ModeSearch pages through results for the active query.
	ModeSearch
)

func (m BrowseMode) String() string {
	switch m {
	case ModePopular:
		return "popular"
	case ModeSearch:
		return "search"
	default:
		return "unknown"
	}
}

// User-facing load failures. The empty-search message doubles as the
// empty state for a legitimate zero-result search.
const (
	msgLoadFailed   = "Could not load movies. Try again later."
	msgSearchFailed = "Could not search movies right now."
	msgNoResults    = "No movies found for this search."
)

// BrowseSnapshot is a consistent copy of the browser state for
// presentation. Movies preserve server order and accumulate across
// pages until a non-append load replaces them.
type BrowseSnapshot struct {
	Mode        BrowseMode
	Page        int
	TotalPages  int
	Movies      []Movie
	Query       string
	ActiveQuery string
	Loading     bool
	LoadingMore bool
	Refreshing  bool
	ErrMsg      string
}

// Browser drives the catalog across pages for one screen instance and
// race-guards overlapping search requests as the user types. Loads
// block the calling goroutine; run them concurrently if the surface
// needs it — every response is applied under the state lock and stale
// search responses are discarded by sequence number.
type Browser struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	log        zerolog.Logger

	// seq tags search issuances; a response is applied only while its
	// tag is still the latest. This is the only cancellation mechanism.
	seq atomic.Uint64

	mu          sync.Mutex
	mode        BrowseMode
	page        int
	totalPages  int
	movies      []Movie
	query       string
	activeQuery string
	loading     bool
	loadingMore bool
	refreshing  bool
	errMsg      string

	debounceInterval time.Duration
	debounce         *time.Timer

	// OnChange, when set before the first load, is invoked with a fresh
	// snapshot after every state commit. Called without the state lock.
	OnChange func(BrowseSnapshot)

	// test seams; default to the tmdb package
	fetchPopular func(ctx context.Context, page int) (*types.PageResult, error)
	search       func(ctx context.Context, query string, page int) (*types.PageResult, error)
}

func newBrowser(httpClient *http.Client, cfg Config, log zerolog.Logger) *Browser {
	b := &Browser{
		httpClient:       httpClient,
		baseURL:          cfg.BaseURL,
		apiKey:           cfg.APIKey,
		language:         cfg.Language,
		log:              log.With().Str("component", "browser").Logger(),
		page:             1,
		totalPages:       1,
		debounceInterval: cfg.SearchDebounce,
	}
	b.fetchPopular = func(ctx context.Context, page int) (*types.PageResult, error) {
		return tmdb.FetchPopular(ctx, b.httpClient, b.baseURL, b.apiKey, b.language, page)
	}
	b.search = func(ctx context.Context, query string, page int) (*types.PageResult, error) {
		return tmdb.Search(ctx, b.httpClient, b.baseURL, b.apiKey, b.language, query, page)
	}
	return b
}

// Start loads page 1 of the popular listing.
func (b *Browser) Start(ctx context.Context) {
	b.loadPopular(ctx, 1, false, false)
}

// SetQuery records what the user typed. After the debounce interval
// with no further edits the query takes effect: empty text cancels any
// in-flight search and returns to the popular listing; new non-empty
// text issues a fresh search.
func (b *Browser) SetQuery(ctx context.Context, text string) {
	b.mu.Lock()
	b.query = text
	if b.debounce != nil {
		b.debounce.Stop()
	}
	b.debounce = time.AfterFunc(b.debounceInterval, func() {
		b.applyQuery(ctx)
	})
	b.mu.Unlock()
}

// Search applies a query immediately, bypassing the debounce. Useful
// for submit-style surfaces (the CLI, an on-screen search button).
func (b *Browser) Search(ctx context.Context, text string) {
	b.mu.Lock()
	b.query = text
	if b.debounce != nil {
		b.debounce.Stop()
	}
	b.mu.Unlock()
	b.applyQuery(ctx)
}

// Refresh reissues page 1 of the active mode, replacing accumulated
// items.
func (b *Browser) Refresh(ctx context.Context) {
	b.mu.Lock()
	mode, query := b.mode, b.activeQuery
	b.mu.Unlock()

	if mode == ModeSearch && query != "" {
		b.performSearch(ctx, query, 1, false, true)
		return
	}
	b.loadPopular(ctx, 1, false, true)
}

// LoadMore fetches the next page of the active mode and appends it.
// Re-entrant calls while a load is in flight, and calls past the last
// page, are ignored.
func (b *Browser) LoadMore(ctx context.Context) {
	b.mu.Lock()
	if b.loading || b.loadingMore || b.page >= b.totalPages {
		b.mu.Unlock()
		return
	}
	mode, query, next := b.mode, b.activeQuery, b.page+1
	b.mu.Unlock()

	if mode == ModeSearch {
		if query == "" {
			return
		}
		b.performSearch(ctx, query, next, true, false)
		return
	}
	b.loadPopular(ctx, next, true, false)
}

// Snapshot returns a consistent copy of the current state.
func (b *Browser) Snapshot() BrowseSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Close stops the pending debounce timer, if any.
func (b *Browser) Close() {
	b.mu.Lock()
	if b.debounce != nil {
		b.debounce.Stop()
	}
	b.mu.Unlock()
}

// ------------------------- internals -------------------------

func (b *Browser) applyQuery(ctx context.Context) {
	b.mu.Lock()
	trimmed := strings.TrimSpace(b.query)
	if trimmed == "" {
		// Invalidate any in-flight search before leaving search mode.
		b.seq.Add(1)
		wasSearching := b.mode == ModeSearch
		b.mode = ModePopular
		b.activeQuery = ""
		b.mu.Unlock()
		if wasSearching {
			b.loadPopular(ctx, 1, false, false)
		}
		return
	}
	if trimmed == b.activeQuery {
		b.mu.Unlock()
		return
	}
	b.mode = ModeSearch
	b.activeQuery = trimmed
	b.mu.Unlock()
	b.performSearch(ctx, trimmed, 1, false, false)
}

func (b *Browser) loadPopular(ctx context.Context, page int, appendMode, refreshing bool) {
	b.beginLoad(appendMode, refreshing)

	res, err := b.fetchPopular(ctx, page)

	b.mu.Lock()
	defer b.endLoadLocked(appendMode)
	if err != nil {
		b.log.Warn().Err(err).Int("page", page).Msg("could not load catalog")
		b.errMsg = msgLoadFailed
		if !appendMode {
			b.movies = nil
		}
		return
	}
	b.applyPageLocked(res, appendMode)
}

func (b *Browser) performSearch(ctx context.Context, query string, page int, appendMode, refreshing bool) {
	tag := b.seq.Add(1)
	b.beginLoad(appendMode, refreshing)

	res, err := b.search(ctx, query, page)

	b.mu.Lock()
	if b.seq.Load() != tag {
		// Superseded while in flight; a newer request owns the state
		// now, including the loading flags.
		b.mu.Unlock()
		return
	}
	defer b.endLoadLocked(appendMode)
	if err != nil {
		b.log.Warn().Err(err).Str("query", query).Int("page", page).Msg("search failed")
		b.errMsg = msgSearchFailed
		if !appendMode {
			b.movies = nil
		}
		return
	}
	b.applyPageLocked(res, appendMode)
	if !appendMode && len(res.Results) == 0 {
		b.errMsg = msgNoResults
	}
}

func (b *Browser) beginLoad(appendMode, refreshing bool) {
	b.mu.Lock()
	b.errMsg = ""
	if appendMode {
		b.loadingMore = true
	} else {
		b.loading = true
	}
	if refreshing {
		b.refreshing = true
	}
	snap := b.snapshotLocked()
	b.mu.Unlock()
	b.notify(snap)
}

// endLoadLocked clears the loading flags and emits OnChange. Must be
// called with the state lock held; it releases the lock.
func (b *Browser) endLoadLocked(appendMode bool) {
	if appendMode {
		b.loadingMore = false
	} else {
		b.loading = false
	}
	b.refreshing = false
	snap := b.snapshotLocked()
	b.mu.Unlock()
	b.notify(snap)
}

func (b *Browser) applyPageLocked(res *types.PageResult, appendMode bool) {
	if appendMode {
		b.movies = append(b.movies, res.Results...)
	} else {
		b.movies = res.Results
	}
	b.page = res.Page
	b.totalPages = res.TotalPages
}

func (b *Browser) snapshotLocked() BrowseSnapshot {
	movies := make([]Movie, len(b.movies))
	copy(movies, b.movies)
	return BrowseSnapshot{
		Mode:        b.mode,
		Page:        b.page,
		TotalPages:  b.totalPages,
		Movies:      movies,
		Query:       b.query,
		ActiveQuery: b.activeQuery,
		Loading:     b.loading,
		LoadingMore: b.loadingMore,
		Refreshing:  b.refreshing,
		ErrMsg:      b.errMsg,
	}
}

func (b *Browser) notify(snap BrowseSnapshot) {
	if b.OnChange != nil {
		b.OnChange(snap)
	}
}
