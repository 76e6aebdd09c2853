package moviekeep

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviekeep/moviekeep/internal/types"
)

func newTestBrowser(debounce time.Duration) *Browser {
	cfg := Config{BaseURL: "http://unused.invalid", APIKey: "k", Language: "en-US", SearchDebounce: debounce}
	return newBrowser(http.DefaultClient, cfg, zerolog.Nop())
}

func pageOf(page, totalPages int, titles ...string) *types.PageResult {
	res := &types.PageResult{Page: page, TotalPages: totalPages}
	for i, title := range titles {
		res.Results = append(res.Results, Movie{ID: page*100 + i, Title: title})
	}
	return res
}

// callCounter is a thread-safe record of stubbed fetches.
type callCounter struct {
	mu    sync.Mutex
	calls []string
}

func (c *callCounter) add(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

func (c *callCounter) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func TestBrowserStart(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	b.fetchPopular = func(_ context.Context, page int) (*types.PageResult, error) {
		return pageOf(page, 3, "Heat", "Ran"), nil
	}

	b.Start(context.Background())

	snap := b.Snapshot()
	assert.Equal(t, ModePopular, snap.Mode)
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, 3, snap.TotalPages)
	assert.False(t, snap.Loading)
	require.Len(t, snap.Movies, 2)
	assert.Equal(t, "Heat", snap.Movies[0].Title)
	assert.Equal(t, "Ran", snap.Movies[1].Title)
}

func TestBrowserStart_FailureSetsMessage(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	b.fetchPopular = func(context.Context, int) (*types.PageResult, error) {
		return nil, errors.New("connection refused")
	}

	b.Start(context.Background())

	snap := b.Snapshot()
	assert.Equal(t, msgLoadFailed, snap.ErrMsg)
	assert.Empty(t, snap.Movies)
	assert.False(t, snap.Loading)
}

func TestBrowserSearch(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	b.search = func(_ context.Context, query string, page int) (*types.PageResult, error) {
		return pageOf(page, 1, "Heat"), nil
	}

	b.Search(context.Background(), "  heat  ")

	snap := b.Snapshot()
	assert.Equal(t, ModeSearch, snap.Mode)
	assert.Equal(t, "heat", snap.ActiveQuery, "query is trimmed before use")
	require.Len(t, snap.Movies, 1)
	assert.Empty(t, snap.ErrMsg)
}

func TestBrowserSearch_StaleResponseDiscarded(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	entered := make(chan struct{})
	release := make(chan struct{})
	b.search = func(_ context.Context, query string, page int) (*types.PageResult, error) {
		if query == "a" {
			close(entered)
			<-release
			return pageOf(page, 1, "A result"), nil
		}
		return pageOf(page, 1, "AB result"), nil
	}

	ctx := context.Background()
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Search(ctx, "a")
	}()
	<-entered

	// A newer search lands while the first is still in flight.
	b.Search(ctx, "ab")
	close(release)
	<-done

	snap := b.Snapshot()
	assert.Equal(t, "ab", snap.ActiveQuery)
	require.Len(t, snap.Movies, 1)
	assert.Equal(t, "AB result", snap.Movies[0].Title, "late response for the old query must not overwrite the new results")
	assert.False(t, snap.Loading, "a discarded response must not touch the loading flag")
}

func TestBrowserSetQuery_Debounces(t *testing.T) {
	b := newTestBrowser(20 * time.Millisecond)
	calls := &callCounter{}
	b.search = func(_ context.Context, query string, page int) (*types.PageResult, error) {
		calls.add(query)
		return pageOf(page, 1, "Result"), nil
	}

	ctx := context.Background()
	b.SetQuery(ctx, "a")
	b.SetQuery(ctx, "ab")
	b.SetQuery(ctx, "abc")

	require.Eventually(t, func() bool {
		return b.Snapshot().ActiveQuery == "abc"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"abc"}, calls.all(), "rapid edits collapse into one search")
}

func TestBrowserEmptyQuery_ReturnsToPopular(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	popular := &callCounter{}
	b.fetchPopular = func(_ context.Context, page int) (*types.PageResult, error) {
		popular.add("popular")
		return pageOf(page, 1, "Heat"), nil
	}
	b.search = func(_ context.Context, query string, page int) (*types.PageResult, error) {
		return pageOf(page, 1, "Result"), nil
	}

	ctx := context.Background()
	b.Start(ctx)
	b.Search(ctx, "heat")
	b.Search(ctx, "   ")

	snap := b.Snapshot()
	assert.Equal(t, ModePopular, snap.Mode)
	assert.Empty(t, snap.ActiveQuery)
	assert.Len(t, popular.all(), 2, "clearing an active search reloads the popular listing")
	require.Len(t, snap.Movies, 1)
	assert.Equal(t, "Heat", snap.Movies[0].Title)
}

func TestBrowserEmptyQuery_NoReloadWhenNotSearching(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	popular := &callCounter{}
	b.fetchPopular = func(_ context.Context, page int) (*types.PageResult, error) {
		popular.add("popular")
		return pageOf(page, 1, "Heat"), nil
	}

	ctx := context.Background()
	b.Start(ctx)
	b.Search(ctx, "")

	assert.Len(t, popular.all(), 1, "clearing while already on popular must not refetch")
}

func TestBrowserSearch_SameQueryNotReissued(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	calls := &callCounter{}
	b.search = func(_ context.Context, query string, page int) (*types.PageResult, error) {
		calls.add(query)
		return pageOf(page, 1, "Result"), nil
	}

	ctx := context.Background()
	b.Search(ctx, "heat")
	b.Search(ctx, " heat ")

	assert.Equal(t, []string{"heat"}, calls.all())
}

func TestBrowserSearch_NoResultsMessage(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	b.search = func(_ context.Context, query string, page int) (*types.PageResult, error) {
		return pageOf(page, 1), nil
	}

	b.Search(context.Background(), "zzzz")

	snap := b.Snapshot()
	assert.Empty(t, snap.Movies)
	assert.Equal(t, msgNoResults, snap.ErrMsg)
}

func TestBrowserSearch_FailureSetsMessage(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	b.search = func(context.Context, string, int) (*types.PageResult, error) {
		return nil, errors.New("timeout")
	}

	b.Search(context.Background(), "heat")

	snap := b.Snapshot()
	assert.Equal(t, msgSearchFailed, snap.ErrMsg)
	assert.Empty(t, snap.Movies)
}

func TestBrowserLoadMore_AppendsInOrder(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	b.fetchPopular = func(_ context.Context, page int) (*types.PageResult, error) {
		switch page {
		case 1:
			return pageOf(1, 2, "First", "Second"), nil
		default:
			return pageOf(2, 2, "Third"), nil
		}
	}

	ctx := context.Background()
	b.Start(ctx)
	b.LoadMore(ctx)

	snap := b.Snapshot()
	assert.Equal(t, 2, snap.Page)
	require.Len(t, snap.Movies, 3)
	assert.Equal(t, "First", snap.Movies[0].Title)
	assert.Equal(t, "Third", snap.Movies[2].Title)

	// Already on the last page; further calls are ignored.
	b.LoadMore(ctx)
	assert.Len(t, b.Snapshot().Movies, 3)
}

func TestBrowserLoadMore_IgnoredWhileInFlight(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	popular := &callCounter{}
	entered := make(chan struct{})
	release := make(chan struct{})
	b.fetchPopular = func(_ context.Context, page int) (*types.PageResult, error) {
		popular.add("popular")
		if page == 2 {
			close(entered)
			<-release
		}
		return pageOf(page, 5, "Movie"), nil
	}

	ctx := context.Background()
	b.Start(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.LoadMore(ctx)
	}()
	<-entered
	b.LoadMore(ctx) // re-entrant call while page 2 is in flight
	close(release)
	<-done

	assert.Len(t, popular.all(), 2, "only the initial load and one LoadMore may fetch")
}

func TestBrowserRefresh_ReplacesAccumulatedItems(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	b.fetchPopular = func(_ context.Context, page int) (*types.PageResult, error) {
		if page == 1 {
			return pageOf(1, 2, "Fresh"), nil
		}
		return pageOf(2, 2, "More"), nil
	}

	ctx := context.Background()
	b.Start(ctx)
	b.LoadMore(ctx)
	require.Len(t, b.Snapshot().Movies, 2)

	b.Refresh(ctx)

	snap := b.Snapshot()
	assert.Equal(t, 1, snap.Page)
	require.Len(t, snap.Movies, 1)
	assert.Equal(t, "Fresh", snap.Movies[0].Title)
	assert.False(t, snap.Refreshing)
}

func TestBrowserOnChange_SeesLoadingTransitions(t *testing.T) {
	b := newTestBrowser(time.Millisecond)
	b.fetchPopular = func(_ context.Context, page int) (*types.PageResult, error) {
		return pageOf(page, 1, "Heat"), nil
	}
	var snaps []BrowseSnapshot
	b.OnChange = func(snap BrowseSnapshot) { snaps = append(snaps, snap) }

	b.Start(context.Background())

	require.Len(t, snaps, 2)
	assert.True(t, snaps[0].Loading)
	assert.False(t, snaps[1].Loading)
	assert.Len(t, snaps[1].Movies, 1)
}
