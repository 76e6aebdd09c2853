// Package tmdb is the HTTP layer for the external movie catalog: the
// popular listing and text search, both paginated and read-only.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/moviekeep/moviekeep/internal/types"
	"github.com/moviekeep/moviekeep/internal/xerrors"
)

// DefaultBaseURL is the production catalog endpoint.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// FetchPopular retrieves one page of the popular-movies listing.
func FetchPopular(ctx context.Context, httpClient types.HTTPClient, baseURL, apiKey, language string, page int) (*types.PageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateAPIKey(apiKey); err != nil {
		return nil, err
	}
	if err := types.ValidatePage(page); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("api_key", apiKey)
	q.Set("page", strconv.Itoa(page))
	if language != "" {
		q.Set("language", language)
	}
	return getPage(ctx, httpClient, fmt.Sprintf("%s/movie/popular?%s", baseURL, q.Encode()), "fetch popular movies")
}

// Search retrieves one page of search results for query. Adult titles
// are excluded, matching the app's catalog policy.
func Search(ctx context.Context, httpClient types.HTTPClient, baseURL, apiKey, language, query string, page int) (*types.PageResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateAPIKey(apiKey); err != nil {
		return nil, err
	}
	if err := types.ValidatePage(page); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}
	q := url.Values{}
	q.Set("api_key", apiKey)
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("include_adult", "false")
	if language != "" {
		q.Set("language", language)
	}
	return getPage(ctx, httpClient, fmt.Sprintf("%s/search/movie?%s", baseURL, q.Encode()), "search movies")
}

func getPage(ctx context.Context, httpClient types.HTTPClient, fullURL, operation string) (*types.PageResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, xerrors.NewNetworkError(operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.NewHTTPError(resp.StatusCode, operation)
	}

	var raw types.TMDBPage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return types.PageFromTMDB(raw), nil
}
