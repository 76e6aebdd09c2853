package types

// ------------------------------
// Catalog Response Types
// ------------------------------

// TMDBMovie is the loosely-typed raw record returned by the metadata
// API. Every field may be absent; MovieFromTMDB defines the fallbacks.
type TMDBMovie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
}

// TMDBPage mirrors the paginated wire shape of both the popular listing
// and the search endpoint.
type TMDBPage struct {
	Page         int         `json:"page"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
	Results      []TMDBMovie `json:"results"`
}

// PageResult is one page of mapped catalog entries.
type PageResult struct {
	Page         int
	TotalPages   int
	TotalResults int
	Results      []Movie
}

// PlaceholderTitle is substituted when a catalog entry carries neither
// a title nor a name.
const PlaceholderTitle = "Untitled movie"

// MovieFromTMDB maps a raw API record into the internal shape.
// Title falls back to Name (TV-style records), then to a placeholder;
// all other fields keep their zero value when absent.
func MovieFromTMDB(raw TMDBMovie) Movie {
	title := raw.Title
	if title == "" {
		title = raw.Name
	}
	if title == "" {
		title = PlaceholderTitle
	}
	return Movie{
		ID:           raw.ID,
		Title:        title,
		Overview:     raw.Overview,
		PosterPath:   raw.PosterPath,
		BackdropPath: raw.BackdropPath,
		ReleaseDate:  raw.ReleaseDate,
		VoteAverage:  raw.VoteAverage,
	}
}

// PageFromTMDB maps a raw page, preserving server-provided result order.
func PageFromTMDB(raw TMDBPage) *PageResult {
	out := &PageResult{
		Page:         raw.Page,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
		Results:      make([]Movie, 0, len(raw.Results)),
	}
	for _, m := range raw.Results {
		out.Results = append(out.Results, MovieFromTMDB(m))
	}
	return out
}
