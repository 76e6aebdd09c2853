package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieFromTMDB_Fallbacks(t *testing.T) {
	cases := []struct {
		name string
		raw  TMDBMovie
		want Movie
	}{
		{
			name: "full record",
			raw: TMDBMovie{
				ID: 1, Title: "Heat", Overview: "o",
				PosterPath: "/p.jpg", BackdropPath: "/b.jpg",
				ReleaseDate: "1995-12-15", VoteAverage: 8.3,
			},
			want: Movie{
				ID: 1, Title: "Heat", Overview: "o",
				PosterPath: "/p.jpg", BackdropPath: "/b.jpg",
				ReleaseDate: "1995-12-15", VoteAverage: 8.3,
			},
		},
		{
			name: "title falls back to name",
			raw:  TMDBMovie{ID: 2, Name: "Some Show"},
			want: Movie{ID: 2, Title: "Some Show"},
		},
		{
			name: "placeholder when neither title nor name",
			raw:  TMDBMovie{ID: 3},
			want: Movie{ID: 3, Title: PlaceholderTitle},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MovieFromTMDB(tc.raw))
		})
	}
}

func TestPageFromTMDB_PreservesOrder(t *testing.T) {
	raw := TMDBPage{
		Page: 2, TotalPages: 5, TotalResults: 100,
		Results: []TMDBMovie{{ID: 9, Title: "A"}, {ID: 3, Title: "B"}, {ID: 7, Title: "C"}},
	}
	page := PageFromTMDB(raw)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.TotalPages)
	assert.Equal(t, 100, page.TotalResults)
	ids := []int{}
	for _, m := range page.Results {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{9, 3, 7}, ids)
}
