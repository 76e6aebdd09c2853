package moviekeep

import "github.com/moviekeep/moviekeep/internal/types"

// Public type aliases so SDK consumers can import only the moviekeep package.
type (
	// Domain entities
	Movie       = types.Movie
	MovieRecord = types.MovieRecord
	RecordMap   = types.RecordMap

	// Catalog responses
	PageResult = types.PageResult
)

// Errors re-exported in errors.go
