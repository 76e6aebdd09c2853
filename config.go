package moviekeep

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups the SDK settings. Values are taken from environment
// variables with the prefix "MOVIEKEEP_"; functional options and the
// CLI flags layer on top.
type Config struct {
	// APIKey is the catalog credential. Its absence is not a
	// construction error: catalog requests fail with ErrMissingAPIKey
	// before anything is sent.
	APIKey  string `envconfig:"TMDB_API_KEY"`
	BaseURL string `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`

	// Language is forwarded to the catalog for localized metadata.
	Language string `envconfig:"LANGUAGE" default:"en-US"`

	// StoreDriver selects the record store: "file", "sqlite" or "memory".
	StoreDriver string `envconfig:"STORE_DRIVER" default:"file"`
	StorePath   string `envconfig:"STORE_PATH" default:"moviekeep.json"`

	// CalendarDir is where ICS calendars live. Empty means the platform
	// has no calendar integration and reminders stay local-only.
	CalendarDir     string `envconfig:"CALENDAR_DIR"`
	DefaultCalendar string `envconfig:"DEFAULT_CALENDAR" default:"personal"`

	// SearchDebounce is how long a browser waits after the last query
	// edit before issuing the search.
	SearchDebounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"400ms"`
}

// LoadConfig populates Config from environment variables (prefix MOVIEKEEP_).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("MOVIEKEEP", &c)
}
