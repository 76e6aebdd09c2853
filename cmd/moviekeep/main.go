// Command moviekeep is a terminal front end for the moviekeep SDK:
// browse the catalog, track watched / want-to-watch movies, and
// schedule viewing sessions mirrored into an ICS calendar.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/moviekeep/moviekeep"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		storePath   string
		storeDriver string
		calendarDir string
		noCalendar  bool
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:           "moviekeep",
		Short:         "Browse the movie catalog and track what you watch",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

			cfg, err := moviekeep.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if storePath != "" {
				cfg.StorePath = storePath
			}
			if storeDriver != "" {
				cfg.StoreDriver = storeDriver
			}
			if calendarDir != "" {
				cfg.CalendarDir = calendarDir
			}
			if noCalendar {
				cfg.CalendarDir = ""
			}

			app, err := newApp(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.close()

			return app.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "path of the record store (default from MOVIEKEEP_STORE_PATH)")
	cmd.Flags().StringVar(&storeDriver, "store-driver", "", "record store driver: file, sqlite or memory")
	cmd.Flags().StringVar(&calendarDir, "calendar-dir", "", "directory of ICS calendars for reminders")
	cmd.Flags().BoolVar(&noCalendar, "no-calendar", false, "disable calendar integration; reminders stay local-only")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}
