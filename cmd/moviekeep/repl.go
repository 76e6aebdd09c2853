package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/moviekeep/moviekeep"
	"github.com/moviekeep/moviekeep/internal/format"
)

// app bundles the SDK pieces the REPL drives.
type app struct {
	client  *moviekeep.Client
	browser *moviekeep.Browser
	out     io.Writer
}

func newApp(cfg moviekeep.Config, out io.Writer) (*app, error) {
	a := &app{out: out}
	client, err := moviekeep.New(cfg,
		moviekeep.WithNotifier(moviekeep.NotifierFunc(func(title, message string) {
			fmt.Fprintf(out, "! %s: %s\n", title, message)
		})),
	)
	if err != nil {
		return nil, err
	}
	a.client = client
	a.browser = client.NewBrowser()
	return a, nil
}

func (a *app) close() {
	a.browser.Close()
	_ = a.client.Close()
}

// run starts a read-eval-print loop. Unknown commands are reported back
// to the user; the loop exits on EOF or "exit"/"quit".
func (a *app) run(ctx context.Context) error {
	fmt.Fprintln(a.out, `moviekeep — type "help" for commands`)
	a.browser.Start(ctx)
	a.printMovies()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(a.out, "mk> ")
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.printHelp()
		case "popular":
			a.browser.Search(ctx, "")
			a.printMovies()
		case "search":
			a.browser.Search(ctx, strings.Join(args, " "))
			a.printMovies()
		case "more":
			a.browser.LoadMore(ctx)
			a.printMovies()
		case "refresh":
			a.browser.Refresh(ctx)
			a.printMovies()
		case "watched":
			a.withMovie(args, func(m moviekeep.Movie) { a.client.Tracker().ToggleWatched(ctx, m) })
		case "want":
			a.withMovie(args, func(m moviekeep.Movie) { a.client.Tracker().ToggleWantToWatch(ctx, m) })
		case "schedule":
			a.schedule(ctx, args)
		case "unschedule":
			if id, ok := parseID(args); ok {
				a.client.Tracker().RemoveSchedule(ctx, id)
			} else {
				fmt.Fprintln(a.out, "usage: unschedule <id>")
			}
		case "list", "summary":
			a.printSummary()
		case "exit", "quit":
			return a.client.Flush(ctx)
		default:
			fmt.Fprintf(a.out, "unknown command %q — type \"help\"\n", cmd)
		}
	}
	return a.client.Flush(ctx)
}

func (a *app) printHelp() {
	fmt.Fprintln(a.out, `Commands:
  popular                      show the popular listing
  search <text>                search the catalog
  more                         load the next page
  refresh                      reload page 1 of the current view
  watched <id>                 toggle watched
  want <id>                    toggle want-to-watch
  schedule <id> <RFC3339 time> schedule a viewing (mirrored to calendar)
  unschedule <id>              remove a schedule
  list                         show your tracked movies
  exit                         flush and quit`)
}

func (a *app) printMovies() {
	snap := a.browser.Snapshot()
	if snap.ErrMsg != "" {
		fmt.Fprintln(a.out, snap.ErrMsg)
		return
	}
	records := a.client.Tracker().Records()
	for _, m := range snap.Movies {
		fmt.Fprintf(a.out, "%8d  %-40s %s%s\n", m.ID, m.Title, releaseYear(m), flags(records[m.ID]))
	}
	fmt.Fprintf(a.out, "— %s, page %d/%d —\n", snap.Mode, snap.Page, snap.TotalPages)
}

func (a *app) printSummary() {
	tracker := a.client.Tracker()
	watched, want, scheduled := tracker.Lists()
	counts := tracker.CountRecords()
	fmt.Fprintf(a.out, "watched %d · want to watch %d · scheduled %d\n",
		counts.Watched, counts.WantToWatch, counts.Scheduled)
	printSection(a.out, "Watched", watched)
	printSection(a.out, "Want to watch", want)
	printSection(a.out, "Scheduled", scheduled)
}

func printSection(out io.Writer, title string, recs []moviekeep.MovieRecord) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	for _, rec := range recs {
		line := fmt.Sprintf("  %8d  %s", rec.ID, rec.Title)
		if rec.ScheduledAt != nil {
			line += " @ " + format.DateTime(rec.ScheduledAt)
		}
		fmt.Fprintln(out, line)
	}
}

func (a *app) schedule(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: schedule <id> <RFC3339 time>, e.g. schedule 42 2026-01-01T20:00:00Z")
		return
	}
	at, err := time.Parse(time.RFC3339, args[1])
	if err != nil {
		fmt.Fprintf(a.out, "bad time %q: %v\n", args[1], err)
		return
	}
	a.withMovie(args[:1], func(m moviekeep.Movie) {
		a.client.Tracker().Schedule(ctx, m, at, moviekeep.ScheduleOptions{})
	})
}

// withMovie resolves an id against the current listing, falling back to
// an already-tracked record, and applies fn.
func (a *app) withMovie(args []string, fn func(moviekeep.Movie)) {
	id, ok := parseID(args)
	if !ok {
		fmt.Fprintln(a.out, "expected a movie id")
		return
	}
	for _, m := range a.browser.Snapshot().Movies {
		if m.ID == id {
			fn(m)
			return
		}
	}
	if rec, ok := a.client.Tracker().Record(id); ok {
		fn(rec.Movie)
		return
	}
	fmt.Fprintf(a.out, "movie %d is not in the current listing\n", id)
}

func parseID(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func releaseYear(m moviekeep.Movie) string {
	if len(m.ReleaseDate) >= 4 {
		return "(" + m.ReleaseDate[:4] + ")"
	}
	return ""
}

func flags(rec moviekeep.MovieRecord) string {
	var out string
	if rec.Watched {
		out += " [watched]"
	}
	if rec.WantToWatch {
		out += " [want]"
	}
	if rec.ScheduledAt != nil {
		out += " [scheduled]"
	}
	return out
}
