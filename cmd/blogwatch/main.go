// blogwatch watches a blog server for new public comments and prints
// which posts have unseen activity, using the same tracker state machine
// the dashboard uses. Tracker state lives in a local JSON file, so a
// restart does not re-flag posts already acknowledged.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"blog/client"
	"blog/notify"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "blog server base URL")
	stateFile := flag.String("state", defaultStatePath(), "tracker state file")
	interval := flag.Duration("interval", notify.DefaultInterval, "poll interval")
	flag.Parse()

	api := client.New(*server)
	tracker, err := notify.NewTracker(notify.NewFileStore(*stateFile))
	if err != nil {
		log.Fatalf("loading tracker state: %v", err)
	}

	poller := &notify.Poller{
		Tracker:  tracker,
		Comments: api,
		Posts:    api,
		Interval: *interval,
		OnChange: func() {
			unseen := tracker.Unseen()
			sort.Strings(unseen)
			log.Printf("%d post(s) with new public comments: %s",
				len(unseen), strings.Join(unseen, ", "))
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("watching %s every %s", *server, *interval)
	poller.Run(ctx)
	log.Print("stopped")
}

func defaultStatePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "blogwatch-state.json")
	}
	return filepath.Join(dir, "blogwatch", "state.json")
}
