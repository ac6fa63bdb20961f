package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-wiki/internal/cache"
)

func main() {
	var (
		cacheDir = flag.String("cache-dir", "cache", "Path to the cache directory")
		action   = flag.String("action", "stats", "Action to run: stats, cleanup, or clear")
	)

	flag.Parse()

	store, err := cache.NewFileStore(*cacheDir)
	if err != nil {
		log.Fatalf("open cache store: %v", err)
	}
	c := cache.New(cache.Config{Store: store})

	switch *action {
	case "stats":
		stats := c.Stats()
		fmt.Fprintf(os.Stdout, "Entries: %d\n", stats.Total)
		fmt.Fprintf(os.Stdout, "Size:    %s\n", cache.FormatBytes(stats.Size))
		fmt.Fprintf(os.Stdout, "Valid:   %d\n", stats.Valid)
		fmt.Fprintf(os.Stdout, "Expired: %d\n", stats.Expired)
	case "cleanup":
		fmt.Fprintf(os.Stdout, "Removed %d expired entries\n", c.Cleanup())
	case "clear":
		fmt.Fprintf(os.Stdout, "Removed %d entries\n", c.Clear())
	default:
		log.Fatalf("unknown action %q (want stats, cleanup, or clear)", *action)
	}
}
