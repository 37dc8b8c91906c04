package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tourscout/cache"
	"tourscout/cli"
	"tourscout/config"
	"tourscout/httputil"
	"tourscout/logging"
	"tourscout/pipeline"
	"tourscout/scheduler"
	"tourscout/scraper"
	"tourscout/storage"
	"tourscout/web"
	"tourscout/yelp"
)

var (
	scrapeNow = flag.Bool("scrape", false, "Run the scrape/enrich/load pipeline once and exit")
	runCLI    = flag.Bool("cli", false, "Start the interactive query prompt")
	serve     = flag.Bool("serve", false, "Serve the web interface")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	logFile, err := logging.Setup("tourscout.log")
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting tourscout...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Loaded %d state configs", len(cfg.States))
	for _, state := range cfg.States {
		log.Printf("  - %s (%s)", state.Name, state.ID)
	}

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	switch {
	case *runCLI:
		if err := cli.New(cfg, store, os.Stdin, os.Stdout).Run(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	case *serve:
		log.Printf("Serving web interface on %s", cfg.ListenAddr)
		if err := web.NewServer(cfg, store).Start(cfg.ListenAddr); err != nil {
			log.Fatalf("Web server error: %v", err)
		}
		return
	}

	clients := httputil.NewClients()
	responseCache := cache.Load(cfg.CacheFile)
	log.Printf("Response cache: %s (%d entries)", cfg.CacheFile, responseCache.Len())

	yelpClient := yelp.NewClient(cfg.Yelp.BaseURL, cfg.Yelp.APIKey, clients.API)
	pipe := pipeline.New(cfg,
		scraper.New(&cfg.Scraper, responseCache, clients.Scraping),
		yelpClient, yelp.ParseBusinesses, responseCache, store)

	if *scrapeNow {
		log.Println("Running pipeline...")
		if _, err := pipe.Run(ctx); err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}
		log.Println("Pipeline complete!")
		return
	}

	// Daemon mode
	sched := scheduler.New(cfg, pipe)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	log.Println("Daemon running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	sched.Stop()
	log.Println("Goodbye!")
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.DatabaseURL != "" {
		log.Println("Using Postgres store")
		return storage.NewPostgresStore(ctx, cfg.DatabaseURL)
	}
	log.Printf("Using SQLite store: %s", cfg.DBPath)
	return storage.NewSQLiteStore(cfg.DBPath)
}
