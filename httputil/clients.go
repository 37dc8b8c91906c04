package httputil

import (
	"context"
	"net/http"
	"time"
)

// userAgent identifies the scraper to the attractions site.
const userAgent = "tourscout/1.0 (+https://github.com/tourscout)"

type Clients struct {
	Scraping *http.Client // attraction pages
	API      *http.Client // Yelp Fusion
}

func NewClients() *Clients {
	return &Clients{
		Scraping: &http.Client{Timeout: 15 * time.Second},
		API:      &http.Client{Timeout: 30 * time.Second},
	}
}

// NewScrapeRequest builds a GET request with the scraper's identifying headers.
func NewScrapeRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	return req, nil
}
