package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"tourscout/cache"
	"tourscout/config"
	"tourscout/httputil"
	"tourscout/models"
)

// Scraper fetches one attractions page per state through the response cache
// and parses it into site records.
type Scraper struct {
	cfg    *config.ScraperConfig
	cache  *cache.Cache
	client *http.Client
}

func New(cfg *config.ScraperConfig, c *cache.Cache, client *http.Client) *Scraper {
	return &Scraper{cfg: cfg, cache: c, client: client}
}

// ScrapeState returns the sites parsed from a state's page in document order,
// plus the number of blocks skipped with parse warnings.
func (s *Scraper) ScrapeState(ctx context.Context, state config.StateConfig) ([]models.Site, int, error) {
	url := fmt.Sprintf("%s/%s.php", s.cfg.BaseURL, state.Slug)

	body, err := s.cache.GetOrFetch(url, func() (string, error) {
		return s.fetch(ctx, url)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("fetch %s: %w", url, err)
	}

	return ParsePage(body, state.ID)
}

func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	req, err := httputil.NewScrapeRequest(ctx, url)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
