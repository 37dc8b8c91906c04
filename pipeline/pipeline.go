package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"tourscout/cache"
	"tourscout/config"
	"tourscout/models"
	"tourscout/scraper"
	"tourscout/storage"
)

// Searcher is the restaurant-search client the enrichment step drives.
type Searcher interface {
	SearchURL(location string) string
	Search(ctx context.Context, location string) (string, error)
}

// Parser decodes a search response body into restaurant records.
type Parser func(body string) ([]models.Restaurant, error)

// Context carries the working set of one run through scrape -> enrich ->
// load; nothing in the pipeline lives in package state.
type Context struct {
	Sites       []models.Site
	Queries     []models.LocationQuery
	Restaurants []models.Restaurant
	Run         models.PipelineRun
}

type Pipeline struct {
	cfg     *config.Config
	scraper *scraper.Scraper
	search  Searcher
	parse   Parser
	cache   *cache.Cache
	store   storage.Store
}

func New(cfg *config.Config, s *scraper.Scraper, search Searcher, parse Parser, c *cache.Cache, store storage.Store) *Pipeline {
	return &Pipeline{cfg: cfg, scraper: s, search: search, parse: parse, cache: c, store: store}
}

// Run executes one full scrape -> enrich -> load batch. The stored dataset is
// fully replaced; a failure mid-run leaves whatever had been loaded so far.
func (p *Pipeline) Run(ctx context.Context) (*Context, error) {
	pc := &Context{Run: models.PipelineRun{
		StartedAt: time.Now(),
		Status:    models.RunStatusRunning,
	}}

	err := p.run(ctx, pc)
	pc.Run.FinishedAt = time.Now()
	if err != nil {
		pc.Run.Status = models.RunStatusFailed
		pc.Run.ErrorsCount++
		return pc, err
	}

	pc.Run.Status = models.RunStatusCompleted
	log.Printf("Pipeline: %d sites, %d restaurants, %d parse warnings in %s",
		pc.Run.SitesFound, pc.Run.RestaurantsFound, pc.Run.ParseWarnings,
		pc.Run.FinishedAt.Sub(pc.Run.StartedAt).Round(time.Millisecond))
	return pc, nil
}

func (p *Pipeline) run(ctx context.Context, pc *Context) error {
	if err := p.scrapeAll(ctx, pc); err != nil {
		return err
	}
	if err := p.enrich(ctx, pc); err != nil {
		return err
	}
	return p.load(ctx, pc)
}

func (p *Pipeline) scrapeAll(ctx context.Context, pc *Context) error {
	for _, state := range p.cfg.States {
		sites, warnings, err := p.scraper.ScrapeState(ctx, state)
		if err != nil {
			return fmt.Errorf("scrape %s: %w", state.ID, err)
		}

		log.Printf("Pipeline: %s: %d sites (%d warnings)", state.ID, len(sites), warnings)
		pc.Run.ParseWarnings += warnings

		for _, site := range sites {
			// Positional identifier matches the surrogate key the
			// freshly recreated Sites table will assign.
			site.ID = int64(len(pc.Sites) + 1)
			pc.Sites = append(pc.Sites, site)
			pc.Queries = append(pc.Queries, models.LocationQuery{
				Location: site.DerivedLocation(),
				SiteID:   site.ID,
			})
		}
	}

	pc.Run.SitesFound = len(pc.Sites)
	return nil
}

// enrich runs one restaurant search per site, in scrape order. Responses are
// cached under the full request URL; the inter-request delay only applies to
// real network calls. A failed search aborts the run.
func (p *Pipeline) enrich(ctx context.Context, pc *Context) error {
	delay := time.Duration(p.cfg.Scraper.DelayMS) * time.Millisecond

	for i, q := range pc.Queries {
		url := p.search.SearchURL(q.Location)
		body, err := p.cache.GetOrFetch(url, func() (string, error) {
			if delay > 0 {
				time.Sleep(delay)
			}
			return p.search.Search(ctx, q.Location)
		})
		if err != nil {
			return fmt.Errorf("enrich %q (%s): %w", pc.Sites[i].Name, q.Location, err)
		}

		restaurants, err := p.parse(body)
		if err != nil {
			return fmt.Errorf("enrich %q (%s): %w", pc.Sites[i].Name, q.Location, err)
		}

		for _, r := range restaurants {
			r.SiteID = q.SiteID
			pc.Restaurants = append(pc.Restaurants, r)
		}
	}

	pc.Run.RestaurantsFound = len(pc.Restaurants)
	return nil
}

func (p *Pipeline) load(ctx context.Context, pc *Context) error {
	if err := p.store.Init(ctx); err != nil {
		return err
	}
	// Sites first so every restaurant's foreign key resolves.
	if err := p.store.LoadSites(ctx, pc.Sites); err != nil {
		return err
	}
	return p.store.LoadRestaurants(ctx, pc.Restaurants)
}
