package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"tourscout/config"
	"tourscout/models"
	"tourscout/storage"
)

func newLoadedStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "cli.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	sites := []models.Site{
		{State: "california", Name: "Yosemite National Park", Street: models.NoStreetData, City: "Yosemite Valley", RegionZip: "CA 95389"},
	}
	if err := store.LoadSites(ctx, sites); err != nil {
		t.Fatalf("load sites: %v", err)
	}
	restaurants := []models.Restaurant{
		{Name: "Half Dome Grill", ReviewCount: 842, Category: "Barbeque", Rating: 4.5,
			Price: "$$", City: "Yosemite Valley", ZipCode: "95389", State: "CA", SiteID: 1},
	}
	if err := store.LoadRestaurants(ctx, restaurants); err != nil {
		t.Fatalf("load restaurants: %v", err)
	}
	return store
}

func testConfig() *config.Config {
	return &config.Config{States: []config.StateConfig{
		{ID: "california", Name: "California", Slug: "california"},
		{ID: "nevada", Name: "Nevada", Slug: "nevada"},
	}}
}

func runCLI(t *testing.T, store storage.Store, input string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(testConfig(), store, strings.NewReader(input), &out)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("cli run failed: %v", err)
	}
	return out.String()
}

func TestRun_QueryByRating(t *testing.T) {
	out := runCLI(t, newLoadedStore(t), "california\n1\nbyRating\nexit\n")

	if !strings.Contains(out, "List of Top Attractions in California") {
		t.Fatalf("missing site list header in output:\n%s", out)
	}
	if !strings.Contains(out, "[1] Yosemite National Park, CA 95389") {
		t.Fatalf("missing site entry in output:\n%s", out)
	}
	if !strings.Contains(out, "Half Dome Grill") || !strings.Contains(out, "4.5") {
		t.Fatalf("missing query result in output:\n%s", out)
	}
}

func TestRun_InvalidInputReprompts(t *testing.T) {
	out := runCLI(t, newLoadedStore(t), "oregon\ncalifornia\n99\n1\nbyzipcode\nexit\n")

	if !strings.Contains(out, "[Error] Please choose one of the supported states") {
		t.Fatalf("missing state error in output:\n%s", out)
	}
	if !strings.Contains(out, "[Error] Invalid Input") {
		t.Fatalf("missing index error in output:\n%s", out)
	}
	if !strings.Contains(out, "Sorry, no data found for your search.") {
		t.Fatalf("missing unknown-sort-key message in output:\n%s", out)
	}
}

func TestRun_BackNavigatesUp(t *testing.T) {
	out := runCLI(t, newLoadedStore(t), "california\nback\nnevada\nexit\n")

	if !strings.Contains(out, "No attraction data loaded for Nevada yet") {
		t.Fatalf("expected empty-state message after back, got:\n%s", out)
	}
}

func TestRun_EOFExits(t *testing.T) {
	// No trailing exit; EOF at any prompt must end the loop cleanly.
	runCLI(t, newLoadedStore(t), "california\n")
}
