package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"tourscout/config"
	"tourscout/models"
	"tourscout/storage"
)

func newLoadedStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "web.sqlite"))
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
		{State: "nevada", Name: "Hoover Dam", Street: models.NoStreetData, City: "Boulder City", RegionZip: "NV 89005"},
	}
	if err := store.LoadSites(ctx, sites); err != nil {
		t.Fatalf("load sites: %v", err)
	}
	restaurants := []models.Restaurant{
		{Name: "Half Dome Grill", ReviewCount: 842, Category: "Barbeque", Rating: 4.5,
			Price: "$$", City: "Yosemite Valley", ZipCode: "95389", State: "CA", SiteID: 1},
		{Name: "Dam Cafe", ReviewCount: 120, Category: "Cafes", Rating: 4.0,
			Price: "$", City: "Boulder City", ZipCode: "89005", State: "NV", SiteID: 2},
	}
	if err := store.LoadRestaurants(ctx, restaurants); err != nil {
		t.Fatalf("load restaurants: %v", err)
	}
	return store
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{States: []config.StateConfig{
		{ID: "california", Name: "California", Slug: "california"},
		{ID: "nevada", Name: "Nevada", Slug: "nevada"},
	}}
	srv := httptest.NewServer(NewServer(cfg, newLoadedStore(t)))
	t.Cleanup(srv.Close)
	return srv
}

// newBrowser returns a client with its own cookie jar, i.e. one session.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) string {
	t.Helper()
	resp, err := client.PostForm(url, form)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestFullFlow(t *testing.T) {
	srv := newTestServer(t)
	browser := newBrowser(t)

	resp, err := browser.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	index, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(index), "California") {
		t.Fatalf("state form missing California:\n%s", index)
	}

	sitesPage := postForm(t, browser, srv.URL+"/sites", url.Values{"state": {"california"}})
	if !strings.Contains(sitesPage, "Yosemite National Park, CA 95389") {
		t.Fatalf("sites page missing attraction:\n%s", sitesPage)
	}

	sortPage := postForm(t, browser, srv.URL+"/sort", url.Values{"site": {"1"}})
	if !strings.Contains(sortPage, "byreviewcount") || !strings.Contains(sortPage, "byrating") {
		t.Fatalf("sort page missing keys:\n%s", sortPage)
	}

	resultsPage := postForm(t, browser, srv.URL+"/results", url.Values{
		"sortkey": {"byrating"}, "direction": {"desc"},
	})
	if !strings.Contains(resultsPage, "Half Dome Grill") || !strings.Contains(resultsPage, "4.5") {
		t.Fatalf("results page missing restaurant:\n%s", resultsPage)
	}
	if strings.Contains(resultsPage, "Dam Cafe") {
		t.Fatalf("results page leaked another site's restaurant:\n%s", resultsPage)
	}
}

func TestUnknownSortKey(t *testing.T) {
	srv := newTestServer(t)
	browser := newBrowser(t)

	postForm(t, browser, srv.URL+"/sites", url.Values{"state": {"california"}})
	postForm(t, browser, srv.URL+"/sort", url.Values{"site": {"1"}})
	resultsPage := postForm(t, browser, srv.URL+"/results", url.Values{"sortkey": {"byzipcode"}})

	if !strings.Contains(resultsPage, "Sorry, no data found for your search.") {
		t.Fatalf("expected no-result message:\n%s", resultsPage)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)
	alice := newBrowser(t)
	bob := newBrowser(t)

	postForm(t, alice, srv.URL+"/sites", url.Values{"state": {"california"}})
	postForm(t, bob, srv.URL+"/sites", url.Values{"state": {"nevada"}})

	postForm(t, alice, srv.URL+"/sort", url.Values{"site": {"1"}})
	postForm(t, bob, srv.URL+"/sort", url.Values{"site": {"1"}})

	aliceResults := postForm(t, alice, srv.URL+"/results", url.Values{"sortkey": {"byrating"}})
	bobResults := postForm(t, bob, srv.URL+"/results", url.Values{"sortkey": {"byrating"}})

	if !strings.Contains(aliceResults, "Half Dome Grill") || strings.Contains(aliceResults, "Dam Cafe") {
		t.Fatalf("alice got wrong results:\n%s", aliceResults)
	}
	if !strings.Contains(bobResults, "Dam Cafe") || strings.Contains(bobResults, "Half Dome Grill") {
		t.Fatalf("bob got wrong results:\n%s", bobResults)
	}
}

func TestResultsWithoutSelectionFallsBack(t *testing.T) {
	srv := newTestServer(t)
	browser := newBrowser(t)

	page := postForm(t, browser, srv.URL+"/results", url.Values{"sortkey": {"byrating"}})
	if !strings.Contains(page, "Please choose a state and an attraction first") {
		t.Fatalf("expected fallback to state form:\n%s", page)
	}
}
