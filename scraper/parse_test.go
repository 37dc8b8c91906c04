package scraper

import (
	"os"
	"path/filepath"
	"testing"

	"tourscout/models"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return string(data)
}

func TestParsePage_Basic(t *testing.T) {
	html := loadFixture(t, "california.html")

	sites, warnings, err := ParsePage(html, "california")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// Five containers: three well-formed, one heading without the rank
	// delimiter (warning), one pure ad block (silent discard).
	if len(sites) != 3 {
		t.Fatalf("expected 3 sites, got %d", len(sites))
	}
	if warnings != 1 {
		t.Fatalf("expected 1 parse warning, got %d", warnings)
	}

	first := sites[0]
	if first.Name != "Yosemite National Park" {
		t.Fatalf("expected Yosemite National Park, got %q", first.Name)
	}
	if first.State != "california" {
		t.Fatalf("expected state california, got %q", first.State)
	}
	if first.Street != "9035 Village Dr" {
		t.Fatalf("unexpected street %q", first.Street)
	}
	if first.City != "Yosemite Valley" {
		t.Fatalf("unexpected city %q", first.City)
	}
	if first.RegionZip != "CA 95389" {
		t.Fatalf("unexpected region/zip %q", first.RegionZip)
	}
	if got := first.DerivedLocation(); got != "9035 Village Dr, Yosemite Valley, CA 95389" {
		t.Fatalf("unexpected derived location %q", got)
	}

	second := sites[1]
	if second.Name != "Disneyland" {
		t.Fatalf("expected Disneyland, got %q", second.Name)
	}
	if second.Street != models.NoStreetData {
		t.Fatalf("expected street placeholder, got %q", second.Street)
	}
	if got := second.DerivedLocation(); got != "Anaheim, CA 92802" {
		t.Fatalf("unexpected derived location %q", got)
	}

	// Document order preserved for deterministic site indexing.
	if sites[2].Name != "Santa Monica Pier" {
		t.Fatalf("expected Santa Monica Pier last, got %q", sites[2].Name)
	}
}

func TestParseLocation(t *testing.T) {
	street, city, regionZip, ok := ParseLocation("Address: 123 Main St, Springfield, CA 90210")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if street != "123 Main St" || city != "Springfield" || regionZip != "CA 90210" {
		t.Fatalf("unexpected parse result %q / %q / %q", street, city, regionZip)
	}

	street, city, regionZip, ok = ParseLocation("Address: Springfield, CA 90210")
	if !ok {
		t.Fatal("expected two-token parse to succeed")
	}
	if street != models.NoStreetData {
		t.Fatalf("expected street placeholder, got %q", street)
	}
	if city != "Springfield" || regionZip != "CA 90210" {
		t.Fatalf("unexpected parse result %q / %q", city, regionZip)
	}

	if _, _, _, ok := ParseLocation("Address: Springfield"); ok {
		t.Fatal("expected single-segment location to fail")
	}
	if _, _, _, ok := ParseLocation(""); ok {
		t.Fatal("expected empty location to fail")
	}
}

func TestParseHeading(t *testing.T) {
	name, ok := parseHeading("3: Golden Gate Bridge")
	if !ok || name != "Golden Gate Bridge" {
		t.Fatalf("unexpected heading parse %q ok=%v", name, ok)
	}
	if _, ok := parseHeading("Golden Gate Bridge"); ok {
		t.Fatal("expected heading without delimiter to fail")
	}
	if _, ok := parseHeading(""); ok {
		t.Fatal("expected empty heading to fail")
	}
}
