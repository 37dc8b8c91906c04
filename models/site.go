package models

// NoStreetData is stored when an attraction's location line has no street
// segment (fewer than three comma-separated tokens).
const NoStreetData = "No street data"

// Site is a tourist attraction scraped from one state page.
type Site struct {
	ID        int64  `json:"id"`
	State     string `json:"state"`
	Name      string `json:"name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	RegionZip string `json:"region_zip"`
}

// DerivedLocation rebuilds the comma-joined location string used as the
// free-text location parameter for restaurant searches.
func (s Site) DerivedLocation() string {
	if s.Street == "" || s.Street == NoStreetData {
		return s.City + ", " + s.RegionZip
	}
	return s.Street + ", " + s.City + ", " + s.RegionZip
}

// LocationQuery pairs a site's derived location string with its 1-based
// position in scrape order. It only drives the enrichment step and is never
// persisted.
type LocationQuery struct {
	Location string
	SiteID   int64
}
