package scraper

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tourscout/models"
)

const (
	containerSelector = "div.box_style_1"
	headingSelector   = "div.pl10.pr10.pb10 h2"
	locationSelector  = "p.pl10.pr10.inner-titles-post"

	// headingDelimiter separates the rank prefix from the display name,
	// e.g. "1: Yosemite National Park".
	headingDelimiter = ": "
)

// ParsePage extracts site records from a state page. Blocks that carry a
// heading or location but fail the expected shape are skipped and counted;
// blocks with neither are discarded silently.
func ParsePage(html, stateID string) ([]models.Site, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, 0, err
	}

	var sites []models.Site
	warnings := 0

	doc.Find(containerSelector).Each(func(i int, sel *goquery.Selection) {
		heading := strings.TrimSpace(sel.Find(headingSelector).Text())
		locationLine := strings.TrimSpace(sel.Find(locationSelector).Text())

		if heading == "" && locationLine == "" {
			return
		}

		name, ok := parseHeading(heading)
		if !ok {
			log.Printf("Scraper: %s block %d: heading %q missing delimiter, skipping", stateID, i, heading)
			warnings++
			return
		}

		street, city, regionZip, ok := ParseLocation(locationLine)
		if !ok {
			log.Printf("Scraper: %s block %d (%s): unparsable location %q, skipping", stateID, i, name, locationLine)
			warnings++
			return
		}

		sites = append(sites, models.Site{
			State:     stateID,
			Name:      name,
			Street:    street,
			City:      city,
			RegionZip: regionZip,
		})
	})

	return sites, warnings, nil
}

// parseHeading takes the display name after the rank prefix.
func parseHeading(heading string) (string, bool) {
	if heading == "" {
		return "", false
	}
	parts := strings.SplitN(heading, headingDelimiter, 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// ParseLocation splits a free-text location line into street, city and
// region/zip. The first whitespace token is an icon label artifact and is
// dropped; the remainder is comma-delimited with the region/zip last, the
// city second to last, and the street third to last when present.
func ParseLocation(line string) (street, city, regionZip string, ok bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return "", "", "", false
	}

	joined := strings.Join(tokens[1:], " ")
	parts := strings.Split(joined, ", ")
	if len(parts) < 2 {
		return "", "", "", false
	}

	regionZip = strings.TrimSpace(parts[len(parts)-1])
	city = strings.TrimSpace(parts[len(parts)-2])
	if regionZip == "" || city == "" {
		return "", "", "", false
	}

	street = models.NoStreetData
	if len(parts) >= 3 {
		street = strings.TrimSpace(parts[len(parts)-3])
	}
	return street, city, regionZip, true
}
