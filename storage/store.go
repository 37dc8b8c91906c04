package storage

import (
	"context"
	"strings"

	"tourscout/models"
)

// Store loads pipeline output and answers presentation-layer queries.
type Store interface {
	// Init drops and recreates both tables; every run fully replaces prior data.
	Init(ctx context.Context) error
	LoadSites(ctx context.Context, sites []models.Site) error
	LoadRestaurants(ctx context.Context, restaurants []models.Restaurant) error
	SitesByState(ctx context.Context, state string) ([]models.Site, error)
	// Query returns nil (not an empty result) for an unrecognized sort key.
	Query(ctx context.Context, sortKey, direction, siteName string) (*Result, error)
	Close() error
}

// Result is a column-labelled row set ready for table rendering.
type Result struct {
	Columns []string
	Rows    [][]string
}

// sortSpec maps a sort keyword to its column selection and ordering.
// selectPG carries explicit text casts since pgx scans strictly by type.
type sortSpec struct {
	columns    []string
	selectSQL  string
	selectPG   string
	orderBy    string
	defaultDir string
}

var sortSpecs = map[string]sortSpec{
	"byreviewcount": {
		columns:    []string{"Restaurant", "Review Count"},
		selectSQL:  "r.RestaurantName, r.ReviewCount",
		selectPG:   "r.RestaurantName, r.ReviewCount::TEXT",
		orderBy:    "r.ReviewCount",
		defaultDir: "DESC",
	},
	"bycategory": {
		columns:    []string{"Restaurant", "Category"},
		selectSQL:  "r.RestaurantName, r.Category",
		selectPG:   "r.RestaurantName, r.Category",
		orderBy:    "r.Category",
		defaultDir: "ASC",
	},
	"byrating": {
		columns:    []string{"Restaurant", "Rating"},
		selectSQL:  "r.RestaurantName, r.Rating",
		selectPG:   "r.RestaurantName, r.Rating::TEXT",
		orderBy:    "r.Rating",
		defaultDir: "DESC",
	},
	"byprice": {
		columns:    []string{"Restaurant", "Price"},
		selectSQL:  "r.RestaurantName, r.Price",
		selectPG:   "r.RestaurantName, r.Price",
		orderBy:    "r.Price",
		defaultDir: "ASC",
	},
	"byaddress": {
		columns:    []string{"Restaurant", "Address1", "Address2", "Address3", "City", "ZipCode", "State"},
		selectSQL:  "r.RestaurantName, r.Address1, r.Address2, r.Address3, r.City, r.ZipCode, r.State",
		selectPG:   "r.RestaurantName, r.Address1, r.Address2, r.Address3, r.City, r.ZipCode, r.State",
		orderBy:    "r.City",
		defaultDir: "ASC",
	},
}

// SortKeys lists the recognized sort keywords in menu order.
func SortKeys() []string {
	return []string{"byreviewcount", "bycategory", "byrating", "byprice", "byaddress"}
}

// lookupSort resolves a sort keyword and direction. ok is false for an
// unrecognized keyword; an unrecognized direction falls back to the
// keyword's default.
func lookupSort(sortKey, direction string) (sortSpec, string, bool) {
	spec, ok := sortSpecs[strings.ToLower(sortKey)]
	if !ok {
		return sortSpec{}, "", false
	}

	dir := spec.defaultDir
	switch strings.ToLower(direction) {
	case "asc":
		dir = "ASC"
	case "desc":
		dir = "DESC"
	}
	return spec, dir, true
}
