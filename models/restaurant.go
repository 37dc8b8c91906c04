package models

// NoPriceInfo is stored when Yelp returns no price tier for a business.
const NoPriceInfo = "No price info"

// Restaurant is one Yelp business tagged with the site whose location
// produced it.
type Restaurant struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Closed      bool    `json:"closed"`
	ReviewCount int     `json:"review_count"`
	Category    string  `json:"category"` // category titles joined with ", "
	Rating      float64 `json:"rating"`
	Price       string  `json:"price"`
	Address1    string  `json:"address1"`
	Address2    string  `json:"address2"`
	Address3    string  `json:"address3"`
	City        string  `json:"city"`
	ZipCode     string  `json:"zip_code"`
	State       string  `json:"state"`
	Phone       string  `json:"phone"`
	SiteID      int64   `json:"site_id"`
}
