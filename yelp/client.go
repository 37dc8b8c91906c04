package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tourscout/models"
)

// Term is the fixed cuisine term every search uses.
const Term = "restaurants"

// Client talks to the Yelp Fusion business-search endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, client *http.Client) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, client: client}
}

// SearchURL builds the request URL for a location. Exposed so callers can
// use it as the response-cache key.
func (c *Client) SearchURL(location string) string {
	params := url.Values{}
	params.Set("term", Term)
	params.Set("location", location)
	return c.baseURL + "/businesses/search?" + params.Encode()
}

// Search runs one business search for a free-text location and returns the
// raw response body. No retry, no pagination beyond the single response page.
func (c *Client) Search(ctx context.Context, location string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.SearchURL(location), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("yelp API error %d: %s", resp.StatusCode, string(body))
	}
	return string(body), nil
}

type searchResponse struct {
	Businesses []business `json:"businesses"`
}

type business struct {
	Name        string  `json:"name"`
	IsClosed    bool    `json:"is_closed"`
	ReviewCount int     `json:"review_count"`
	Rating      float64 `json:"rating"`
	Price       string  `json:"price"`
	Phone       string  `json:"phone"`
	Categories  []struct {
		Alias string `json:"alias"`
		Title string `json:"title"`
	} `json:"categories"`
	Location struct {
		Address1 string `json:"address1"`
		Address2 string `json:"address2"`
		Address3 string `json:"address3"`
		City     string `json:"city"`
		ZipCode  string `json:"zip_code"`
		State    string `json:"state"`
	} `json:"location"`
}

// ParseBusinesses decodes a search response body into restaurant records,
// joining category titles and substituting the price placeholder.
func ParseBusinesses(body string) ([]models.Restaurant, error) {
	var result searchResponse
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("decode yelp response: %w", err)
	}

	var restaurants []models.Restaurant
	for _, b := range result.Businesses {
		price := b.Price
		if price == "" {
			price = models.NoPriceInfo
		}

		titles := make([]string, 0, len(b.Categories))
		for _, c := range b.Categories {
			titles = append(titles, c.Title)
		}

		restaurants = append(restaurants, models.Restaurant{
			Name:        b.Name,
			Closed:      b.IsClosed,
			ReviewCount: b.ReviewCount,
			Category:    strings.Join(titles, ", "),
			Rating:      b.Rating,
			Price:       price,
			Address1:    b.Location.Address1,
			Address2:    b.Location.Address2,
			Address3:    b.Location.Address3,
			City:        b.Location.City,
			ZipCode:     b.Location.ZipCode,
			State:       b.Location.State,
			Phone:       b.Phone,
		})
	}
	return restaurants, nil
}
