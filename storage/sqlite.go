package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"tourscout/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	schema := `
	DROP TABLE IF EXISTS Restaurants;
	DROP TABLE IF EXISTS Sites;

	CREATE TABLE Sites (
		SiteId    INTEGER PRIMARY KEY AUTOINCREMENT UNIQUE,
		State     TEXT NOT NULL,
		SiteName  TEXT NOT NULL,
		Street    TEXT,
		City      TEXT NOT NULL,
		RegionZip TEXT NOT NULL
	);

	CREATE TABLE Restaurants (
		RestaurantId   INTEGER PRIMARY KEY AUTOINCREMENT UNIQUE,
		RestaurantName TEXT NOT NULL,
		CloseStatus    BOOLEAN NOT NULL,
		ReviewCount    INTEGER NOT NULL,
		Category       TEXT NOT NULL,
		Rating         REAL NOT NULL,
		Price          TEXT NOT NULL,
		Address1       TEXT,
		Address2       TEXT,
		Address3       TEXT,
		City           TEXT NOT NULL,
		ZipCode        TEXT NOT NULL,
		State          TEXT NOT NULL,
		Phone          TEXT,
		SiteId         INTEGER NOT NULL,
		FOREIGN KEY (SiteId) REFERENCES Sites (SiteId)
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadSites(ctx context.Context, sites []models.Site) error {
	for _, site := range sites {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO Sites (State, SiteName, Street, City, RegionZip)
			VALUES (?, ?, ?, ?, ?)`,
			site.State, site.Name, site.Street, site.City, site.RegionZip)
		if err != nil {
			return fmt.Errorf("insert site %q: %w", site.Name, err)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadRestaurants(ctx context.Context, restaurants []models.Restaurant) error {
	for _, r := range restaurants {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO Restaurants (RestaurantName, CloseStatus, ReviewCount, Category, Rating,
				Price, Address1, Address2, Address3, City, ZipCode, State, Phone, SiteId)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.Name, r.Closed, r.ReviewCount, r.Category, r.Rating,
			r.Price, r.Address1, r.Address2, r.Address3, r.City, r.ZipCode, r.State, r.Phone, r.SiteID)
		if err != nil {
			return fmt.Errorf("insert restaurant %q: %w", r.Name, err)
		}
	}
	return nil
}

func (s *SQLiteStore) SitesByState(ctx context.Context, state string) ([]models.Site, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT SiteId, State, SiteName, Street, City, RegionZip
		FROM Sites WHERE State = ? ORDER BY SiteId`, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []models.Site
	for rows.Next() {
		var site models.Site
		var street sql.NullString
		if err := rows.Scan(&site.ID, &site.State, &site.Name, &street, &site.City, &site.RegionZip); err != nil {
			return nil, err
		}
		site.Street = street.String
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

func (s *SQLiteStore) Query(ctx context.Context, sortKey, direction, siteName string) (*Result, error) {
	spec, dir, ok := lookupSort(sortKey, direction)
	if !ok {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM Restaurants r JOIN Sites s ON r.SiteId = s.SiteId
		WHERE s.SiteName = ?
		ORDER BY %s %s`, spec.selectSQL, spec.orderBy, dir)

	rows, err := s.db.QueryContext(ctx, query, siteName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &Result{Columns: spec.columns}
	for rows.Next() {
		cells := make([]sql.NullString, len(spec.columns))
		dest := make([]interface{}, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.String
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}
