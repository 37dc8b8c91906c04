package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tourscout/models"
)

// PostgresStore implements Store over a pgx pool, for deployments that keep
// the combined dataset in a shared database instead of a local SQLite file.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Init(ctx context.Context) error {
	schema := `
	DROP TABLE IF EXISTS Restaurants;
	DROP TABLE IF EXISTS Sites;

	CREATE TABLE Sites (
		SiteId    SERIAL PRIMARY KEY,
		State     TEXT NOT NULL,
		SiteName  TEXT NOT NULL,
		Street    TEXT,
		City      TEXT NOT NULL,
		RegionZip TEXT NOT NULL
	);

	CREATE TABLE Restaurants (
		RestaurantId   SERIAL PRIMARY KEY,
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
		SiteId         INTEGER NOT NULL REFERENCES Sites (SiteId)
	);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadSites(ctx context.Context, sites []models.Site) error {
	for _, site := range sites {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO Sites (State, SiteName, Street, City, RegionZip)
			VALUES ($1, $2, $3, $4, $5)`,
			site.State, site.Name, site.Street, site.City, site.RegionZip)
		if err != nil {
			return fmt.Errorf("insert site %q: %w", site.Name, err)
		}
	}
	return nil
}

func (s *PostgresStore) LoadRestaurants(ctx context.Context, restaurants []models.Restaurant) error {
	for _, r := range restaurants {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO Restaurants (RestaurantName, CloseStatus, ReviewCount, Category, Rating,
				Price, Address1, Address2, Address3, City, ZipCode, State, Phone, SiteId)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			r.Name, r.Closed, r.ReviewCount, r.Category, r.Rating,
			r.Price, r.Address1, r.Address2, r.Address3, r.City, r.ZipCode, r.State, r.Phone, r.SiteID)
		if err != nil {
			return fmt.Errorf("insert restaurant %q: %w", r.Name, err)
		}
	}
	return nil
}

func (s *PostgresStore) SitesByState(ctx context.Context, state string) ([]models.Site, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT SiteId, State, SiteName, COALESCE(Street, ''), City, RegionZip
		FROM Sites WHERE State = $1 ORDER BY SiteId`, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []models.Site
	for rows.Next() {
		var site models.Site
		if err := rows.Scan(&site.ID, &site.State, &site.Name, &site.Street, &site.City, &site.RegionZip); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

func (s *PostgresStore) Query(ctx context.Context, sortKey, direction, siteName string) (*Result, error) {
	spec, dir, ok := lookupSort(sortKey, direction)
	if !ok {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM Restaurants r JOIN Sites s ON r.SiteId = s.SiteId
		WHERE s.SiteName = $1
		ORDER BY %s %s`, spec.selectPG, spec.orderBy, dir)

	rows, err := s.pool.Query(ctx, query, siteName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &Result{Columns: spec.columns}
	for rows.Next() {
		cells := make([]*string, len(spec.columns))
		dest := make([]interface{}, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make([]string, len(cells))
		for i, c := range cells {
			if c != nil {
				row[i] = *c
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}
