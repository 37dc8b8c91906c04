package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Yelp        YelpConfig
	Scheduler   SchedulerConfig
	Scraper     ScraperConfig
	CacheFile   string
	DBPath      string
	DatabaseURL string
	ListenAddr  string
	LogLevel    string
	States      []StateConfig
}

type YelpConfig struct {
	APIKey  string
	BaseURL string
}

type SchedulerConfig struct {
	Interval time.Duration
	Cron     string
}

type ScraperConfig struct {
	BaseURL string
	DelayMS int
}

type StateConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

// defaultStates covers the four most popular tourism states the original
// dataset targets; config/states/*.yaml overrides the set when present.
var defaultStates = []StateConfig{
	{ID: "california", Name: "California", Slug: "california"},
	{ID: "florida", Name: "Florida", Slug: "florida"},
	{ID: "nevada", Name: "Nevada", Slug: "nevada"},
	{ID: "texas", Name: "Texas", Slug: "texas"},
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Yelp: YelpConfig{
			APIKey:  os.Getenv("YELP_API_KEY"),
			BaseURL: getEnv("YELP_BASE_URL", "https://api.yelp.com/v3"),
		},
		Scheduler: SchedulerConfig{
			Cron: os.Getenv("SCRAPE_CRON"),
		},
		Scraper: ScraperConfig{
			BaseURL: getEnv("ATTRACTIONS_BASE_URL", "https://www.attractionsofamerica.com/attractions"),
			DelayMS: getEnvInt("SCRAPE_DELAY_MS", 500),
		},
		CacheFile:   getEnv("CACHE_FILE", "cache.json"),
		DBPath:      getEnv("DB_PATH", "site_restaurant.sqlite"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if interval := os.Getenv("SCRAPE_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err == nil {
			cfg.Scheduler.Interval = d
		}
	}

	if err := cfg.loadStateConfigs(); err != nil {
		return nil, err
	}
	if len(cfg.States) == 0 {
		cfg.States = defaultStates
	}

	return cfg, nil
}

func (c *Config) loadStateConfigs() error {
	configDir := "config/states"
	entries, err := os.ReadDir(configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		path := filepath.Join(configDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var state StateConfig
		if err := yaml.Unmarshal(data, &state); err != nil {
			return err
		}
		if state.Slug == "" {
			state.Slug = state.ID
		}

		c.States = append(c.States, state)
	}

	return nil
}

// State returns the state config matching id, or nil.
func (c *Config) State(id string) *StateConfig {
	for i := range c.States {
		if c.States[i].ID == id {
			return &c.States[i]
		}
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
