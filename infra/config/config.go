package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Source names accepted by Config.Source.
const (
	SourceMemory = "memory"
	SourceSQLite = "sqlite"
	SourceHTTP   = "http"
)

// Config holds application-level configuration.
type Config struct {
	Source    string `env:"BIZFEED_SOURCE" env-default:"memory" env-description:"post source: memory, sqlite or http"`
	APIURL    string `env:"BIZFEED_API_URL" env-description:"directory API base URL (https)"`
	TokenPath string `env:"BIZFEED_TOKEN" env-description:"path to a bearer token file"`
	DBPath    string `env:"BIZFEED_DB" env-description:"SQLite catalogue path"`
	PageSize  int    `env:"BIZFEED_PAGE_SIZE" env-default:"15" env-description:"posts revealed per page"`
	MockPosts int    `env:"BIZFEED_MOCK_POSTS" env-default:"50" env-description:"size of the in-memory catalogue"`
	Debug     bool   `env:"BIZFEED_DEBUG" env-default:"false" env-description:"debug logging"`
	Dir       string `env:"BIZFEED_CONFIG_DIR" env-description:"directory for state, logs and the default database"`
}

// Load reads configuration from environment variables.
//
//	BIZFEED_SOURCE      memory | sqlite | http (default: memory)
//	BIZFEED_API_URL     directory API base URL, required for http
//	BIZFEED_TOKEN       optional bearer token file for http
//	BIZFEED_DB          SQLite file (default: <dir>/bizfeed.db)
//	BIZFEED_PAGE_SIZE   posts per page (default: 15)
//	BIZFEED_MOCK_POSTS  in-memory catalogue size (default: 50)
//	BIZFEED_CONFIG_DIR  default: ~/.config/bizfeed
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	if cfg.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfg.Dir = filepath.Join(home, ".config", "bizfeed")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.Dir, "bizfeed.db")
	}
	if err := cfg.Normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize validates the config and canonicalizes the API URL. Call it
// again after applying command-line overrides.
func (c *Config) Normalize() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	switch c.Source {
	case SourceMemory, SourceSQLite:
	case SourceHTTP:
		if c.APIURL == "" {
			return fmt.Errorf("invalid BIZFEED_API_URL: required for the http source")
		}
	default:
		return fmt.Errorf("invalid BIZFEED_SOURCE %q: want memory, sqlite or http", c.Source)
	}
	if c.APIURL != "" {
		parsed, err := url.Parse(c.APIURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid BIZFEED_API_URL: must be an absolute URL")
		}
		if parsed.Scheme != "https" {
			return fmt.Errorf("invalid BIZFEED_API_URL: only https is allowed")
		}
		c.APIURL = strings.TrimRight(parsed.String(), "/")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("invalid BIZFEED_PAGE_SIZE %d: must be positive", c.PageSize)
	}
	if c.MockPosts < 0 {
		return fmt.Errorf("invalid BIZFEED_MOCK_POSTS %d: must not be negative", c.MockPosts)
	}
	return nil
}

// LogPath is where the application log is written.
func (c Config) LogPath() string {
	return filepath.Join(c.Dir, "bizfeed.log")
}

// UIStatePath is where UI preferences are persisted.
func (c Config) UIStatePath() string {
	return filepath.Join(c.Dir, "ui_state.json")
}
