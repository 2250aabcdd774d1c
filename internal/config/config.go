package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

// TokenEnv is read when no token is given by flag or config file.
const TokenEnv = "TEAMROADMAPS_TOKEN"

// Seed is the initial dev-server dataset.
type Seed struct {
	Teams    []models.Team                        `yaml:"teams"`
	Pages    []models.CatalogRoadmap              `yaml:"pages"`
	Roadmaps []models.CustomRoadmap               `yaml:"roadmaps"`
	Configs  map[string]models.TeamResourceConfig `yaml:"configs"` // team ID → resources
}

// Config holds all configuration (CLI flags + config file).
type Config struct {
	APIURL     string        `yaml:"api_url"`
	CatalogURL string        `yaml:"catalog_url"` // where pages.json lives; defaults to APIURL
	EditorURL  string        `yaml:"editor_url"`  // custom roadmap editor
	Token      string        `yaml:"token"`
	TeamID     string        `yaml:"team_id"`
	Timeout    time.Duration `yaml:"timeout"`
	Insecure   bool          `yaml:"insecure"`
	CACert     string        `yaml:"ca_cert"` // PEM
	LogLevel   string        `yaml:"log_level"`
	Listen     string        `yaml:"listen"` // dev server
	Seed       Seed          `yaml:"seed"`

	// internal: path to config file (from CLI flag)
	configFile string
}

// BindFlags registers the persistent CLI flags on fs.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.configFile, "config", "", "Path to config file (YAML)")
	fs.StringVar(&c.APIURL, "api-url", "", "Base URL of the team API")
	fs.StringVar(&c.CatalogURL, "catalog-url", "", "Base URL serving pages.json (defaults to --api-url)")
	fs.StringVar(&c.EditorURL, "editor-url", "", "Base URL of the custom roadmap editor")
	fs.StringVar(&c.Token, "token", "", "API bearer token (or $"+TokenEnv+")")
	fs.StringVarP(&c.TeamID, "team", "t", "", "Team ID")
	fs.DurationVar(&c.Timeout, "timeout", 0, "HTTP request timeout")
	fs.BoolVar(&c.Insecure, "insecure", false, "Skip TLS verification")
	fs.StringVar(&c.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&c.Listen, "listen", "", "Dev server listen address")
}

// Load overlays the config file (if any) and applies defaults.
// CLI flags that were explicitly set take precedence over file values.
func (c *Config) Load(fs *pflag.FlagSet) error {
	if c.configFile != "" {
		if err := c.loadFile(c.configFile, fs); err != nil {
			return err
		}
	}
	if c.Token == "" {
		c.Token = os.Getenv(TokenEnv)
	}
	c.applyDefaults()
	return nil
}

// loadFile reads a YAML config file. Values from the file are only applied
// if the corresponding CLI flag was not explicitly set.
func (c *Config) loadFile(path string, fs *pflag.FlagSet) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	changed := func(name string) bool {
		return fs != nil && fs.Changed(name)
	}
	overlay := func(name string, dst *string, v string) {
		if !changed(name) && v != "" {
			*dst = v
		}
	}
	overlay("api-url", &c.APIURL, file.APIURL)
	overlay("catalog-url", &c.CatalogURL, file.CatalogURL)
	overlay("editor-url", &c.EditorURL, file.EditorURL)
	overlay("token", &c.Token, file.Token)
	overlay("team", &c.TeamID, file.TeamID)
	overlay("log-level", &c.LogLevel, file.LogLevel)
	overlay("listen", &c.Listen, file.Listen)
	if !changed("timeout") && file.Timeout > 0 {
		c.Timeout = file.Timeout
	}
	if !changed("insecure") && file.Insecure {
		c.Insecure = true
	}

	// CA cert and seed data only come from the config file
	c.CACert = file.CACert
	c.Seed = file.Seed

	return nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.APIURL == "" {
		c.APIURL = "http://localhost" + c.Listen
		if !strings.HasPrefix(c.Listen, ":") {
			c.APIURL = "http://" + c.Listen
		}
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.CatalogURL == "" {
		c.CatalogURL = c.APIURL
	}
	if c.EditorURL == "" {
		c.EditorURL = "http://localhost:3000/r"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// NewLogger builds a text slog.Logger at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(c.LogLevel)}))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
