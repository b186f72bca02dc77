package stacktobasics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"gopkg.in/yaml.v3"

	"github.com/zinbo/stacktobasics/content"
	"github.com/zinbo/stacktobasics/tags"
)

// SiteConfig holds all configuration for the blog. It is loaded once at
// start-up and never mutated afterwards.
type SiteConfig struct {
	Name         string `yaml:"title" validate:"required"`             // Site title (default "Blog")
	URL          string `yaml:"url" validate:"required,url"`           // Canonical URL without trailing slash
	Description  string `yaml:"description"`                           // Meta description and RSS channel description
	Author       string `yaml:"author"`                                // Author name for JSON-LD and the about page
	Email        string `yaml:"email" validate:"omitempty,email"`      // Author email for the RSS feed
	Location     string `yaml:"location"`                              // Shown on the about page
	Bio          string `yaml:"bio"`                                   // Shown on the about page
	Avatar       string `yaml:"avatar"`                                // Profile picture path
	Copyright    string `yaml:"copyright"`                             // Footer line
	DateFormat   string `yaml:"dateFormat"`                            // Go layout for display dates (default "January 02, 2006")
	AnalyticsID  string `yaml:"googleAnalyticsID"`                     // Optional gtag id
	RSSPath      string `yaml:"rss"`                                   // Feed path (default "/rss.xml")
	Social       Social `yaml:"social"`                                // Author profiles
	DisqusScript string `yaml:"disqusScript" validate:"omitempty,url"` // Disqus embed.js URL; empty disables comments

	PostsPerPage int                        `yaml:"postsPerPage" validate:"gte=1"` // Listing page size (default 3)
	TagPageRoot  string                     `yaml:"tagPageRoot"`                   // Tag page segment (default "tags")
	Tags         map[string]tags.Descriptor `yaml:"tags"`                          // Tag registry

	ContentDir   string        `yaml:"contentDir"`   // Markdown sources (default "content/posts")
	StaticDir    string        `yaml:"staticDir"`    // User static assets (default "static")
	OutputDir    string        `yaml:"outputDir"`    // Build output (default "public_html")
	DatabasePath string        `yaml:"databasePath"` // SQLite index (default "data/blog.db")
	Addr         string        `yaml:"addr"`         // Preview listen address (default ":3000")
	PostCacheTTL time.Duration `yaml:"postCacheTTL"` // How long the preview server reuses a built site (default 5m)
	BuildWorkers int           `yaml:"buildWorkers"` // Parallel page renders (default 8)
}

// Social lists the author's profiles. Empty entries are not rendered.
type Social struct {
	GitHub   string `yaml:"github" validate:"omitempty,url"`
	LinkedIn string `yaml:"linkedin" validate:"omitempty,url"`
	Twitter  string `yaml:"twitter" validate:"omitempty,url"`
	Telegram string `yaml:"telegram" validate:"omitempty,url"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.DateFormat == "" {
		c.DateFormat = content.DefaultDisplayLayout
	}
	if c.RSSPath == "" {
		c.RSSPath = "/rss.xml"
	}
	if !strings.HasPrefix(c.RSSPath, "/") {
		c.RSSPath = "/" + c.RSSPath
	}
	if c.PostsPerPage == 0 {
		c.PostsPerPage = 3
	}
	if c.TagPageRoot == "" {
		c.TagPageRoot = tags.DefaultRoot
	}
	c.TagPageRoot = strings.Trim(c.TagPageRoot, "/")
	if c.ContentDir == "" {
		c.ContentDir = "content/posts"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public_html"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.BuildWorkers <= 0 {
		c.BuildWorkers = 8
	}
}

// applyEnv lets deployment environments override file values.
func (c *SiteConfig) applyEnv() {
	c.Name = EnvOr("SITE_NAME", c.Name)
	c.URL = EnvOr("SITE_URL", c.URL)
	c.Description = EnvOr("SITE_DESCRIPTION", c.Description)
	c.Author = EnvOr("SITE_AUTHOR", c.Author)
	c.AnalyticsID = EnvOr("GOOGLE_ANALYTICS_ID", c.AnalyticsID)
	c.ContentDir = EnvOr("CONTENT_DIR", c.ContentDir)
	c.StaticDir = EnvOr("STATIC_DIR", c.StaticDir)
	c.OutputDir = EnvOr("OUTPUT_DIR", c.OutputDir)
	c.DatabasePath = EnvOr("DATABASE_PATH", c.DatabasePath)
	c.Addr = EnvOr("ADDR", c.Addr)
	if v := os.Getenv("POSTS_PER_PAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PostsPerPage = n
		}
	}
}

// Validate checks the loaded configuration.
func (c SiteConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("stacktobasics: invalid config: %w", err)
	}
	return nil
}

// LoadConfig reads the YAML site configuration at path, applies environment
// overrides and defaults, and validates the result. A missing file yields a
// default configuration.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Warnf("stacktobasics: config %s not found, using defaults", path)
		case err != nil:
			return SiteConfig{}, fmt.Errorf("stacktobasics: read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return SiteConfig{}, fmt.Errorf("stacktobasics: parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

// TagRegistry builds the tag registry described by the configuration.
func (c SiteConfig) TagRegistry() *tags.Registry {
	return tags.NewRegistry(c.TagPageRoot, c.Tags)
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
