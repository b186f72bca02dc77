// Package stacktobasics builds the Stack to Basics blog: it indexes Markdown
// posts into SQLite, renders paginated listings, tag pages and posts, and
// either writes them out as static files or serves them for preview.
package stacktobasics

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/zinbo/stacktobasics/content"
	"github.com/zinbo/stacktobasics/markdown"
	"github.com/zinbo/stacktobasics/tags"
)

// App is the central application. It wires together the store, cache,
// tag registry, renderer and the preview server.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *SiteCache
	Tags     *tags.Registry
	Renderer *markdown.Renderer
	Logger   *log.Logger

	chrome *Site
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	logger := log.New("stacktobasics")
	logger.SetLevel(log.INFO)
	logger.SetHeader("${time_rfc3339} ${level} ${prefix}")

	a := &App{
		Config:   cfg,
		Echo:     echo.New(),
		Renderer: markdown.New(),
		Logger:   logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Tags = a.Config.TagRegistry()
	a.chrome = NewSite(a.Config, a.Tags, nil)
	a.Echo.HideBanner = true
	a.Echo.Logger = a.Logger
	return a
}

// Open initializes the store and cache. It is safe to call more than once.
func (a *App) Open() error {
	if a.Store != nil {
		return nil
	}
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("stacktobasics: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewSiteCache(a.Config.PostCacheTTL, a.loadSite)
	return nil
}

// Index loads every Markdown post from the content dir, processes cover
// images and replaces the store contents. It returns the number of posts
// indexed, drafts included.
func (a *App) Index(ctx context.Context) (int, error) {
	if err := a.Open(); err != nil {
		return 0, err
	}
	posts, err := content.NewLoader(a.Config.ContentDir, a.Renderer).Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("stacktobasics: load content: %w", err)
	}
	posts, err = ProcessCovers(ctx, a.Config.ContentDir, a.Config.StaticDir, posts)
	if err != nil {
		return 0, err
	}
	if err := a.Store.Reindex(ctx, posts); err != nil {
		return 0, fmt.Errorf("stacktobasics: reindex: %w", err)
	}
	a.Cache.Invalidate()
	a.Logger.Infof("indexed %d posts from %s", len(posts), a.Config.ContentDir)
	return len(posts), nil
}

// Site returns the cached Site over the currently published posts.
func (a *App) Site() (*Site, error) {
	if err := a.Open(); err != nil {
		return nil, err
	}
	return a.Cache.Site()
}

func (a *App) loadSite() (*Site, error) {
	posts, err := a.Store.ListPosts("")
	if err != nil {
		return nil, fmt.Errorf("stacktobasics: list posts: %w", err)
	}
	return NewSite(a.Config, a.Tags, posts), nil
}

// Build writes the static site to the output dir.
func (a *App) Build(ctx context.Context) (BuildReport, error) {
	if err := a.Open(); err != nil {
		return BuildReport{}, err
	}
	site, err := a.loadSite()
	if err != nil {
		return BuildReport{}, err
	}
	b := &Builder{
		Site:      site,
		OutputDir: a.Config.OutputDir,
		StaticDir: a.Config.StaticDir,
		Protect: []string{
			a.Config.ContentDir,
			a.Config.StaticDir,
			filepath.Dir(a.Config.DatabasePath),
		},
		Workers: a.Config.BuildWorkers,
		Logger:  a.Logger,
	}
	return b.Build(ctx)
}

// Handler sets up middleware and routes and returns the server handler
// without listening.
func (a *App) Handler() (http.Handler, error) {
	if err := a.Open(); err != nil {
		return nil, err
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a.Echo, nil
}

// Start initializes the app and runs the preview server until it fails or
// is shut down.
func (a *App) Start() error {
	if _, err := a.Handler(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the preview server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded stylesheet, unless the static dir ships its own.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS)))
	e.GET("/public/style.css", a.handleStylesheet(echo.WrapHandler(embeddedHandler)))

	e.Static("/public", a.Config.StaticDir)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET(a.Config.RSSPath, a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/about", a.handleAbout)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/blog/:slug", a.handlePost)
	e.GET("/drafts/:slug", a.handleDraft)
	e.GET("/"+a.Tags.Root()+"/:tag", a.handleTag)
	e.GET("/:page", a.handleListingPage)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
