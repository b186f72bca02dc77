package stacktobasics

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/zinbo/stacktobasics/tags"
)

func (a *App) handleHome(c echo.Context) error {
	site, err := a.Site()
	if err != nil {
		return err
	}
	page, _ := site.ListingPage(1)
	return Render(c, page.Component)
}

func (a *App) handleListingPage(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return echo.ErrNotFound
	}
	if n == 1 {
		return c.Redirect(http.StatusMovedPermanently, "/")
	}
	site, err := a.Site()
	if err != nil {
		return err
	}
	page, ok := site.ListingPage(n)
	if !ok {
		return echo.ErrNotFound
	}
	return Render(c, page.Component)
}

func (a *App) handleTag(c echo.Context) error {
	tag, err := url.PathUnescape(c.Param("tag"))
	if err != nil {
		return echo.ErrNotFound
	}
	if id := tags.KebabCase(tag); id != tag {
		if id == "" {
			return echo.ErrNotFound
		}
		return c.Redirect(http.StatusMovedPermanently, a.Tags.Link(tag))
	}
	site, err := a.Site()
	if err != nil {
		return err
	}
	page, ok := site.TagPage(tag)
	if !ok {
		return echo.ErrNotFound
	}
	return Render(c, page.Component)
}

func (a *App) handlePost(c echo.Context) error {
	site, err := a.Site()
	if err != nil {
		return err
	}
	page, ok := site.PostPage(c.Param("slug"))
	if !ok {
		return echo.ErrNotFound
	}
	return Render(c, page.Component)
}

// handleDraft previews any indexed post, drafts included. Published posts
// redirect to their real page.
func (a *App) handleDraft(c echo.Context) error {
	post, err := a.Store.GetPostAny(c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	if post.Published {
		return c.Redirect(http.StatusFound, post.Link)
	}
	site, err := a.Site()
	if err != nil {
		return err
	}
	return Render(c, site.DraftPage(post).Component)
}

func (a *App) handleAbout(c echo.Context) error {
	site, err := a.Site()
	if err != nil {
		return err
	}
	return Render(c, site.AboutPage().Component)
}

func (a *App) handleSitemap(c echo.Context) error {
	site, err := a.Site()
	if err != nil {
		return err
	}
	return RenderXML(c, "application/xml; charset=utf-8", site.WriteSitemap)
}

func (a *App) handleFeed(c echo.Context) error {
	site, err := a.Site()
	if err != nil {
		return err
	}
	return RenderXML(c, "application/rss+xml; charset=utf-8", site.WriteRSS)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

// handleStylesheet prefers a style.css in the static dir over the embedded one.
func (a *App) handleStylesheet(embedded echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		override := filepath.Join(a.Config.StaticDir, "style.css")
		if _, err := os.Stat(override); err == nil {
			return c.File(override)
		}
		return embedded(c)
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.chrome.NotFoundPage())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.chrome.ServerErrorPage())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
