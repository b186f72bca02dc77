package views

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// Layout wraps body with the document head, header and footer.
func Layout(site Site, meta PageMeta, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		title := site.Name
		if meta.Title != "" && meta.Title != site.Name {
			title = meta.Title + " | " + site.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = site.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		if meta.NoIndex {
			h.raw(`<meta name="robots" content="noindex"/>`)
		}
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title><meta name="description"`)
		h.attr("content", desc)
		h.raw(`/>`)
		if meta.URL != "" {
			h.raw(`<link rel="canonical"`)
			h.href(meta.URL)
			h.raw(`/><meta property="og:url"`)
			h.attr("content", meta.URL)
			h.raw(`/>`)
		}
		h.raw(`<meta property="og:title"`)
		h.attr("content", title)
		h.raw(`/><meta property="og:description"`)
		h.attr("content", desc)
		h.raw(`/><meta property="og:type"`)
		h.attr("content", ogType)
		h.raw(`/>`)
		if meta.Image != "" {
			h.raw(`<meta property="og:image"`)
			h.attr("content", meta.Image)
			h.raw(`/>`)
		}
		if site.RSSPath != "" {
			h.raw(`<link rel="alternate" type="application/rss+xml"`)
			h.attr("title", site.Name)
			h.href(site.RSSPath)
			h.raw(`/>`)
		}
		h.raw(`<link rel="stylesheet" href="/public/style.css"/>`)
		if meta.JSONLD != "" {
			h.raw(`<script type="application/ld+json">`, meta.JSONLD, `</script>`)
		}
		if site.AnalyticsID != "" {
			id := templ.EscapeString(site.AnalyticsID)
			h.raw(`<script async src="https://www.googletagmanager.com/gtag/js?id=`, id, `"></script>`)
			h.raw(`<script>window.dataLayer=window.dataLayer||[];function gtag(){dataLayer.push(arguments);}gtag('js',new Date());gtag('config','`,
				strings.ReplaceAll(id, "'", ""), `');</script>`)
		}
		h.raw(`</head><body><div id="container">`)
		h.render(ctx, header(site))
		h.raw(`<main>`)
		h.render(ctx, body)
		h.raw(`</main>`)
		h.render(ctx, footer(site))
		h.raw(`</div></body></html>`)
	})
}

func header(site Site) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<nav class="navbar"><div class="navitems"><a href="/">`)
		h.text(site.Name)
		h.raw(`</a></div><div class="navitems"><a href="/about">About</a></div></nav>`)
	})
}

func footer(site Site) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<footer class="footer">`)
		if site.RSSPath != "" {
			h.raw(`<div class="navitem"><a`)
			h.href(site.RSSPath)
			h.raw(` target="_blank" rel="noopener noreferrer">RSS</a></div>`)
		}
		if site.Copyright != "" {
			h.raw(`<div class="copyright">`)
			h.text(site.Copyright)
			h.raw(`</div>`)
		}
		h.raw(`</footer>`)
	})
}
