package stacktobasics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	h, err := newTestApp(t).Handler()
	require.NoError(t, err)
	return h
}

func TestHandlerRoutes(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		target   string
		code     int
		location string
		contains string
	}{
		{"/", http.StatusOK, "", "Streams"},
		{"/2", http.StatusOK, "", "Getting Started"},
		{"/1", http.StatusMovedPermanently, "/", ""},
		{"/3", http.StatusNotFound, "", "Page not found"},
		{"/0", http.StatusNotFound, "", "Page not found"},
		{"/not-a-number", http.StatusNotFound, "", "Page not found"},
		{"/about", http.StatusOK, "", "Shane Jennings"},
		{"/about/", http.StatusMovedPermanently, "/about", ""},
		{"/blog", http.StatusMovedPermanently, "/", ""},
		{"/blog/streams", http.StatusOK, "", "Streams let you process data"},
		{"/blog/unfinished", http.StatusNotFound, "", "Page not found"},
		{"/blog/missing", http.StatusNotFound, "", "Page not found"},
		{"/drafts/unfinished", http.StatusOK, "", "Not yet."},
		{"/drafts/streams", http.StatusFound, "/blog/streams", ""},
		{"/drafts/missing", http.StatusNotFound, "", "Page not found"},
		{"/tags/node-js", http.StatusOK, "", "Node.js is a tool"},
		{"/tags/react-hooks", http.StatusOK, "", "React Hooks"},
		{"/tags/Node.js", http.StatusMovedPermanently, "/tags/node-js", ""},
		{"/tags/React%20Hooks", http.StatusMovedPermanently, "/tags/react-hooks", ""},
		{"/tags/unused", http.StatusNotFound, "", "Page not found"},
		{"/rss.xml", http.StatusOK, "", "<rss version=\"2.0\">"},
		{"/sitemap.xml", http.StatusOK, "", "https://stacktobasics.com/tags/go"},
		{"/public/style.css", http.StatusOK, "", ".pagination"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(t, h, tt.target)
			require.Equal(t, tt.code, rec.Code)
			if tt.location != "" {
				require.Equal(t, tt.location, rec.Header().Get("Location"))
			}
			if tt.contains != "" {
				require.Contains(t, rec.Body.String(), tt.contains)
			}
		})
	}
}

func TestHandlerListingPagination(t *testing.T) {
	h := newTestHandler(t)

	rec := serve(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=UTF-8", rec.Header().Get("Content-Type"))
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	require.Equal(t, 2, doc.Find("article.post").Length())
	_, hasPrev := doc.Find(`a[rel="prev"]`).Attr("href")
	require.False(t, hasPrev)
	next, _ := doc.Find(`a[rel="next"]`).Attr("href")
	require.Equal(t, "/2", next)

	rec = serve(t, h, "/2")
	doc, err = goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("article.post").Length())
	prev, _ := doc.Find(`a[rel="prev"]`).Attr("href")
	require.Equal(t, "/", prev)
	_, hasNext := doc.Find(`a[rel="next"]`).Attr("href")
	require.False(t, hasNext)
}

func TestHandlerHeaders(t *testing.T) {
	h := newTestHandler(t)

	rec := serve(t, h, "/rss.xml")
	require.Equal(t, "application/rss+xml; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

	rec = serve(t, h, "/")
	require.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestHandlerStaticOverridesEmbeddedStylesheet(t *testing.T) {
	a := newTestApp(t)
	writeFixtures(t, a.Config.StaticDir, map[string]string{"style.css": "body{color:red}"})
	h, err := a.Handler()
	require.NoError(t, err)

	rec := serve(t, h, "/public/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "color:red"))
}

func TestHandlerDraftPreviewIsNotIndexed(t *testing.T) {
	h := newTestHandler(t)

	doc, err := goquery.NewDocumentFromReader(serve(t, h, "/drafts/unfinished").Body)
	require.NoError(t, err)
	robots, _ := doc.Find(`meta[name="robots"]`).Attr("content")
	require.Equal(t, "noindex", robots)
	require.Zero(t, doc.Find(".share").Length())
	require.Zero(t, doc.Find("#disqus_thread").Length())

	doc, err = goquery.NewDocumentFromReader(serve(t, h, "/blog/streams").Body)
	require.NoError(t, err)
	require.Zero(t, doc.Find(`meta[name="robots"]`).Length())
}
