package stacktobasics

import (
	"encoding/xml"
	"io"

	"github.com/zinbo/stacktobasics/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap writes a sitemap listing every HTML page of the site.
func (s *Site) WriteSitemap(w io.Writer) error {
	base := s.cfg.URL
	lastMod := make(map[string]string, len(s.posts))
	for _, p := range s.posts {
		lastMod[content.PostPath(p.Slug)] = p.Date
	}
	pages := s.Pages()
	urls := make([]sitemapURL, 0, len(pages))
	for _, p := range pages {
		urls = append(urls, sitemapURL{
			Loc:     AbsoluteURL(base, p.Path),
			LastMod: lastMod[p.Path],
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(sitemap)
}
