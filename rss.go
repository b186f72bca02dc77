package stacktobasics

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/zinbo/stacktobasics/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title          string    `xml:"title"`
	Link           string    `xml:"link"`
	Description    string    `xml:"description"`
	Copyright      string    `xml:"copyright,omitempty"`
	ManagingEditor string    `xml:"managingEditor,omitempty"`
	LastBuildDate  string    `xml:"lastBuildDate,omitempty"`
	Items          []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// rssPerson formats an RSS author field, "email (Name)". RSS requires an
// email, so nothing is written without one.
func rssPerson(email, name string) string {
	if email == "" {
		return ""
	}
	if name == "" {
		return email
	}
	return email + " (" + name + ")"
}

func rssDate(date string) string {
	t, err := time.Parse(content.DateLayout, date)
	if err != nil {
		return ""
	}
	return t.Format(time.RFC1123Z)
}

// WriteRSS writes the RSS 2.0 feed of the site's published posts.
func (s *Site) WriteRSS(w io.Writer) error {
	base := s.cfg.URL
	author := rssPerson(s.cfg.Email, s.cfg.Author)
	items := make([]rssItem, 0, len(s.posts))
	for _, p := range s.posts {
		postURL := AbsoluteURL(base, content.PostPath(p.Slug))
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			Author:      author,
			PubDate:     rssDate(p.Date),
			GUID:        postURL,
			Categories:  p.Tags,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:          s.cfg.Name,
			Link:           BuildURL(base),
			Description:    s.cfg.Description,
			Copyright:      s.cfg.Copyright,
			ManagingEditor: author,
			Items:          items,
		},
	}
	if len(s.posts) > 0 {
		feed.Channel.LastBuildDate = rssDate(s.posts[0].Date)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(feed)
}
