package views

import (
	"github.com/zinbo/stacktobasics/listing"
	"github.com/zinbo/stacktobasics/tags"
)

// Site holds site-wide settings every page needs. Built once from config.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
	Copyright   string
	RSSPath     string
	AnalyticsID string
	Social      []Link
	// DisqusScript is the embed.js URL of the comment thread, if any.
	DisqusScript string
}

// Link is a labelled external or internal target.
type Link struct {
	Name string
	URL  string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
	JSONLD      string
	NoIndex     bool // keep the page out of search engines
}

// PostView is everything the post page renders.
type PostView struct {
	Slug        string
	URL         string // absolute, used as the comment thread id
	Title       string
	Date        string
	ReadingTime int
	Cover       string
	Body        string // sanitized HTML
	Tags        []tags.Badge
	Share       []Link
	Related     []listing.Entry
	Comments    bool
}

// TagView is a tag page: heading, optional description and its posts.
type TagView struct {
	Label       string
	Description string
	Listing     listing.Listing
}

// AboutView is the author page.
type AboutView struct {
	Author      string
	Location    string
	Description string
	Avatar      string
	Social      []Link
}
