package stacktobasics

import (
	"path"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/zinbo/stacktobasics/content"
	"github.com/zinbo/stacktobasics/listing"
	"github.com/zinbo/stacktobasics/tags"
	"github.com/zinbo/stacktobasics/views"
)

// Page is one addressable HTML page of the site.
type Page struct {
	Path      string
	Component templ.Component
}

// File returns the output file for the page relative to the output root:
// "/" is "index.html", "/2" is "2/index.html".
func (p Page) File() string {
	trimmed := strings.Trim(p.Path, "/")
	if trimmed == "" {
		return "index.html"
	}
	return path.Join(trimmed, "index.html")
}

// Site renders every page of the blog from one snapshot of published posts.
// It holds no mutable state, so pages may be rendered concurrently.
type Site struct {
	cfg   SiteConfig
	tags  *tags.Registry
	posts []content.Post
	view  views.Site
	opts  listing.Options
}

// NewSite builds a Site over posts, which must already be sorted newest
// first. Drafts are dropped.
func NewSite(cfg SiteConfig, reg *tags.Registry, posts []content.Post) *Site {
	published := make([]content.Post, 0, len(posts))
	for _, p := range posts {
		if p.Published {
			published = append(published, p)
		}
	}
	return &Site{
		cfg:   cfg,
		tags:  reg,
		posts: published,
		view:  siteView(cfg),
		opts:  listing.Options{Tags: reg, DateLayout: cfg.DateFormat},
	}
}

func siteView(cfg SiteConfig) views.Site {
	return views.Site{
		Name:        cfg.Name,
		URL:         cfg.URL,
		Description: cfg.Description,
		Author:      cfg.Author,
		Copyright:   cfg.Copyright,
		RSSPath:     cfg.RSSPath,
		AnalyticsID: cfg.AnalyticsID,
		Social:      socialLinks(cfg),

		DisqusScript: cfg.DisqusScript,
	}
}

func socialLinks(cfg SiteConfig) []views.Link {
	var links []views.Link
	add := func(name, u string) {
		if u != "" {
			links = append(links, views.Link{Name: name, URL: u})
		}
	}
	add("GitHub", cfg.Social.GitHub)
	add("LinkedIn", cfg.Social.LinkedIn)
	add("Twitter", cfg.Social.Twitter)
	add("Telegram", cfg.Social.Telegram)
	add("RSS", cfg.RSSPath)
	return links
}

// Posts returns the published posts the site is built from.
func (s *Site) Posts() []content.Post {
	return s.posts
}

// TotalPages is the number of listing pages.
func (s *Site) TotalPages() int {
	return listing.TotalPages(len(s.posts), s.cfg.PostsPerPage)
}

// Pages enumerates every HTML page in a stable order: listing pages, tag
// pages, posts, then the about page.
func (s *Site) Pages() []Page {
	pages := s.ListingPages()
	for _, id := range s.TagIDs() {
		if p, ok := s.TagPage(id); ok {
			pages = append(pages, p)
		}
	}
	for _, post := range s.posts {
		pages = append(pages, s.postPage(post, false))
	}
	return append(pages, s.AboutPage())
}

// ListingPages returns the paginated home listing, one page per
// PostsPerPage posts and at least one.
func (s *Site) ListingPages() []Page {
	chunks := listing.Paginate(s.posts, s.cfg.PostsPerPage)
	pages := make([]Page, 0, len(chunks))
	for _, c := range chunks {
		pages = append(pages, s.listingPage(c))
	}
	return pages
}

// ListingPage returns listing page n. ok is false when n is out of range.
func (s *Site) ListingPage(n int) (Page, bool) {
	if n < 1 || n > s.TotalPages() {
		return Page{}, false
	}
	chunks := listing.Paginate(s.posts, s.cfg.PostsPerPage)
	return s.listingPage(chunks[n-1]), true
}

func (s *Site) listingPage(c listing.Page) Page {
	p := listing.PagePath(c.Context.CurrentPage)
	title := s.cfg.Name
	if c.Context.CurrentPage > 1 {
		title = "Page " + strconv.Itoa(c.Context.CurrentPage)
	}
	meta := views.PageMeta{
		Title:  title,
		URL:    AbsoluteURL(s.cfg.URL, p),
		JSONLD: WebsiteJsonLD(s.cfg),
	}
	body := views.PostListing(listing.Build(c.Posts, c.Context, s.opts))
	return Page{Path: p, Component: views.Home(s.view, meta, body)}
}

// TagIDs returns the canonical ids of every tag used by a published post,
// sorted.
func (s *Site) TagIDs() []string {
	set := make(map[string]struct{})
	for _, p := range s.posts {
		for _, t := range p.Tags {
			if id := tags.KebabCase(t); id != "" {
				set[id] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// TagPath returns the site path of the page for tag.
func (s *Site) TagPath(tag string) string {
	return s.tags.Link(tag)
}

// TagPage returns the page listing every post tagged with tag. ok is false
// when no published post carries it.
func (s *Site) TagPage(tag string) (Page, bool) {
	posts := listing.ByTag(s.posts, tag)
	if len(posts) == 0 {
		return Page{}, false
	}
	view := views.TagView{Label: s.tagLabel(tag, posts)}
	if d, ok := s.tags.Lookup(tag); ok {
		view.Description = d.Description
	}
	view.Listing = listing.Build(posts, listing.PageContext{CurrentPage: 1, TotalPages: 1}, s.opts)

	p := s.TagPath(tag)
	meta := views.PageMeta{
		Title:       view.Label,
		Description: view.Description,
		URL:         AbsoluteURL(s.cfg.URL, p),
	}
	return Page{Path: p, Component: views.Tag(s.view, meta, view)}, true
}

// tagLabel prefers the registry display name, then the first raw spelling
// found on a post.
func (s *Site) tagLabel(tag string, posts []content.Post) string {
	if d, ok := s.tags.Lookup(tag); ok {
		return d.DisplayName()
	}
	id := tags.KebabCase(tag)
	for _, p := range posts {
		for _, t := range p.Tags {
			if tags.KebabCase(t) == id {
				return t
			}
		}
	}
	return tag
}

// PostPage returns the page for the published post with slug.
func (s *Site) PostPage(slug string) (Page, bool) {
	for _, p := range s.posts {
		if p.Slug == slug {
			return s.postPage(p, false), true
		}
	}
	return Page{}, false
}

// DraftPage renders an unpublished post for preview. The page is marked
// noindex and carries no share links or comments.
func (s *Site) DraftPage(post content.Post) Page {
	return s.postPage(post, true)
}

func (s *Site) postPage(post content.Post, draft bool) Page {
	p := content.PostPath(post.Slug)
	postURL := AbsoluteURL(s.cfg.URL, p)
	related := listing.Build(FilterRelatedPosts(post, s.posts), listing.PageContext{CurrentPage: 1, TotalPages: 1}, s.opts)

	view := views.PostView{
		Slug:        post.Slug,
		URL:         postURL,
		Title:       post.Title,
		Date:        post.FormattedDate(s.cfg.DateFormat),
		ReadingTime: post.ReadingTime,
		Cover:       post.Cover,
		Body:        post.Content,
		Tags:        s.tags.Badges(post.Tags),
		Share:       views.ShareLinks(postURL, post.Title),
		Related:     related.Entries,
		Comments:    !draft,
	}
	if draft {
		view.Share = nil
	}
	meta := views.PageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
		URL:         postURL,
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(post, s.cfg),
		NoIndex:     draft,
	}
	if post.Cover != "" {
		meta.Image = AbsoluteURL(s.cfg.URL, post.Cover)
	}
	return Page{Path: p, Component: views.Post(s.view, meta, view)}
}

// AboutPage returns the author page.
func (s *Site) AboutPage() Page {
	meta := views.PageMeta{
		Title: "About",
		URL:   AbsoluteURL(s.cfg.URL, "/about"),
	}
	view := views.AboutView{
		Author:      s.cfg.Author,
		Location:    s.cfg.Location,
		Description: s.cfg.Bio,
		Avatar:      s.cfg.Avatar,
		Social:      s.view.Social,
	}
	return Page{Path: "/about", Component: views.About(s.view, meta, view)}
}

// NotFoundPage is rendered for unknown paths and written as 404.html.
func (s *Site) NotFoundPage() templ.Component {
	return views.NotFound(s.view)
}

// ServerErrorPage is rendered for 5xx responses.
func (s *Site) ServerErrorPage() templ.Component {
	return views.ServerError(s.view)
}
