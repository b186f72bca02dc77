// Package listing splits posts into fixed-size pages and derives the entries
// and prev/next navigation a listing page renders.
package listing

import (
	"strconv"

	"github.com/zinbo/stacktobasics/content"
	"github.com/zinbo/stacktobasics/tags"
)

// PageContext locates one listing page. CurrentPage is in [1, TotalPages];
// values outside that range are a caller error.
type PageContext struct {
	CurrentPage int
	TotalPages  int
}

// HasPrev reports whether a "previous" link is shown.
func (pc PageContext) HasPrev() bool {
	return pc.CurrentPage > 1
}

// HasNext reports whether a "next" link is shown.
func (pc PageContext) HasNext() bool {
	return pc.CurrentPage < pc.TotalPages
}

// PrevPath is the previous page target, or "" on the first page.
func (pc PageContext) PrevPath() string {
	if !pc.HasPrev() {
		return ""
	}
	return PagePath(pc.CurrentPage - 1)
}

// NextPath is the next page target, or "" on the last page.
func (pc PageContext) NextPath() string {
	if !pc.HasNext() {
		return ""
	}
	return PagePath(pc.CurrentPage + 1)
}

// PagePath returns "/" for the first page and "/{n}" otherwise.
func PagePath(n int) string {
	if n <= 1 {
		return "/"
	}
	return "/" + strconv.Itoa(n)
}

// TotalPages is ceil(total/size), never below one. A non-positive size puts
// everything on one page.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Page is one slice of the listing with its coordinates.
type Page struct {
	Context PageContext
	Posts   []content.Post
}

// Paginate splits posts, already sorted newest first, into pages of size.
// An empty input yields a single empty page.
func Paginate(posts []content.Post, size int) []Page {
	total := TotalPages(len(posts), size)
	if size <= 0 {
		size = len(posts)
	}
	pages := make([]Page, 0, total)
	for n := 1; n <= total; n++ {
		start := (n - 1) * size
		end := start + size
		if end > len(posts) {
			end = len(posts)
		}
		var slice []content.Post
		if start < end {
			slice = posts[start:end]
		}
		pages = append(pages, Page{
			Context: PageContext{CurrentPage: n, TotalPages: total},
			Posts:   slice,
		})
	}
	return pages
}

// Entry is one rendered row of a listing.
type Entry struct {
	Title       string
	Link        string
	Date        string
	ReadingTime int
	Excerpt     string
	Cover       string
	Tags        []tags.Badge
}

// Listing is everything a listing page shows. Prev and Next are empty when
// the link is hidden.
type Listing struct {
	Context PageContext
	Entries []Entry
	Prev    string
	Next    string
}

// Options carries the rendering context shared by every page.
type Options struct {
	Tags       *tags.Registry
	DateLayout string
}

// Build maps posts and their page coordinates to a listing. Posts keep their
// input order. An empty post sequence shows no navigation.
func Build(posts []content.Post, pc PageContext, opts Options) Listing {
	l := Listing{Context: pc}
	if len(posts) == 0 {
		return l
	}
	l.Entries = make([]Entry, 0, len(posts))
	for _, p := range posts {
		link := p.Link
		if link == "" {
			link = content.PostPath(p.Slug)
		}
		l.Entries = append(l.Entries, Entry{
			Title:       p.Title,
			Link:        link,
			Date:        p.FormattedDate(opts.DateLayout),
			ReadingTime: p.ReadingTime,
			Excerpt:     p.Excerpt,
			Cover:       p.Cover,
			Tags:        opts.Tags.Badges(p.Tags),
		})
	}
	l.Prev = pc.PrevPath()
	l.Next = pc.NextPath()
	return l
}

// ByTag returns the posts carrying tag, compared by canonical id.
func ByTag(posts []content.Post, tag string) []content.Post {
	id := tags.KebabCase(tag)
	if id == "" {
		return nil
	}
	var out []content.Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if tags.KebabCase(t) == id {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
