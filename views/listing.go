package views

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/zinbo/stacktobasics/listing"
	"github.com/zinbo/stacktobasics/tags"
)

// PostListing renders listing entries followed by prev/next pagination.
func PostListing(l listing.Listing) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="posts-body"><div class="posts">`)
		for _, e := range l.Entries {
			h.render(ctx, postEntry(e))
		}
		h.raw(`</div>`)
		if l.Prev != "" || l.Next != "" {
			h.raw(`<ul class="pagination">`)
			if l.Prev != "" {
				h.raw(`<li class="prev-page"><a`)
				h.href(l.Prev)
				h.raw(` rel="prev">← Previous Page</a></li>`)
			}
			if l.Next != "" {
				h.raw(`<li class="next-page"><a`)
				h.href(l.Next)
				h.raw(` rel="next">Next Page →</a></li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</div>`)
	})
}

func postEntry(e listing.Entry) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<article class="post"><h2 class="post-title"><a`)
		h.href(e.Link)
		h.raw(`>`)
		h.text(e.Title)
		h.raw(`</a></h2>`)
		h.render(ctx, subHeading(e.Date, e.ReadingTime))
		if e.Excerpt != "" {
			h.raw(`<div class="post-description">`)
			h.text(e.Excerpt)
			h.raw(`</div>`)
		}
		h.render(ctx, PostTags(e.Tags))
		h.raw(`</article>`)
	})
}

func subHeading(date string, minutes int) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="post-sub-heading"><div class="post-date">`)
		h.text(date)
		h.raw(`</div><div class="post-time">`)
		h.text(strconv.Itoa(minutes))
		h.raw(` min read</div></div>`)
	})
}

// PostTags renders tag badges. Nothing is written for an empty slice.
func PostTags(badges []tags.Badge) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		if len(badges) == 0 {
			return
		}
		h.raw(`<div class="tags">`)
		for _, b := range badges {
			h.raw(`<a`)
			h.href(b.Href)
			h.raw(`><span class="tag">`)
			h.text(b.Label)
			h.raw(`</span></a>`)
		}
		h.raw(`</div>`)
	})
}
