package views

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/a-h/templ"

	"github.com/zinbo/stacktobasics/markdown"
)

// Home is a listing page wrapped in the layout.
func Home(site Site, meta PageMeta, listingBody templ.Component) templ.Component {
	return Layout(site, meta, listingBody)
}

// Post renders a single article page.
func Post(site Site, meta PageMeta, p PostView) templ.Component {
	return Layout(site, meta, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<article class="post-page"><h1 class="post-title">`)
		h.text(p.Title)
		h.raw(`</h1>`)
		h.render(ctx, subHeading(p.Date, p.ReadingTime))
		if p.Cover != "" {
			h.raw(`<img class="post-cover"`)
			h.attr("src", string(templ.URL(p.Cover)))
			h.attr("alt", p.Title)
			h.raw(` loading="lazy" decoding="async"/>`)
		}
		h.render(ctx, PostTags(p.Tags))
		h.raw(`<div class="post-body">`)
		h.render(ctx, markdown.HTML(p.Body))
		h.raw(`</div>`)
		if len(p.Share) > 0 {
			h.raw(`<div class="share"><span>Share:</span>`)
			for _, s := range p.Share {
				h.raw(`<a class="share-button"`)
				h.href(s.URL)
				h.raw(` target="_blank" rel="noopener noreferrer">`)
				h.text(s.Name)
				h.raw(`</a>`)
			}
			h.raw(`</div>`)
		}
		h.raw(`</article>`)
		if len(p.Related) > 0 {
			h.raw(`<section class="related"><h2>Related posts</h2><ul>`)
			for _, r := range p.Related {
				h.raw(`<li><a`)
				h.href(r.Link)
				h.raw(`>`)
				h.text(r.Title)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul></section>`)
		}
		if p.Comments && site.DisqusScript != "" {
			h.render(ctx, disqusThread(site.DisqusScript, p.URL, p.Slug))
		}
	}))
}

// disqusThread embeds the Disqus comment thread for one post.
func disqusThread(script, pageURL, id string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="comments"><div id="disqus_thread"></div><script>`)
		h.raw(`var disqus_config=function(){this.page.url=`, jsString(pageURL), `;this.page.identifier=`, jsString(id), `;};`)
		h.raw(`(function(){var d=document,s=d.createElement('script');s.src=`, jsString(script),
			`;s.setAttribute('data-timestamp',+new Date());(d.head||d.body).appendChild(s);})();`)
		h.raw(`</script></section>`)
	})
}

// jsString quotes s as a JavaScript string literal that is safe inside a
// script element.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// Tag renders the page for a single tag.
func Tag(site Site, meta PageMeta, t TagView) templ.Component {
	return Layout(site, meta, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<header class="tag-header"><h1>`)
		h.text(t.Label)
		h.raw(`</h1>`)
		if t.Description != "" {
			h.raw(`<p class="tag-description">`)
			h.text(t.Description)
			h.raw(`</p>`)
		}
		h.raw(`</header>`)
		h.render(ctx, PostListing(t.Listing))
	}))
}

// About renders the author page.
func About(site Site, meta PageMeta, a AboutView) templ.Component {
	return Layout(site, meta, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="about"><h1>About the Author</h1>`)
		if a.Avatar != "" {
			h.raw(`<img class="profile-picture"`)
			h.attr("src", string(templ.URL(a.Avatar)))
			h.raw(` alt="profile"/>`)
		}
		if a.Author != "" {
			h.raw(`<p>Hi, I'm `)
			h.text(a.Author)
			h.raw(`.</p>`)
		}
		if a.Location != "" {
			h.raw(`<p class="location">`)
			h.text(a.Location)
			h.raw(`</p>`)
		}
		if a.Description != "" {
			h.raw(`<p>`)
			h.text(a.Description)
			h.raw(`</p>`)
		}
		if len(a.Social) > 0 {
			h.raw(`<p>Feel free to contact me!</p><ul class="social">`)
			for _, s := range a.Social {
				h.raw(`<li><a`)
				h.href(s.URL)
				h.raw(` target="_blank" rel="noopener noreferrer">`)
				h.text(s.Name)
				h.raw(`</a></li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</section>`)
	}))
}

// NotFound is the 404 page.
func NotFound(site Site) templ.Component {
	return Layout(site, PageMeta{Title: "Page not found"}, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="error"><h1>Page not found</h1><p>Nothing lives here. <a href="/">Back to the posts</a>.</p></section>`)
	}))
}

// ServerError is the 5xx page.
func ServerError(site Site) templ.Component {
	return Layout(site, PageMeta{Title: "Something went wrong"}, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="error"><h1>Something went wrong</h1><p>Please try again in a moment.</p></section>`)
	}))
}

// ShareLinks builds the social sharing targets for an absolute post URL.
func ShareLinks(postURL, title string) []Link {
	u := url.QueryEscape(postURL)
	t := url.QueryEscape(title)
	return []Link{
		{Name: "Twitter", URL: "https://twitter.com/intent/tweet?url=" + u + "&text=" + t},
		{Name: "LinkedIn", URL: "https://www.linkedin.com/sharing/share-offsite/?url=" + u},
		{Name: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + u},
		{Name: "Reddit", URL: "https://www.reddit.com/submit?url=" + u + "&title=" + t},
		{Name: "Telegram", URL: "https://t.me/share/url?url=" + u + "&text=" + t},
	}
}
