package stacktobasics

import (
	"encoding/json"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/zinbo/stacktobasics/content"
	"github.com/zinbo/stacktobasics/tags"
)

// maxRelatedPosts caps the related list on a post page.
const maxRelatedPosts = 3

// BuildURL joins a base URL with path segments. With no segments the site
// root ("base/") is returned.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	return u.String()
}

// AbsoluteURL turns a site path such as "/tags/go" into a canonical URL.
// Values that are already absolute are returned unchanged.
func AbsoluteURL(base, sitePath string) string {
	if strings.Contains(sitePath, "://") {
		return sitePath
	}
	return BuildURL(base, strings.Split(strings.Trim(sitePath, "/"), "/")...)
}

// FilterRelatedPosts finds posts that share at least one tag with current,
// comparing canonical ids. posts keep their order and at most
// maxRelatedPosts are returned.
func FilterRelatedPosts(current content.Post, posts []content.Post) []content.Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		if id := tags.KebabCase(t); id != "" {
			tagSet[id] = struct{}{}
		}
	}
	var related []content.Post
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[tags.KebabCase(t)]; ok {
				related = append(related, p)
				break
			}
		}
		if len(related) == maxRelatedPosts {
			break
		}
	}
	return related
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post content.Post, cfg SiteConfig) string {
	postURL := AbsoluteURL(cfg.URL, content.PostPath(post.Slug))
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Excerpt,
		"datePublished": post.Date,
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.Cover != "" {
		data["image"] = AbsoluteURL(cfg.URL, post.Cover)
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
