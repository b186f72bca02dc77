package content

import (
	"context"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"

	"github.com/zinbo/stacktobasics/markdown"
	"github.com/zinbo/stacktobasics/tags"
)

const (
	// ExcerptLength is the rune budget of a generated excerpt.
	ExcerptLength = 140
	// WordsPerMinute drives the reading time estimate.
	WordsPerMinute = 265
)

type frontMatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Slug    string   `yaml:"slug"`
	Tags    []string `yaml:"tags"`
	Cover   string   `yaml:"cover"`
	Draft   bool     `yaml:"draft"`
	Excerpt string   `yaml:"excerpt"`
}

// Loader reads Markdown posts from a directory tree.
type Loader struct {
	Dir      string
	Renderer *markdown.Renderer
}

// NewLoader returns a Loader over dir. A nil renderer gets the default one.
func NewLoader(dir string, r *markdown.Renderer) *Loader {
	if r == nil {
		r = markdown.New()
	}
	return &Loader{Dir: dir, Renderer: r}
}

// Load parses every *.md file under the loader's directory and returns the
// records sorted by date descending, then slug. Drafts are included with
// Published set to false.
func (l *Loader) Load(ctx context.Context) ([]Post, error) {
	var posts []Post
	seen := make(map[string]string)
	err := filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		p, err := l.ParseFile(path)
		if err != nil {
			return err
		}
		if prev, ok := seen[p.Slug]; ok {
			return fmt.Errorf("%w: %q in %s and %s", ErrDuplicateSlug, p.Slug, prev, path)
		}
		seen[p.Slug] = path
		posts = append(posts, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortByDate(posts)
	return posts, nil
}

// ParseFile reads and parses a single Markdown file.
func (l *Loader) ParseFile(path string) (Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Post{}, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p, err := Parse(name, data, l.Renderer)
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse builds a record from raw file contents. name is the file name
// without extension and becomes the slug when front matter has none. A nil
// renderer gets the default one.
func Parse(name string, data []byte, r *markdown.Renderer) (Post, error) {
	if r == nil {
		r = markdown.New()
	}
	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Post{}, fmt.Errorf("%w: parse front matter: %v", ErrInvalidPost, err)
		}
	}
	html, err := r.Render(body)
	if err != nil {
		return Post{}, err
	}
	text, err := plainText(html)
	if err != nil {
		return Post{}, err
	}

	slug := strings.TrimSpace(front.Slug)
	if slug == "" {
		slug = tags.KebabCase(name)
	}
	p := Post{
		Slug:        slug,
		Title:       strings.TrimSpace(front.Title),
		Date:        normalizeDate(front.Date),
		Tags:        cleanTags(front.Tags),
		Excerpt:     strings.TrimSpace(front.Excerpt),
		ReadingTime: ReadingTime(text),
		Cover:       strings.TrimSpace(front.Cover),
		Content:     html,
		Link:        PostPath(slug),
		Published:   !front.Draft,
	}
	if p.Excerpt == "" {
		p.Excerpt = Excerpt(text, ExcerptLength)
	}
	if err := p.Validate(); err != nil {
		return Post{}, fmt.Errorf("%w: %v", ErrInvalidPost, err)
	}
	return p, nil
}

// SortByDate orders posts newest first; equal dates fall back to slug order.
func SortByDate(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})
}

// ReadingTime estimates minutes to read text: words over WordsPerMinute,
// rounded, never below one.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	minutes := int(math.Round(float64(words) / WordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Excerpt returns the first max runes of text cut back to a word boundary,
// with an ellipsis when anything was dropped.
func Excerpt(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

func plainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("content: read rendered html: %w", err)
	}
	doc.Find("pre").Remove()
	var parts []string
	doc.Find("body").Children().Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " "), nil
}

func cleanTags(raw []string) []string {
	var out []string
	for _, t := range raw {
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(strings.TrimRight(lines[0], "\r")) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(strings.TrimRight(lines[i], "\r")) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

// normalizeDate accepts the layouts authors tend to write and returns
// DateLayout. Unparseable values are returned trimmed so validation reports them.
func normalizeDate(v string) string {
	v = strings.TrimSpace(v)
	layouts := []string{
		DateLayout,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006/01/02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(DateLayout)
		}
	}
	return v
}
