package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zinbo/stacktobasics/markdown"
)

func writePost(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestParseFrontMatter(t *testing.T) {
	t.Parallel()

	src := "---\ntitle: Understanding Spring Boot\ndate: 2020-05-17\ntags:\n  - Spring Boot\n  - java\ncover: cover.png\n---\n\n# Intro\n\nSpring Boot makes it **easy**.\n"
	p, err := Parse("understanding-spring-boot", []byte(src), markdown.New())
	require.NoError(t, err)
	require.Equal(t, "understanding-spring-boot", p.Slug)
	require.Equal(t, "Understanding Spring Boot", p.Title)
	require.Equal(t, "2020-05-17", p.Date)
	require.Equal(t, []string{"Spring Boot", "java"}, p.Tags)
	require.Equal(t, "cover.png", p.Cover)
	require.Equal(t, "/blog/understanding-spring-boot", p.Link)
	require.True(t, p.Published)
	require.Equal(t, 1, p.ReadingTime)
	require.Contains(t, p.Content, "<strong>easy</strong>")
	require.Equal(t, "Intro Spring Boot makes it easy.", p.Excerpt)
}

func TestParseSlugFromFileName(t *testing.T) {
	p, err := Parse("My First Post", []byte("---\ntitle: Hi\ndate: 2021-01-01\n---\nbody"), markdown.New())
	require.NoError(t, err)
	require.Equal(t, "my-first-post", p.Slug)
}

func TestParseDateLayouts(t *testing.T) {
	for _, date := range []string{"2021-03-04", "2021-03-04T10:00:00Z", "2021-03-04 09:30", "2021/03/04"} {
		p, err := Parse("x", []byte("---\ntitle: X\ndate: "+date+"\n---\nbody"), markdown.New())
		require.NoError(t, err, date)
		require.Equal(t, "2021-03-04", p.Date, date)
	}
}

func TestParseMissingTagsTolerated(t *testing.T) {
	p, err := Parse("no-tags", []byte("---\ntitle: No Tags\ndate: 2021-01-01\ntags:\n  - ''\n---\nbody"), markdown.New())
	require.NoError(t, err)
	require.Empty(t, p.Tags)
}

func TestParseDraft(t *testing.T) {
	p, err := Parse("draft", []byte("---\ntitle: Draft\ndate: 2021-01-01\ndraft: true\n---\nbody"), markdown.New())
	require.NoError(t, err)
	require.False(t, p.Published)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing title", "---\ndate: 2021-01-01\n---\nbody"},
		{"bad date", "---\ntitle: X\ndate: yesterday\n---\nbody"},
		{"bad slug", "---\ntitle: X\nslug: Not A Slug\ndate: 2021-01-01\n---\nbody"},
		{"bad yaml", "---\ntitle: [unclosed\n---\nbody"},
	}
	for _, tt := range tests {
		_, err := Parse("x", []byte(tt.src), markdown.New())
		require.Error(t, err, tt.name)
		require.ErrorIs(t, err, ErrInvalidPost, tt.name)
	}
}

func TestParseExplicitExcerpt(t *testing.T) {
	p, err := Parse("x", []byte("---\ntitle: X\ndate: 2021-01-01\nexcerpt: Short and sweet.\n---\nA much longer body."), markdown.New())
	require.NoError(t, err)
	require.Equal(t, "Short and sweet.", p.Excerpt)
}

func TestExcerpt(t *testing.T) {
	require.Equal(t, "short text", Excerpt("  short \n text ", 140))

	long := strings.Repeat("word ", 60)
	got := Excerpt(long, 140)
	require.True(t, strings.HasSuffix(got, "…"))
	require.LessOrEqual(t, len([]rune(got)), 141)
	require.False(t, strings.Contains(got, "wor…"))
}

func TestExcerptSkipsCodeBlocks(t *testing.T) {
	p, err := Parse("x", []byte("---\ntitle: X\ndate: 2021-01-01\n---\n```go\nfunc main() {}\n```\n\nAfter the code."), markdown.New())
	require.NoError(t, err)
	require.Equal(t, "After the code.", p.Excerpt)
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words    int
		expected int
	}{
		{0, 1},
		{100, 1},
		{265, 1},
		{400, 2},
		{530, 2},
		{1000, 4},
	}
	for _, tt := range tests {
		text := strings.TrimSpace(strings.Repeat("w ", tt.words))
		if got := ReadingTime(text); got != tt.expected {
			t.Errorf("ReadingTime(%d words) = %d, want %d", tt.words, got, tt.expected)
		}
	}
}

func TestLoadSortsAndDetectsDuplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePost(t, dir, "older.md", "---\ntitle: Older\ndate: 2020-01-01\n---\nold")
	writePost(t, dir, "newer.md", "---\ntitle: Newer\ndate: 2020-01-02\n---\nnew")
	writePost(t, filepath.Join(dir, "nested"), "same-day.md", "---\ntitle: Same Day\ndate: 2020-01-02\n---\nsame")
	writePost(t, dir, "notes.txt", "ignored")

	posts, err := NewLoader(dir, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, "newer", posts[0].Slug)
	require.Equal(t, "same-day", posts[1].Slug)
	require.Equal(t, "older", posts[2].Slug)

	writePost(t, dir, "dupe.md", "---\ntitle: Dupe\nslug: older\ndate: 2020-02-01\n---\ndupe")
	_, err = NewLoader(dir, nil).Load(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDuplicateSlug))
}

func TestLoadReportsFile(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "broken.md", "---\ndate: 2020-01-01\n---\nno title")

	_, err := NewLoader(dir, nil).Load(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken.md")
	require.ErrorIs(t, err, ErrInvalidPost)
}

func TestLoadCanceled(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "a.md", "---\ntitle: A\ndate: 2020-01-01\n---\na")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(dir, nil).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFormattedDate(t *testing.T) {
	p := Post{Date: "2020-01-02"}
	require.Equal(t, "January 02, 2020", p.FormattedDate(""))
	require.Equal(t, "02/01/2020", p.FormattedDate("02/01/2006"))
	require.Equal(t, "someday", Post{Date: "someday"}.FormattedDate(""))
}
