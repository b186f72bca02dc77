package listing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zinbo/stacktobasics/content"
	"github.com/zinbo/stacktobasics/tags"
)

func makePosts(n int) []content.Post {
	posts := make([]content.Post, n)
	for i := range posts {
		posts[i] = content.Post{
			Slug:  fmt.Sprintf("post-%d", i+1),
			Title: fmt.Sprintf("Post %d", i+1),
			Date:  fmt.Sprintf("2020-01-%02d", 28-i),
		}
	}
	return posts
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, expected int
	}{
		{0, 3, 1},
		{1, 3, 1},
		{3, 3, 1},
		{4, 3, 2},
		{7, 3, 3},
		{10, 1, 10},
		{5, 0, 1},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.expected {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.expected)
		}
	}
}

func TestPaginatePageCountIsCeil(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for size := 1; size <= 5; size++ {
			pages := Paginate(makePosts(total), size)
			want := (total + size - 1) / size
			require.Len(t, pages, want, "total=%d size=%d", total, size)

			seen := 0
			for i, p := range pages {
				require.Equal(t, i+1, p.Context.CurrentPage)
				require.Equal(t, want, p.Context.TotalPages)
				require.LessOrEqual(t, len(p.Posts), size)
				seen += len(p.Posts)
			}
			require.Equal(t, total, seen)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	pages := Paginate(nil, 3)
	require.Len(t, pages, 1)
	require.Empty(t, pages[0].Posts)
	require.Equal(t, PageContext{CurrentPage: 1, TotalPages: 1}, pages[0].Context)
}

func TestPaginateKeepsOrder(t *testing.T) {
	pages := Paginate(makePosts(5), 2)
	require.Equal(t, "post-1", pages[0].Posts[0].Slug)
	require.Equal(t, "post-3", pages[1].Posts[0].Slug)
	require.Equal(t, "post-5", pages[2].Posts[0].Slug)
}

func TestNavigationLinks(t *testing.T) {
	tests := []struct {
		current, total int
		prev, next     string
	}{
		{1, 1, "", ""},
		{1, 3, "", "/2"},
		{2, 3, "/", "/3"},
		{3, 3, "/2", ""},
		{4, 5, "/3", "/5"},
	}
	for _, tt := range tests {
		pc := PageContext{CurrentPage: tt.current, TotalPages: tt.total}
		require.Equal(t, tt.prev, pc.PrevPath(), "prev %d/%d", tt.current, tt.total)
		require.Equal(t, tt.next, pc.NextPath(), "next %d/%d", tt.current, tt.total)
		require.Equal(t, tt.current != 1, pc.HasPrev())
		require.Equal(t, tt.current != tt.total, pc.HasNext())
	}
}

func TestBuildTwoPostsPageSizeOne(t *testing.T) {
	p1 := content.Post{Slug: "p1", Title: "P1", Date: "2020-01-02"}
	p2 := content.Post{Slug: "p2", Title: "P2", Date: "2020-01-01"}
	pages := Paginate([]content.Post{p1, p2}, 1)
	require.Len(t, pages, 2)

	first := Build(pages[0].Posts, pages[0].Context, Options{})
	require.Len(t, first.Entries, 1)
	require.Equal(t, "P1", first.Entries[0].Title)
	require.Empty(t, first.Prev)
	require.Equal(t, "/2", first.Next)

	second := Build(pages[1].Posts, pages[1].Context, Options{})
	require.Len(t, second.Entries, 1)
	require.Equal(t, "P2", second.Entries[0].Title)
	require.Equal(t, "/", second.Prev)
	require.Empty(t, second.Next)
}

func TestBuildEmptyHasNoNavigation(t *testing.T) {
	l := Build(nil, PageContext{CurrentPage: 2, TotalPages: 3}, Options{})
	require.Empty(t, l.Entries)
	require.Empty(t, l.Prev)
	require.Empty(t, l.Next)
}

func TestBuildEntries(t *testing.T) {
	reg := tags.NewRegistry("tags", map[string]tags.Descriptor{
		"nodejs": {Name: "Node.js"},
	})
	post := content.Post{
		Slug:        "streams",
		Title:       "Streams",
		Date:        "2020-04-05",
		Tags:        []string{"Node.js", "Foo Bar"},
		Excerpt:     "All about streams",
		ReadingTime: 4,
	}
	l := Build([]content.Post{post}, PageContext{CurrentPage: 1, TotalPages: 1}, Options{Tags: reg})
	require.Len(t, l.Entries, 1)
	e := l.Entries[0]
	require.Equal(t, "/blog/streams", e.Link)
	require.Equal(t, "April 05, 2020", e.Date)
	require.Equal(t, 4, e.ReadingTime)
	require.Equal(t, "All about streams", e.Excerpt)
	require.Equal(t, []tags.Badge{
		{ID: "node-js", Label: "Node.js", Href: "/tags/node-js", Known: true},
		{ID: "foo-bar", Label: "Foo Bar", Href: "/tags/foo-bar"},
	}, e.Tags)
}

func TestBuildIsDeterministic(t *testing.T) {
	posts := makePosts(3)
	pc := PageContext{CurrentPage: 1, TotalPages: 2}
	require.Equal(t, Build(posts, pc, Options{}), Build(posts, pc, Options{}))
}

func TestByTag(t *testing.T) {
	posts := []content.Post{
		{Slug: "a", Tags: []string{"React Hooks"}},
		{Slug: "b", Tags: []string{"go"}},
		{Slug: "c", Tags: []string{"react hooks", "go"}},
		{Slug: "d"},
	}
	got := ByTag(posts, "react-hooks")
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].Slug)
	require.Equal(t, "c", got[1].Slug)
	require.Empty(t, ByTag(posts, "  "))
}
