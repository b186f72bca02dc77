package scaffold

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zinbo/stacktobasics/content"
)

func TestPostParsesAsContent(t *testing.T) {
	out, err := Post(PostData{
		Title: `Streams "in" Node.js`,
		Date:  "2020-04-05",
		Slug:  "streams-in-node-js",
		Tags:  []string{"Node.js", "Streams"},
	})
	require.NoError(t, err)

	p, err := content.Parse("ignored", out, nil)
	require.NoError(t, err)
	require.Equal(t, `Streams "in" Node.js`, p.Title)
	require.Equal(t, "2020-04-05", p.Date)
	require.Equal(t, "streams-in-node-js", p.Slug)
	require.Equal(t, []string{"Node.js", "Streams"}, p.Tags)
	require.True(t, p.Published)
}

func TestPostWithoutTagsIsDraft(t *testing.T) {
	out, err := Post(PostData{Title: "Later", Date: "2021-01-01", Slug: "later", Draft: true})
	require.NoError(t, err)
	require.Contains(t, string(out), "tags: []")

	p, err := content.Parse("later", out, nil)
	require.NoError(t, err)
	require.Empty(t, p.Tags)
	require.False(t, p.Published)
}

func TestPostDoesNotMutateTags(t *testing.T) {
	tags := []string{`say "hi"`}
	_, err := Post(PostData{Title: "x", Date: "2021-01-01", Slug: "x", Tags: tags})
	require.NoError(t, err)
	require.Equal(t, `say "hi"`, tags[0])
}
