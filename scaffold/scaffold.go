// Package scaffold provides embedded templates for the `new` command.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// PostData holds the template variables for a new post.
type PostData struct {
	Title string
	Date  string
	Slug  string
	Tags  []string
	Cover string
	Draft bool
}

var postTemplate = template.Must(template.New("post.md.tmpl").ParseFS(Templates, "templates/post.md.tmpl"))

// Post renders the Markdown skeleton of a new post.
func Post(d PostData) ([]byte, error) {
	d.Title = quoteSafe(d.Title)
	escaped := make([]string, len(d.Tags))
	for i, t := range d.Tags {
		escaped[i] = quoteSafe(t)
	}
	d.Tags = escaped
	var buf bytes.Buffer
	if err := postTemplate.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("scaffold: execute post template: %w", err)
	}
	return buf.Bytes(), nil
}

// quoteSafe escapes characters that would end a double-quoted YAML scalar.
func quoteSafe(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
