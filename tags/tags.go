// Package tags resolves post tags to display labels and canonical link paths
// using the static tag registry from site configuration.
package tags

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultRoot is the path segment tag pages live under.
const DefaultRoot = "tags"

// Descriptor is one entry of the tag registry.
type Descriptor struct {
	ID          string   `yaml:"-"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Aliases     []string `yaml:"aliases"`
}

// DisplayName returns the explicit name, or a capitalized form of the id
// ("spring-boot" -> "Spring Boot").
func (d Descriptor) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(d.ID, "-", " "))
}

// Badge is a tag ready to render: the visible label and its link target.
type Badge struct {
	ID    string
	Label string
	Href  string
	Known bool
}

// Registry maps tag ids to descriptors. A nil *Registry is valid and knows no tags.
type Registry struct {
	root  string
	byID  map[string]Descriptor
	index map[string]string
}

// NewRegistry builds a registry from the id -> descriptor map found in config.
// Ids are canonicalized, so "Node.js" and "node-js" name the same entry.
func NewRegistry(root string, descs map[string]Descriptor) *Registry {
	root = strings.Trim(strings.TrimSpace(root), "/")
	if root == "" {
		root = DefaultRoot
	}
	r := &Registry{
		root:  root,
		byID:  make(map[string]Descriptor, len(descs)),
		index: make(map[string]string),
	}
	keys := make([]string, 0, len(descs))
	for k := range descs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d := descs[k]
		id := KebabCase(k)
		if id == "" {
			continue
		}
		d.ID = id
		r.byID[id] = d
		r.add(id, id)
		for _, a := range d.Aliases {
			r.add(KebabCase(a), id)
		}
	}
	return r
}

// add registers key and its compact form, keeping the first registration.
func (r *Registry) add(key, id string) {
	if key == "" {
		return
	}
	if _, ok := r.index[key]; !ok {
		r.index[key] = id
	}
	compact := strings.ReplaceAll(key, "-", "")
	if _, ok := r.index[compact]; !ok {
		r.index[compact] = id
	}
}

// Root returns the tag page root segment.
func (r *Registry) Root() string {
	if r == nil {
		return DefaultRoot
	}
	return r.root
}

// Lookup finds the descriptor for a raw tag by canonical id, alias, or
// compact form ("node-js" matches a "nodejs" entry).
func (r *Registry) Lookup(tag string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	id := KebabCase(tag)
	if id == "" {
		return Descriptor{}, false
	}
	target, ok := r.index[id]
	if !ok {
		target, ok = r.index[strings.ReplaceAll(id, "-", "")]
	}
	if !ok {
		return Descriptor{}, false
	}
	d, ok := r.byID[target]
	return d, ok
}

// Link returns the tag page path for a raw tag.
func (r *Registry) Link(tag string) string {
	return Link(r.Root(), tag)
}

// Resolve turns a raw tag into a badge. Unknown tags keep the raw string as
// label with a best-effort link.
func (r *Registry) Resolve(tag string) Badge {
	b := Badge{
		ID:    KebabCase(tag),
		Label: strings.TrimSpace(tag),
		Href:  r.Link(tag),
	}
	if d, ok := r.Lookup(tag); ok {
		b.Known = true
		if d.Name != "" {
			b.Label = d.Name
		}
	}
	return b
}

// Badges resolves every non-empty tag in order.
func (r *Registry) Badges(raw []string) []Badge {
	var out []Badge
	for _, t := range raw {
		if strings.TrimSpace(t) == "" || KebabCase(t) == "" {
			continue
		}
		out = append(out, r.Resolve(t))
	}
	return out
}

// Descriptors returns all registered descriptors sorted by id.
func (r *Registry) Descriptors() []Descriptor {
	if r == nil {
		return nil
	}
	out := make([]Descriptor, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Link builds "/{root}/{kebab(tag)}".
func Link(root, tag string) string {
	return "/" + strings.Trim(root, "/") + "/" + KebabCase(tag)
}

// KebabCase lowercases s and joins its words with hyphens. Words break on any
// non-alphanumeric rune, between letters and digits ("ES6"), on lower-to-upper
// transitions ("ReactHooks") and at the end of an acronym ("XMLHttp").
// Apostrophes are dropped without breaking.
func KebabCase(s string) string {
	runes := []rune(s)
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		if r == '\'' || r == '’' {
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			switch {
			case unicode.IsDigit(r) != unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextLower)):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return strings.Join(words, "-")
}
