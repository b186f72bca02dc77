// Package content turns Markdown source files into normalized post records.
package content

import (
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the storage format of Post.Date; it sorts lexically.
const DateLayout = "2006-01-02"

// DefaultDisplayLayout matches "MMMM DD, YYYY".
const DefaultDisplayLayout = "January 02, 2006"

var (
	// ErrInvalidPost is returned when a source file does not produce a valid record.
	ErrInvalidPost = errors.New("content: invalid post")
	// ErrDuplicateSlug is returned when two source files claim the same slug.
	ErrDuplicateSlug = errors.New("content: duplicate slug")
)

// Post is one published (or draft) article. Records are immutable once loaded.
type Post struct {
	Slug        string `validate:"required,slug"`
	Title       string `validate:"required"`
	Date        string `validate:"required,datetime=2006-01-02"`
	Tags        []string
	Excerpt     string
	ReadingTime int `validate:"gte=0"`
	Cover       string
	Content     string
	Link        string
	Published   bool
}

// PostPath returns the site path of a post page.
func PostPath(slug string) string {
	return "/blog/" + slug
}

// FormattedDate renders Date with layout, falling back to the raw value when
// Date does not parse.
func (p Post) FormattedDate(layout string) string {
	if layout == "" {
		layout = DefaultDisplayLayout
	}
	t, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return p.Date
	}
	return t.Format(layout)
}

var reSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return reSlug.MatchString(fl.Field().String())
	})
	return v
}

var validate = newValidator()

// Validate checks that slug and title are present, the slug is
// URL-safe and the date is in DateLayout.
func (p Post) Validate() error {
	return validate.Struct(p)
}
