package page

import "github.com/sunwei/pagegen/common/text"

// Slug turns s into a logical path segment, e.g. a post title into the
// path returned from ListPaths.
func Slug(s string) string {
	return text.Slugify(s)
}
