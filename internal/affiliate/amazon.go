// Package affiliate builds templated shopping links for ingredient names.
package affiliate

import (
	"net/url"
	"strings"
)

// DefaultTag is the placeholder Amazon Associates tag used when none is
// configured.
const DefaultTag = "YOURTAG-20"

const searchBase = "https://www.amazon.com/s"

// Builder generates Amazon search URLs carrying an affiliate tag.
type Builder struct {
	tag string
}

// NewBuilder creates a link builder for the given Associates tag.
// An empty tag falls back to DefaultTag.
func NewBuilder(tag string) *Builder {
	if strings.TrimSpace(tag) == "" {
		tag = DefaultTag
	}
	return &Builder{tag: tag}
}

// Tag returns the configured Associates tag.
func (b *Builder) Tag() string {
	return b.tag
}

// SearchURL returns a grocery-scoped Amazon search link for the query.
func (b *Builder) SearchURL(query string) string {
	v := url.Values{}
	v.Set("k", query)
	v.Set("i", "grocery")
	v.Set("tag", b.tag)
	return searchBase + "?" + v.Encode()
}
