package storyindex

import (
	"regexp"
	"strings"
)

// DefaultArticleInfix is the path segment that marks an article page.
const DefaultArticleInfix = "/p/"

// CanonicalURL strips the query string and fragment from rawURL.
// The result is the identity key used for deduplication throughout discovery.
func CanonicalURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if idx := strings.IndexAny(rawURL, "?#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}

// IsArticleURL reports whether the canonical form of rawURL contains the
// article path infix. An empty infix falls back to DefaultArticleInfix.
func IsArticleURL(rawURL, infix string) bool {
	if infix == "" {
		infix = DefaultArticleInfix
	}
	return strings.Contains(CanonicalURL(rawURL), infix)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns into a URLFilter.
// Returns nil when both lists are empty.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", pattern, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", pattern, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
