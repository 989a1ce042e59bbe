package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storyindex"
)

// DefaultListingSelectors match article links on tag and archive pages.
var DefaultListingSelectors = []string{
	`a[href*="/p/"]`,
	".post-preview-title a",
	`h3 a[href*="/p/"]`,
	".archive-item a",
}

// DefaultNextSelector matches the pagination link of a listing page.
const DefaultNextSelector = `a[rel="next"], link[rel="next"]`

// ExtractLinks returns the absolute URLs of anchors matching any of the
// selectors, resolved against baseURL. Links to other hosts and non-HTTP
// links are skipped. Duplicates are removed, keeping document order of the
// first selector that matched them.
func ExtractLinks(html, baseURL string, selectors []string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, storyindex.Errorf(storyindex.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, storyindex.Errorf(storyindex.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			resolved := resolveHref(base, sel.AttrOr("href", ""))
			if resolved == "" || seen[resolved] {
				return
			}
			seen[resolved] = true
			links = append(links, resolved)
		})
	}
	return links, nil
}

// NextPageURL returns the absolute URL of the first element matching
// selector, or "" if the page has no next link on the same host.
func NextPageURL(html, baseURL, selector string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", storyindex.Errorf(storyindex.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", storyindex.Errorf(storyindex.EINVALID, "failed to parse HTML: %v", err)
	}

	var next string
	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		next = resolveHref(base, sel.AttrOr("href", ""))
		return next == ""
	})
	return next, nil
}

// resolveHref resolves href against base. Returns "" for empty, non-HTTP,
// self-referential or external links.
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	resolved := resolveURL(base, href)
	if resolved == "" || !isSameHost(base, resolved) {
		return ""
	}
	return resolved
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential. Fragments are stripped from the resolved URL.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// This uses exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
