package goquery

import (
	"context"
	"net/url"

	"github.com/fwojciec/storyindex"
)

// Ensure PageSource implements storyindex.ListingSource at compile time.
var _ storyindex.ListingSource = (*PageSource)(nil)

// PageSource lists article links found on an HTML listing page, such as a
// tag page or the archive, optionally following rel="next" pagination.
type PageSource struct {
	fetcher      storyindex.Fetcher
	name         string
	path         string
	selectors    []string
	nextSelector string
	maxPages     int
}

// PageOption configures a PageSource.
type PageOption func(*PageSource)

// WithSelectors sets the CSS selectors matching article anchors.
// Defaults to DefaultListingSelectors if not specified.
func WithSelectors(selectors ...string) PageOption {
	return func(s *PageSource) {
		s.selectors = selectors
	}
}

// WithMaxPages sets how many pages are visited by following next links.
// Defaults to 1, which disables pagination.
func WithMaxPages(n int) PageOption {
	return func(s *PageSource) {
		s.maxPages = n
	}
}

// WithNextSelector sets the selector of the pagination link.
// Defaults to DefaultNextSelector if not specified.
func WithNextSelector(selector string) PageOption {
	return func(s *PageSource) {
		s.nextSelector = selector
	}
}

// NewPageSource creates a PageSource named name that reads the listing page
// at path, relative to the base URL, through fetcher.
func NewPageSource(fetcher storyindex.Fetcher, name, path string, opts ...PageOption) *PageSource {
	s := &PageSource{
		fetcher:      fetcher,
		name:         name,
		path:         path,
		selectors:    DefaultListingSelectors,
		nextSelector: DefaultNextSelector,
		maxPages:     1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxPages < 1 {
		s.maxPages = 1
	}
	return s
}

// Name returns the name the source was created with.
func (s *PageSource) Name() string {
	return s.name
}

// ListURLs fetches the listing page and returns the links matched by the
// source's selectors in page order. When pagination is enabled, a failure
// on a page after the first ends pagination and the links collected so far
// are returned.
func (s *PageSource) ListURLs(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, storyindex.Errorf(storyindex.EINVALID, "invalid base URL: %v", err)
	}
	pageURL := base.ResolveReference(&url.URL{Path: s.path}).String()

	urls := []string{}
	seenPages := make(map[string]bool)
	for page := 1; page <= s.maxPages && pageURL != "" && !seenPages[pageURL]; page++ {
		seenPages[pageURL] = true

		body, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if page == 1 || ctx.Err() != nil {
				return nil, err
			}
			break
		}

		links, err := ExtractLinks(body, pageURL, s.selectors)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			break
		}
		urls = append(urls, links...)

		if page < s.maxPages {
			if pageURL, err = NextPageURL(body, pageURL, s.nextSelector); err != nil {
				break
			}
		}
	}
	return urls, nil
}
