// Package gofeed implements a storyindex.ListingSource backed by the site's
// RSS or Atom feed.
package gofeed

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/storyindex"
	"github.com/mmcdole/gofeed"
)

// DefaultFeedPath is the feed location of Substack-style blogs.
const DefaultFeedPath = "/feed"

// Ensure FeedSource implements storyindex.ListingSource at compile time.
var _ storyindex.ListingSource = (*FeedSource)(nil)

// FeedSource lists the item links of a feed.
type FeedSource struct {
	fetcher storyindex.Fetcher
	path    string
}

// NewFeedSource creates a FeedSource that fetches the feed at path, relative
// to the base URL, through fetcher.
func NewFeedSource(fetcher storyindex.Fetcher, path string) *FeedSource {
	if path == "" {
		path = DefaultFeedPath
	}
	return &FeedSource{fetcher: fetcher, path: path}
}

// Name returns "feed".
func (s *FeedSource) Name() string {
	return "feed"
}

// ListURLs fetches and parses the feed and returns each item's links in
// feed order. RSS and Atom are both accepted.
func (s *FeedSource) ListURLs(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, storyindex.Errorf(storyindex.EINVALID, "invalid base URL: %v", err)
	}
	feedURL := base.ResolveReference(&url.URL{Path: s.path}).String()

	body, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, storyindex.Errorf(storyindex.EINVALID, "failed to parse feed %s: %v", feedURL, err)
	}

	urls := []string{}
	seen := make(map[string]bool)
	for _, item := range feed.Items {
		links := append([]string{item.Link}, item.Links...)
		for _, link := range links {
			link = strings.TrimSpace(link)
			if link == "" || seen[link] {
				continue
			}
			seen[link] = true
			urls = append(urls, link)
		}
	}
	return urls, nil
}
