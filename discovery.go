package storyindex

import "context"

// ListingSource enumerates candidate article URLs from one listing endpoint
// of a site, such as a tag page, the archive, the sitemap or the feed.
type ListingSource interface {
	// Name returns the source's identifier (e.g., "archive", "sitemap").
	Name() string

	// ListURLs returns the URLs the source links to. Returned URLs may be
	// relative to baseURL's host, non-canonical or duplicated.
	ListURLs(ctx context.Context, baseURL string) ([]string, error)
}

// URLSource discovers the article URLs of a site.
// Implementations hide how many listing sources are consulted.
type URLSource interface {
	// Discover returns deduplicated canonical article URLs in lexicographic
	// order. Returns ENOTFOUND if no article URL could be discovered.
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
