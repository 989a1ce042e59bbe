package mock

import (
	"context"

	"github.com/fwojciec/storyindex"
)

var _ storyindex.ListingSource = (*ListingSource)(nil)

// ListingSource is a mock implementation of storyindex.ListingSource.
type ListingSource struct {
	NameFn     func() string
	ListURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *ListingSource) Name() string {
	return s.NameFn()
}

func (s *ListingSource) ListURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.ListURLsFn(ctx, baseURL)
}

var _ storyindex.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of storyindex.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverFn(ctx, baseURL)
}
