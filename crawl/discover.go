package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/fwojciec/storyindex"
)

var _ storyindex.URLSource = (*Discoverer)(nil)

// Discoverer merges the candidate URLs of several listing sources into the
// set of article URLs of a site.
type Discoverer struct {
	Sources []storyindex.ListingSource

	// Infix marks article paths. Defaults to storyindex.DefaultArticleInfix.
	Infix string

	// Filter optionally narrows the discovered URLs. Nil keeps all.
	Filter *storyindex.URLFilter
}

// Discover queries every source once, in order, and returns the sorted,
// deduplicated canonical URLs on baseURL's host whose path contains the
// article infix. A failing source contributes nothing. When no URL is found
// the error has code ENOTFOUND and wraps the source errors.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, storyindex.Errorf(storyindex.EINVALID, "invalid base URL %q", baseURL)
	}

	seen := make(map[string]bool)
	var sourceErrs []error
	for _, src := range d.Sources {
		candidates, err := src.ListURLs(ctx, baseURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			sourceErrs = append(sourceErrs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		for _, c := range candidates {
			if u, ok := d.accept(base, c); ok {
				seen[u] = true
			}
		}
	}

	if len(seen) == 0 {
		notFound := storyindex.Errorf(storyindex.ENOTFOUND, "no article URLs discovered at %s", baseURL)
		return nil, errors.Join(append([]error{notFound}, sourceErrs...)...)
	}

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	slices.Sort(urls)
	return urls, nil
}

// accept resolves candidate against base and returns its canonical form if
// it is an article URL on the same host that passes the filter.
func (d *Discoverer) accept(base *url.URL, candidate string) (string, bool) {
	ref, err := url.Parse(storyindex.CanonicalURL(candidate))
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Host != base.Host {
		return "", false
	}
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}

	canonical := storyindex.CanonicalURL(resolved.String())
	if !storyindex.IsArticleURL(canonical, d.Infix) {
		return "", false
	}
	if !d.Filter.Match(canonical) {
		return "", false
	}
	return canonical, true
}
