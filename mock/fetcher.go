package mock

import (
	"context"

	"github.com/fwojciec/storyindex"
)

var _ storyindex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of storyindex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ storyindex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of storyindex.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
	DoneFn func(domain string)
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

func (l *DomainLimiter) Done(domain string) {
	l.DoneFn(domain)
}
