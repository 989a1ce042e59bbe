package storyindex

import "context"

// Fetcher retrieves server-rendered HTML (or any text body) from URLs.
type Fetcher interface {
	// Fetch issues a single request and returns the response body.
	// Transport errors, timeouts and non-success statuses are errors.
	// The context controls cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)
}

// DomainLimiter provides per-domain request pacing.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error

	// Done marks the end of a request to the domain, including its retries.
	// The next Wait for the domain blocks for a full interval from now.
	Done(domain string)
}
