package crawl

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/storyindex"
	"golang.org/x/time/rate"
)

var _ storyindex.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per host using token buckets.
// Each host gets its own limiter with a burst of 1, so consecutive requests
// to one host are spaced by at least 1/rps even across concurrent workers.
// Done restarts a host's interval, so a slow or retried request is still
// followed by a full pause.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter allowing rps requests per
// second per host. A non-positive rps uses storyindex.DefaultRequestsPerSecond.
func NewDomainLimiter(rps float64) *DomainLimiter {
	if rps <= 0 {
		rps = storyindex.DefaultRequestsPerSecond
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Done empties the host's bucket as of now, so the next token for the
// domain becomes available 1/rps after the request finished.
func (d *DomainLimiter) Done(domain string) {
	now := time.Now()
	limiter := rate.NewLimiter(rate.Limit(d.rps), 1)
	limiter.AllowN(now, 1)

	d.mu.Lock()
	d.limiters[domain] = limiter
	d.mu.Unlock()
}

// hostOf returns the host of rawURL, or rawURL itself when it has none.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
