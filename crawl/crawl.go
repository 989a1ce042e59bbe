// Package crawl orchestrates a scrape run. It coordinates URL discovery,
// paced fetching with retry, extraction and index building.
package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/storyindex"
	"golang.org/x/sync/errgroup"
)

// State is a stage of a pipeline run.
type State int

const (
	StateIdle State = iota
	StateDiscovering
	StateFetching
	StateAggregating
	StateDone
	StateFailed
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDiscovering:
		return "discovering"
	case StateFetching:
		return "fetching"
	case StateAggregating:
		return "aggregating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Pipeline runs discovery, fetching, extraction and index building for one
// site.
type Pipeline struct {
	URLs        storyindex.URLSource
	Fetcher     storyindex.Fetcher
	Extractor   storyindex.Extractor
	RateLimiter storyindex.DomainLimiter

	// RetryDelays are the waits between fetch attempts of one article.
	// Defaults to DefaultRetryDelays().
	RetryDelays []time.Duration

	// Concurrency bounds in-flight article fetches. Defaults to 1.
	Concurrency int

	// Limit caps the number of articles processed after sorting.
	// Zero means no limit.
	Limit int

	// Logger, if set, receives retry messages.
	Logger LogFunc
}

// Result holds the outcome of a pipeline run.
type Result struct {
	State     State
	Total     int
	Succeeded int
	Failed    int

	Search   []storyindex.SearchRecord
	Metadata []storyindex.MetadataRecord

	// Fingerprint is the hash of the compact search artifact.
	Fingerprint string
}

// ProgressEvent reports progress during a pipeline run.
type ProgressEvent struct {
	Type      ProgressType
	State     State
	Completed int
	Total     int
	URL       string
	Title     string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStateChanged ProgressType = iota
	ProgressStarted
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting pipeline progress.
type ProgressFunc func(event ProgressEvent)

// articleResult holds the outcome of processing a single URL.
type articleResult struct {
	position int
	url      string
	article  *storyindex.Article
	err      error
}

// Run executes the pipeline against baseURL. The returned Result is never
// nil, so callers can always report counts. The error is non-nil when the
// run ends in StateFailed: discovery found nothing, the context was
// canceled, or no article was extracted (ENOTFOUND).
func (p *Pipeline) Run(ctx context.Context, baseURL string, progress ProgressFunc) (*Result, error) {
	result := &Result{State: StateIdle}
	setState := func(s State) {
		result.State = s
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressStateChanged,
				State:     s,
				Completed: result.Succeeded + result.Failed,
				Total:     result.Total,
			})
		}
	}

	setState(StateDiscovering)
	urls, err := p.URLs.Discover(ctx, baseURL)
	if err != nil {
		setState(StateFailed)
		return result, err
	}
	if p.Limit > 0 && len(urls) > p.Limit {
		urls = urls[:p.Limit]
	}
	result.Total = len(urls)

	setState(StateFetching)
	articles, err := p.fetchAll(ctx, urls, result, progress)
	if err != nil {
		setState(StateFailed)
		return result, err
	}

	setState(StateAggregating)
	if len(articles) == 0 {
		setState(StateFailed)
		return result, storyindex.Errorf(storyindex.ENOTFOUND, "no articles extracted from %d URLs", result.Total)
	}

	result.Search, result.Metadata = storyindex.BuildIndex(articles)
	data, err := storyindex.MarshalArtifact(result.Search, false)
	if err != nil {
		setState(StateFailed)
		return result, err
	}
	result.Fingerprint = ComputeHash(string(data))

	setState(StateDone)
	return result, nil
}

// fetchAll processes urls on a bounded worker pool and returns the valid
// articles in the order of urls. Per-URL failures are counted in result
// and reported through progress; only cancellation is returned.
func (p *Pipeline) fetchAll(ctx context.Context, urls []string, result *Result, progress ProgressFunc) ([]*storyindex.Article, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			State: StateFetching,
			Total: total,
		})
	}

	resultCh := make(chan articleResult, concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- p.processURL(gctx, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]articleResult, total)
	for r := range resultCh {
		results[r.position] = r

		if r.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					State:     StateFetching,
					Completed: result.Succeeded + result.Failed,
					Total:     total,
					URL:       r.url,
					Error:     r.err,
				})
			}
			continue
		}

		result.Succeeded++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				State:     StateFetching,
				Completed: result.Succeeded + result.Failed,
				Total:     total,
				URL:       r.url,
				Title:     r.article.Title,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	articles := make([]*storyindex.Article, 0, result.Succeeded)
	for _, r := range results {
		if r.article != nil {
			articles = append(articles, r.article)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			State:     StateFetching,
			Completed: total,
			Total:     total,
		})
	}

	return articles, nil
}

// processURL paces, fetches, extracts and validates a single URL.
func (p *Pipeline) processURL(ctx context.Context, position int, url string) articleResult {
	result := articleResult{
		position: position,
		url:      url,
	}

	host := hostOf(url)
	if p.RateLimiter != nil {
		if err := p.RateLimiter.Wait(ctx, host); err != nil {
			result.err = err
			return result
		}
	}

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	body, err := FetchWithRetryDelays(ctx, url, p.Fetcher.Fetch, p.Logger, delays)
	if p.RateLimiter != nil {
		p.RateLimiter.Done(host)
	}
	if err != nil {
		result.err = err
		return result
	}

	article, err := p.Extractor.Extract(body)
	if err != nil {
		result.err = err
		return result
	}
	article.URL = url
	if err := article.Validate(); err != nil {
		result.err = err
		return result
	}

	result.article = article
	return result
}
