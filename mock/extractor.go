package mock

import "github.com/fwojciec/storyindex"

var _ storyindex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of storyindex.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*storyindex.Article, error)
}

func (e *Extractor) Extract(html string) (*storyindex.Article, error) {
	return e.ExtractFn(html)
}
