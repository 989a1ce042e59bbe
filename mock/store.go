package mock

import (
	"context"

	"github.com/fwojciec/storyindex"
)

var _ storyindex.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of storyindex.ArtifactStore.
type ArtifactStore struct {
	SaveFn   func(ctx context.Context, name string, value any, pretty bool) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ArtifactStore) Save(ctx context.Context, name string, value any, pretty bool) error {
	return s.SaveFn(ctx, name, value, pretty)
}

func (s *ArtifactStore) Commit() error {
	return s.CommitFn()
}

func (s *ArtifactStore) Abort() error {
	return s.AbortFn()
}
