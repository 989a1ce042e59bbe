// Package fs persists index artifacts as JSON files.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/storyindex"
)

// Ensure ArtifactStore implements storyindex.ArtifactStore at compile time.
var _ storyindex.ArtifactStore = (*ArtifactStore)(nil)

// stagingDirName is the directory inside the output directory that holds
// artifacts until Commit.
const stagingDirName = ".storyindex.tmp"

// ArtifactStore writes artifacts into an output directory with
// all-or-nothing semantics. Artifacts are staged in a temporary directory
// inside the output directory, then renamed into place on Commit. The output
// directory may hold other files; only the named artifacts are replaced.
type ArtifactStore struct {
	dir    string
	staged map[string]int
}

// NewArtifactStore creates a new ArtifactStore writing to dir.
func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{
		dir:    dir,
		staged: make(map[string]int),
	}
}

func (s *ArtifactStore) tempDir() string {
	return filepath.Join(s.dir, stagingDirName)
}

// backupDir holds replaced artifacts during Commit. Artifact names cannot
// start with a dot, so it never collides with a staged file.
func (s *ArtifactStore) backupDir() string {
	return filepath.Join(s.tempDir(), ".replaced")
}

// Save encodes value as JSON and stages it under name.
// Saving the same name twice replaces the staged artifact.
func (s *ArtifactStore) Save(ctx context.Context, name string, value any, pretty bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return storyindex.Errorf(storyindex.EINVALID, "invalid artifact name %q", name)
	}

	data, err := storyindex.MarshalArtifact(value, pretty)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.tempDir(), name), data, 0644); err != nil {
		return fmt.Errorf("staging %s: %w", name, err)
	}

	s.staged[name] = len(data)
	return nil
}

// Commit moves every staged artifact into the output directory, replacing
// existing files of the same name, and removes the staging directory.
// Replaced files are kept aside until every rename succeeds; on failure the
// output directory is restored to its previous contents.
func (s *ArtifactStore) Commit() error {
	names := s.names()
	for _, name := range names {
		info, err := os.Lstat(filepath.Join(s.dir, name))
		if err == nil && info.IsDir() {
			return storyindex.Errorf(storyindex.EINVALID, "cannot replace directory %s", filepath.Join(s.dir, name))
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", name, err)
		}
	}

	if err := os.MkdirAll(s.backupDir(), 0755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}

	var committed, replaced []string
	for _, name := range names {
		target := filepath.Join(s.dir, name)
		if err := os.Rename(target, filepath.Join(s.backupDir(), name)); err == nil {
			replaced = append(replaced, name)
		} else if !errors.Is(err, os.ErrNotExist) {
			s.rollback(committed, replaced)
			return fmt.Errorf("backing up %s: %w", name, err)
		}
		if err := os.Rename(filepath.Join(s.tempDir(), name), target); err != nil {
			s.rollback(committed, replaced)
			return fmt.Errorf("committing %s: %w", name, err)
		}
		committed = append(committed, name)
	}
	return os.RemoveAll(s.tempDir())
}

// rollback removes committed artifacts and moves replaced files back.
func (s *ArtifactStore) rollback(committed, replaced []string) {
	for _, name := range committed {
		_ = os.Remove(filepath.Join(s.dir, name))
	}
	for _, name := range replaced {
		_ = os.Rename(filepath.Join(s.backupDir(), name), filepath.Join(s.dir, name))
	}
}

// Abort discards every staged artifact.
func (s *ArtifactStore) Abort() error {
	clear(s.staged)
	return os.RemoveAll(s.tempDir())
}

// Sizes returns the encoded size in bytes of each staged artifact.
func (s *ArtifactStore) Sizes() map[string]int {
	sizes := make(map[string]int, len(s.staged))
	for name, n := range s.staged {
		sizes[name] = n
	}
	return sizes
}

func (s *ArtifactStore) names() []string {
	names := make([]string, 0, len(s.staged))
	for name := range s.staged {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadSearchRecords reads a search artifact written by a previous run.
// Returns ENOTFOUND if the file does not exist.
func LoadSearchRecords(path string) ([]storyindex.SearchRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, storyindex.Errorf(storyindex.ENOTFOUND, "search index not found at %s", path)
	} else if err != nil {
		return nil, fmt.Errorf("reading search index: %w", err)
	}

	var records []storyindex.SearchRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, storyindex.Errorf(storyindex.EINVALID, "parsing search index %s: %v", path, err)
	}
	return records, nil
}
