package storyindex

import (
	"bytes"
	"context"
	"encoding/json"
)

// Artifact file names written to the output directory.
const (
	SearchIndexFile = "search-index.json"
	MetadataFile    = "stories-metadata.json"
	WordCloudFile   = "wordcloud-data.json"
)

// ArtifactStore persists JSON artifacts with all-or-nothing semantics.
// Save stages an artifact; Commit makes all staged artifacts visible;
// Abort discards them.
type ArtifactStore interface {
	// Save stages value as JSON under name. Pretty selects indented output;
	// otherwise the encoding is compact.
	Save(ctx context.Context, name string, value any, pretty bool) error
	Commit() error
	Abort() error
}

// MarshalArtifact encodes value as UTF-8 JSON without HTML escaping.
// Compact output has no whitespace between tokens and no trailing newline.
// Pretty output is indented by two spaces and ends with a newline.
func MarshalArtifact(value any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(value); err != nil {
		return nil, Errorf(EINVALID, "encoding artifact: %v", err)
	}
	if pretty {
		return buf.Bytes(), nil
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
