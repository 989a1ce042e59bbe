package storyindex

// ExtractPolicy holds the heuristic thresholds applied during extraction.
// The defaults are tuned against one site template.
type ExtractPolicy struct {
	// MaxAuthors caps the number of author names kept.
	MaxAuthors int `yaml:"max_authors"`

	// MaxAuthorLength rejects author candidates with this many characters or more.
	MaxAuthorLength int `yaml:"max_author_length"`

	// MaxTags caps the number of tags kept.
	MaxTags int `yaml:"max_tags"`

	// MaxTagLength rejects tag candidates with this many characters or more.
	MaxTagLength int `yaml:"max_tag_length"`
}

// DefaultExtractPolicy returns the default extraction thresholds.
func DefaultExtractPolicy() ExtractPolicy {
	return ExtractPolicy{
		MaxAuthors:      3,
		MaxAuthorLength: 100,
		MaxTags:         5,
		MaxTagLength:    50,
	}
}

// Extractor extracts article fields from a fetched page.
type Extractor interface {
	// Extract parses raw HTML and returns an article with possibly-empty
	// fields. The URL field is left for the caller to set. Callers must
	// Validate the result before using it.
	Extract(html string) (*Article, error)
}
