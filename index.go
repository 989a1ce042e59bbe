package storyindex

import "strings"

// BuildIndex projects articles into search and metadata records.
// IDs are assigned by position in the input, so search[i].ID and
// metadata[i].ID both equal i. IDs are only stable within one build.
func BuildIndex(articles []*Article) ([]SearchRecord, []MetadataRecord) {
	search := make([]SearchRecord, 0, len(articles))
	metadata := make([]MetadataRecord, 0, len(articles))

	for i, a := range articles {
		content := nonNil(a.Content)
		tags := nonNil(a.Tags)

		search = append(search, SearchRecord{
			ID:       i,
			Title:    a.Title,
			Subtitle: a.Subtitle,
			Author:   a.Author,
			Content:  content,
			Tags:     tags,
		})

		metadata = append(metadata, MetadataRecord{
			ID:        i,
			Title:     a.Title,
			Subtitle:  a.Subtitle,
			URL:       a.URL,
			Author:    a.Author,
			Date:      a.Date,
			WordCount: WordCount(content),
			Tags:      tags,
		})
	}

	return search, metadata
}

// WordCount returns the number of whitespace-delimited tokens across all
// paragraphs.
func WordCount(paragraphs []string) int {
	n := 0
	for _, p := range paragraphs {
		n += len(strings.Fields(p))
	}
	return n
}

// IndexStats summarizes a built index for reporting.
type IndexStats struct {
	Articles   int
	Words      int
	Paragraphs int
}

// AverageWords returns the integer mean word count per article.
func (s IndexStats) AverageWords() int {
	if s.Articles == 0 {
		return 0
	}
	return s.Words / s.Articles
}

// ComputeIndexStats totals word and paragraph counts over an index.
func ComputeIndexStats(search []SearchRecord, metadata []MetadataRecord) IndexStats {
	stats := IndexStats{Articles: len(metadata)}
	for _, m := range metadata {
		stats.Words += m.WordCount
	}
	for _, s := range search {
		stats.Paragraphs += len(s.Content)
	}
	return stats
}

// nonNil returns s, or an empty slice when s is nil, so that JSON output
// always contains an array.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
