package storyindex

import (
	"math"
	"regexp"
	"slices"
	"strings"
)

// DefaultWordCloudSize is the number of terms kept in the word cloud.
const DefaultWordCloudSize = 50

// Word cloud size scale.
const (
	MinWordSize     = 1.0
	MaxWordSize     = 5.0
	uniformWordSize = 3.0
)

var wordRe = regexp.MustCompile(`\b[a-z]{3,}\b`)

var stopWords = func() map[string]struct{} {
	words := []string{
		"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
		"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
		"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
		"or", "an", "will", "my", "one", "all", "would", "there", "their",
		"what", "so", "up", "out", "if", "about", "who", "get", "which", "go",
		"me", "when", "make", "can", "like", "time", "no", "just", "him", "know",
		"take", "people", "into", "year", "your", "good", "some", "could", "them",
		"see", "other", "than", "then", "now", "look", "only", "come", "its", "over",
		"think", "also", "back", "after", "use", "two", "how", "our", "work", "first",
		"well", "way", "even", "new", "want", "because", "any", "these", "give", "day",
		"most", "us", "is", "was", "are", "been", "has", "had", "were", "said", "did",
		"having", "may", "should", "am", "being", "does", "done",
		"more", "very", "much", "such", "too", "own", "same", "here", "where", "why",
		"each", "every", "both", "few", "many", "through", "during", "before",
		"above", "between", "under", "again", "further", "once",
		"while", "those", "ever", "never", "always", "often", "sometimes", "still",
		"yet", "already", "since", "until", "however", "although", "though", "unless",
		"whether", "upon", "might", "must", "shall", "ought", "used", "made",
		"quite", "rather", "really", "actually", "perhaps", "maybe", "probably",
		"going", "got", "getting", "goes", "went", "gone", "let", "thing", "things",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// IsStopWord reports whether word is excluded from the word cloud.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// Tokenize lowercases text and returns its alphabetic runs of three or more
// letters, excluding stop words.
func Tokenize(text string) []string {
	var tokens []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if !IsStopWord(w) {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// AnalyzeWordFrequency counts terms across the search records and returns the
// top n by descending count. Each record contributes its title twice plus its
// content. Equal counts keep first-seen order.
func AnalyzeWordFrequency(records []SearchRecord, n int) []WordCloudEntry {
	if n <= 0 {
		n = DefaultWordCloudSize
	}

	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		text := r.Title + " " + r.Title + " " + strings.Join(r.Content, " ")
		for _, w := range Tokenize(text) {
			if _, ok := counts[w]; !ok {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})
	if len(order) > n {
		order = order[:n]
	}

	entries := make([]WordCloudEntry, 0, len(order))
	for _, w := range order {
		entries = append(entries, WordCloudEntry{Word: w, Count: counts[w]})
	}
	ScaleWordSizes(entries)
	return entries
}

// ScaleWordSizes assigns each entry a size in [MinWordSize, MaxWordSize],
// linear in its count between the minimum and maximum counts of entries and
// rounded to one decimal. When all counts are equal every size is 3.
func ScaleWordSizes(entries []WordCloudEntry) {
	if len(entries) == 0 {
		return
	}

	lo, hi := entries[0].Count, entries[0].Count
	for _, e := range entries[1:] {
		lo = min(lo, e.Count)
		hi = max(hi, e.Count)
	}

	for i := range entries {
		if hi == lo {
			entries[i].Size = uniformWordSize
			continue
		}
		size := MinWordSize + (MaxWordSize-MinWordSize)*float64(entries[i].Count-lo)/float64(hi-lo)
		entries[i].Size = math.Round(size*10) / 10
	}
}
