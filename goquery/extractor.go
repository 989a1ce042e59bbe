// Package goquery implements article extraction and listing-page link
// discovery using CSS selectors.
package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storyindex"
)

// Ensure Extractor implements storyindex.Extractor at compile time.
var _ storyindex.Extractor = (*Extractor)(nil)

// Field rules, most specific first. A rule that matches a page built from
// the expected template yields cleaner data than the general fallbacks
// after it, so the order must be preserved when adding rules.
var (
	titleRules = []textRule{
		text("h1.post-title"),
		text(`h1[class*="post-title"]`),
		text("h1.headline"),
		text("article h1"),
		text(`h1[class*="title"]`),
		attr(`meta[property="og:title"]`, "content"),
	}

	subtitleRules = []textRule{
		text("h3.subtitle"),
		text("h2.subtitle"),
		text(".subtitle"),
		text(`[class*="subtitle"]`),
		attr(`meta[name="description"]`, "content"),
	}

	authorRules = []listRule{
		texts(".author-name, .pencraft-author-name"),
		texts(`[class*="author"]`),
		attrs(`meta[name="author"]`, "content"),
	}

	dateRules = []textRule{
		attr("time[datetime]", "datetime"),
		attr(`meta[property="article:published_time"]`, "content"),
	}

	tagRules = []listRule{
		texts(".post-tag"),
		texts(`[class*="tag"]`),
	}

	containerRules = []containerRule{
		first("article"),
		first("div.body"),
		first("div.post-content"),
		classMatching("div", regexp.MustCompile(`(?i)content|body|post`)),
	}
)

// dateLength is the length of a YYYY-MM-DD prefix.
const dateLength = 10

// Extractor extracts article fields from server-rendered blog pages.
type Extractor struct {
	policy storyindex.ExtractPolicy
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPolicy sets the author and tag thresholds.
// Defaults to storyindex.DefaultExtractPolicy() if not specified.
func WithPolicy(p storyindex.ExtractPolicy) Option {
	return func(e *Extractor) {
		e.policy = p
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		policy: storyindex.DefaultExtractPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses raw HTML and returns the article fields it can find.
// Missing fields are left empty; the author defaults to
// storyindex.DefaultAuthor.
func (e *Extractor) Extract(rawHTML string) (*storyindex.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, storyindex.Errorf(storyindex.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, storyindex.Errorf(storyindex.EINVALID, "failed to parse HTML: %v", err)
	}

	return &storyindex.Article{
		Title:    firstText(doc, titleRules),
		Subtitle: firstText(doc, subtitleRules),
		Author:   e.extractAuthor(doc),
		Date:     extractDate(doc),
		Tags:     e.extractTags(doc),
		Content:  extractContent(doc),
	}, nil
}

func (e *Extractor) extractAuthor(doc *goquery.Document) string {
	for _, rule := range authorRules {
		names := collect(rule(doc), e.policy.MaxAuthors, func(name string) bool {
			return utf8.RuneCountInString(name) < e.policy.MaxAuthorLength
		})
		if len(names) > 0 {
			return strings.Join(names, ", ")
		}
	}
	return storyindex.DefaultAuthor
}

func (e *Extractor) extractTags(doc *goquery.Document) []string {
	for _, rule := range tagRules {
		tags := collect(rule(doc), e.policy.MaxTags, func(tag string) bool {
			return utf8.RuneCountInString(tag) < e.policy.MaxTagLength
		})
		if len(tags) > 0 {
			return tags
		}
	}
	return []string{}
}

func extractDate(doc *goquery.Document) string {
	date := firstText(doc, dateRules)
	if utf8.RuneCountInString(date) > dateLength {
		return string([]rune(date)[:dateLength])
	}
	return date
}

func extractContent(doc *goquery.Document) []string {
	container := firstContainer(doc, containerRules)
	if container == nil {
		return []string{}
	}

	content := []string{}
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := nodeText(p); storyindex.IsValidParagraph(text) {
			content = append(content, text)
		}
	})
	return content
}

// collect returns the accepted, deduplicated candidates in order, keeping at
// most limit values. A non-positive limit keeps all values.
func collect(candidates []string, limit int, accept func(string) bool) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		if limit > 0 && len(out) >= limit {
			break
		}
		if seen[c] || !accept(c) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
