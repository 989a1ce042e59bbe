package storyindex

import (
	"strings"
	"unicode/utf8"
)

// Paragraph thresholds applied by IsValidParagraph.
const (
	MinParagraphLength = 20
	MinParagraphWords  = 5
)

// boilerplatePhrases are subscription and call-to-action phrases that mark a
// text span as site furniture. Matching is a case-insensitive substring test;
// entries are lowercase. Append new phrases, never reword existing ones.
var boilerplatePhrases = [...]string{
	"subscribe now",
	"share this post",
	"leave a comment",
	"get 20% off",
	"upgrade to paid",
	"become a subscriber",
	"already a subscriber",
	"sign in",
	"this post is for",
	"give a gift subscription",
}

// BoilerplatePhrases returns a copy of the phrases rejected by IsValidParagraph.
func BoilerplatePhrases() []string {
	return append([]string(nil), boilerplatePhrases[:]...)
}

// IsValidParagraph reports whether text looks like genuine article content.
// It rejects text shorter than MinParagraphLength characters, text containing
// a boilerplate phrase, and text with fewer than MinParagraphWords
// whitespace-delimited tokens.
func IsValidParagraph(text string) bool {
	if utf8.RuneCountInString(text) < MinParagraphLength {
		return false
	}

	lower := strings.ToLower(text)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}

	return len(strings.Fields(text)) >= MinParagraphWords
}
