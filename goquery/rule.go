package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// textRule extracts a single candidate value from a document.
// An empty result means the rule did not match.
type textRule func(doc *goquery.Document) string

// listRule extracts candidate values from a document in document order.
type listRule func(doc *goquery.Document) []string

// containerRule locates a content container.
// An empty selection means the rule did not match.
type containerRule func(doc *goquery.Document) *goquery.Selection

// firstText evaluates rules in order and returns the first non-empty result.
func firstText(doc *goquery.Document, rules []textRule) string {
	for _, rule := range rules {
		if v := rule(doc); v != "" {
			return v
		}
	}
	return ""
}

// firstContainer evaluates rules in order and returns the first match.
func firstContainer(doc *goquery.Document, rules []containerRule) *goquery.Selection {
	for _, rule := range rules {
		if sel := rule(doc); sel != nil && sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// text matches the first element for selector with non-empty text.
func text(selector string) textRule {
	return func(doc *goquery.Document) string {
		var v string
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			v = nodeText(sel)
			return v == ""
		})
		return v
	}
}

// attr matches the first element for selector with a non-empty attribute.
func attr(selector, name string) textRule {
	return func(doc *goquery.Document) string {
		var v string
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			v = strings.TrimSpace(sel.AttrOr(name, ""))
			return v == ""
		})
		return v
	}
}

// texts collects the text of every element for selector.
func texts(selector string) listRule {
	return func(doc *goquery.Document) []string {
		var out []string
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if v := nodeText(sel); v != "" {
				out = append(out, v)
			}
		})
		return out
	}
}

// attrs collects a non-empty attribute of every element for selector.
func attrs(selector, name string) listRule {
	return func(doc *goquery.Document) []string {
		var out []string
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if v := strings.TrimSpace(sel.AttrOr(name, "")); v != "" {
				out = append(out, v)
			}
		})
		return out
	}
}

// first selects the first element for selector.
func first(selector string) containerRule {
	return func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(selector).First()
	}
}

// classMatching selects the first element for selector that has a class
// token matching re.
func classMatching(selector string, re *regexp.Regexp) containerRule {
	return func(doc *goquery.Document) *goquery.Selection {
		return doc.Find(selector).FilterFunction(func(_ int, sel *goquery.Selection) bool {
			for _, class := range strings.Fields(sel.AttrOr("class", "")) {
				if re.MatchString(class) {
					return true
				}
			}
			return false
		}).First()
	}
}

// nodeText returns the visible text of a selection with whitespace collapsed.
// Script, style and noscript contents are skipped.
func nodeText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(&b, n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript:
			return
		case atom.Br:
			b.WriteByte(' ')
			return
		}
	}
	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if block {
		b.WriteByte(' ')
	}
}

// blockElements separate their text from neighbouring text.
var blockElements = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.Li:         true,
	atom.Blockquote: true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Td:         true,
	atom.Th:         true,
}
