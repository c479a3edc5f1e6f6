// Package sanitize cleans raw article markup before fingerprinting and
// rendering: navigation and ad elements are dropped, and internal anchor
// links are rewritten to stable slugified heading ids.
package sanitize

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/gosimple/slug"
	"golang.org/x/net/html"
)

// DefaultKeywords are matched against tag names (exact) and class names
// (substring) to decide which elements to strip.
var DefaultKeywords = []string{"nav", "ads"}

type Cleaner struct {
	Keywords []string
}

func NewCleaner() *Cleaner {
	return &Cleaner{Keywords: DefaultKeywords}
}

// Clean parses the markup, removes matching elements, rewrites internal
// anchors, and serializes the result. The output is canonical: the same
// input always produces the same bytes, which is what makes it safe to
// fingerprint.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	c.removeElements(doc)
	fixInternalLinks(doc)

	cleaned, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize HTML: %w", err)
	}
	return cleaned, nil
}

// removeElements drops every element whose tag name equals a keyword or
// whose class attribute contains one.
func (c *Cleaner) removeElements(doc *goquery.Document) {
	doc.Find("body *").Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		class := s.AttrOr("class", "")

		for _, kw := range c.Keywords {
			if tag == kw {
				s.Remove()
				return
			}
			for _, cls := range strings.Fields(class) {
				if strings.Contains(cls, kw) {
					s.Remove()
					return
				}
			}
		}
	})
}

// fixInternalLinks rewrites <a href="#ref"> fragments. The named anchor
// <a name="ref"> is located, the nearest following heading gets an id
// slugified from its text, and the link is pointed at that id.
func fixInternalLinks(doc *goquery.Document) {
	doc.Find(`a[href^="#"]`).Each(func(i int, link *goquery.Selection) {
		ref := strings.TrimPrefix(link.AttrOr("href", ""), "#")
		if ref == "" {
			return
		}

		anchor := findNamedAnchor(doc, ref)
		if anchor == nil {
			return
		}

		heading := followingHeading(anchor)
		if heading == nil {
			return
		}

		headingSel := doc.FindNodes(heading)
		id := slug.Make(strings.TrimSpace(headingSel.Text()))
		if id == "" {
			return
		}
		headingSel.SetAttr("id", id)
		link.SetAttr("href", "#"+id)
	})
}

func findNamedAnchor(doc *goquery.Document, name string) *html.Node {
	var found *html.Node
	doc.Find("a[name]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.AttrOr("name", "") == name {
			found = s.Get(0)
			return false
		}
		return true
	})
	return found
}

// followingHeading walks the tree in document order from n and returns the
// first heading element after it.
func followingHeading(n *html.Node) *html.Node {
	for n = nextNode(n); n != nil; n = nextNode(n) {
		if n.Type != html.ElementNode {
			continue
		}
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			return n
		}
	}
	return nil
}

// nextNode advances one step in document order (depth-first).
func nextNode(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// Distill runs a readability pass over the markup and returns the main
// article content. Used for feeds whose bodies carry page chrome beyond
// what keyword stripping catches.
func Distill(rawHTML, pageURL string) (string, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse article URL: %w", err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}
	return article.Content, nil
}
