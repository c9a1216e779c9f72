// Package document provides the host page adapter: an HTML tree whose
// elements can be addressed by id and rewritten in place.
package document

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jsamuelsen/footer-citations/internal/domain"
)

// HTMLDocument is a parsed HTML page. It implements ports.Document.
// A document is not safe for concurrent use; parse one per render.
type HTMLDocument struct {
	doc *goquery.Document
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	return &HTMLDocument{doc: doc}, nil
}

// ParseBytes parses an HTML page held in memory.
func ParseBytes(b []byte) (*HTMLDocument, error) {
	return Parse(bytes.NewReader(b))
}

// find returns the first element with the given id.
func (d *HTMLDocument) find(id string) *goquery.Selection {
	return d.doc.FindMatcher(idMatcher(id)).First()
}

// Has reports whether an element with the given id exists.
func (d *HTMLDocument) Has(id string) bool {
	return d.find(id).Length() > 0
}

// SetInnerHTML replaces the children of the element with the given id
// with the parsed markup.
func (d *HTMLDocument) SetInnerHTML(id, markup string) error {
	sel := d.find(id)
	if sel.Length() == 0 {
		return domain.NewTargetNotFoundError(id)
	}

	sel.SetHtml(markup)

	return nil
}

// InnerHTML returns the rendered children of the element with the given id.
func (d *HTMLDocument) InnerHTML(id string) (string, error) {
	sel := d.find(id)
	if sel.Length() == 0 {
		return "", domain.NewTargetNotFoundError(id)
	}

	out, err := sel.Html()
	if err != nil {
		return "", fmt.Errorf("rendering element %q: %w", id, err)
	}

	return out, nil
}

// Render writes the whole page, doctype included. Text is re-escaped on the
// way out, so an apostrophe inserted by SetInnerHTML is written as &#39;.
// The page reads the same in a browser, but compare parsed text rather
// than raw bytes when checking for a citation.
func (d *HTMLDocument) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("rendering html: %w", err)
		}
	}

	return nil
}

// idMatcher matches element nodes by their id attribute. Ids are matched
// literally so they need no CSS escaping.
type idMatcher string

// Match implements goquery.Matcher.
func (m idMatcher) Match(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}

	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == "id" && attr.Val == string(m) {
			return true
		}
	}

	return false
}

// MatchAll implements goquery.Matcher.
func (m idMatcher) MatchAll(n *html.Node) []*html.Node {
	var out []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if m.Match(node) {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	return out
}

// Filter implements goquery.Matcher.
func (m idMatcher) Filter(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if m.Match(n) {
			out = append(out, n)
		}
	}

	return out
}
