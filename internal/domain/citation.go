// Package domain contains core business entities and rules.
package domain

import "strings"

// UnknownAuthor is displayed when a citation has no author.
const UnknownAuthor = "?"

// Author is an optional attribution. The zero value means "no author".
type Author struct {
	name  string
	known bool
}

// SomeAuthor returns an Author carrying the given name.
func SomeAuthor(name string) Author {
	return Author{name: name, known: true}
}

// NoAuthor returns an Author with no name.
func NoAuthor() Author {
	return Author{}
}

// Name returns the author's name and whether one was set.
func (a Author) Name() (string, bool) {
	return a.name, a.known
}

// Display returns the name to render, falling back to UnknownAuthor.
func (a Author) Display() string {
	if !a.known {
		return UnknownAuthor
	}

	return a.name
}

// Citation represents one quotation with optional author and source title.
// This is a domain entity - it has no knowledge of external systems.
type Citation struct {
	// Text is the quotation body.
	Text string

	// Author is who said or wrote the quotation, if known.
	Author Author

	// Title names the source. Empty means no source title.
	Title string
}

// CitationOption configures optional citation fields.
type CitationOption func(*Citation)

// WithAuthor sets the citation author.
func WithAuthor(name string) CitationOption {
	return func(c *Citation) {
		c.Author = SomeAuthor(name)
	}
}

// WithTitle sets the citation source title.
func WithTitle(title string) CitationOption {
	return func(c *Citation) {
		c.Title = title
	}
}

// NewCitation creates a citation with the given text and options.
func NewCitation(text string, opts ...CitationOption) Citation {
	c := Citation{Text: text}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// Validate reports an error if the citation has no text.
func (c Citation) Validate() error {
	if c.Text == "" {
		return NewValidationError("text", "citation text is required")
	}

	return nil
}

// Format returns the citation as a markup fragment:
//
//	“<text>” - <span title="<title>"><i><author></i></span>
//
// The title attribute is omitted when Title is empty. Fields are written
// verbatim without escaping.
func (c Citation) Format() string {
	var b strings.Builder

	b.WriteString("“")
	b.WriteString(c.Text)
	b.WriteString("” - ")

	if c.Title != "" {
		b.WriteString(`<span title="`)
		b.WriteString(c.Title)
		b.WriteString(`">`)
	} else {
		b.WriteString("<span>")
	}

	b.WriteString("<i>")
	b.WriteString(c.Author.Display())
	b.WriteString("</i></span>")

	return b.String()
}
