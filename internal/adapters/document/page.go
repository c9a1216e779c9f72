package document

import (
	"context"
	_ "embed"
	"fmt"
	"os"
)

//go:embed page.html
var defaultPage []byte

// DefaultPage returns the built-in host page.
func DefaultPage() []byte {
	out := make([]byte, len(defaultPage))
	copy(out, defaultPage)

	return out
}

// Page is an immutable host page template. Each call to New yields an
// independent document, so one Page can serve concurrent renders.
type Page struct {
	source   []byte
	targetID string
}

// NewPage creates a page from raw HTML.
func NewPage(source []byte, targetID string) *Page {
	owned := make([]byte, len(source))
	copy(owned, source)

	return &Page{source: owned, targetID: targetID}
}

// LoadPage reads the page at path, or returns the built-in page if path is empty.
func LoadPage(path, targetID string) (*Page, error) {
	if path == "" {
		return NewPage(defaultPage, targetID), nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page %q: %w", path, err)
	}

	return NewPage(source, targetID), nil
}

// New parses a fresh document from the page.
func (p *Page) New() (*HTMLDocument, error) {
	return ParseBytes(p.source)
}

// Name implements ports.HealthChecker.
func (p *Page) Name() string {
	return "host-page"
}

// Check implements ports.HealthChecker. The page is healthy when it
// parses and contains the target element.
func (p *Page) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := p.New()
	if err != nil {
		return err
	}

	if !doc.Has(p.targetID) {
		return fmt.Errorf("page has no element with id %q", p.targetID)
	}

	return nil
}
