// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter where an operation may block or be traced
//   - Return domain types, never infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrValidation, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"
)

// RandomSource draws pseudo-random indices.
// *math/rand/v2.Rand satisfies this interface.
type RandomSource interface {
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// Document is a host page holding addressable elements.
//
// Example implementation backed by an HTML tree:
//
//	func (d *HTMLDocument) SetInnerHTML(id, markup string) error {
//	    sel := d.doc.Find("#" + id)
//	    if sel.Length() == 0 {
//	        return domain.NewTargetNotFoundError(id)
//	    }
//	    sel.SetHtml(markup)
//	    return nil
//	}
type Document interface {
	// SetInnerHTML replaces the content of the element with the given id.
	// Returns a domain.TargetNotFoundError if no such element exists.
	SetInnerHTML(id, markup string) error
}

// SelectionRecorder observes rendered citations, typically for metrics.
type SelectionRecorder interface {
	// RecordSelection is called once per successful render.
	RecordSelection(ctx context.Context, index int, author string)
}

// NopRecorder is a SelectionRecorder that does nothing.
type NopRecorder struct{}

// RecordSelection implements SelectionRecorder.
func (NopRecorder) RecordSelection(context.Context, int, string) {}
