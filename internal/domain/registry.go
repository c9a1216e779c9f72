package domain

import (
	"fmt"
	"strconv"
)

// Registry is a fixed, ordered sequence of citations.
// It is built once and never mutated.
type Registry struct {
	citations []Citation
}

// NewRegistry builds a registry from the given citations.
// Returns ErrEmptyRegistry if no citations are given, or a validation
// error if any citation is invalid.
func NewRegistry(citations ...Citation) (*Registry, error) {
	if len(citations) == 0 {
		return nil, ErrEmptyRegistry
	}

	for i, c := range citations {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("citation %d: %w", i, err)
		}
	}

	owned := make([]Citation, len(citations))
	copy(owned, citations)

	return &Registry{citations: owned}, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
// An empty registry is a programming error.
func MustNewRegistry(citations ...Citation) *Registry {
	r, err := NewRegistry(citations...)
	if err != nil {
		panic(err)
	}

	return r
}

// Len returns the number of citations.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.citations)
}

// At returns the citation at index i.
func (r *Registry) At(i int) (Citation, error) {
	if i < 0 || i >= r.Len() {
		return Citation{}, NewNotFoundError("citation", strconv.Itoa(i))
	}

	return r.citations[i], nil
}

// All returns a copy of the citations in order.
func (r *Registry) All() []Citation {
	out := make([]Citation, r.Len())
	if r != nil {
		copy(out, r.citations)
	}

	return out
}

// DefaultRegistry returns the built-in citation list.
func DefaultRegistry() *Registry {
	return MustNewRegistry(
		NewCitation("Hope for the best, plan for the worst.",
			WithAuthor("Lee Child")),
		NewCitation("You don't have to be great to start, but you have to start to be great.",
			WithAuthor("Zig Ziglar")),
		NewCitation("The best time to plant a tree is twenty five years ago. The second best time is now.",
			WithAuthor("Chinese proverb")),
		NewCitation("Music discovered by accident has the most dopamine.",
			WithAuthor("Paul Oketch"), WithTitle("a truthful commenter on youtube")),
		NewCitation("La moitié d'un ami, c'est la moitié d'un traitre.",
			WithAuthor("Victor Hugo")),
		NewCitation("Ils ne faut pas prendre les gens pour des cons, mais il ne faut pas oublier qu'ils le sont.",
			WithAuthor("Les Inconnus")),
		NewCitation("Never argue with an idiot. They will drag you down to their level and beat you with experience.",
			WithAuthor("Mark Twain")),
		NewCitation("It's hard to win an argument with a smart person, but it's damn near impossible to win an argument with a stupid person.",
			WithAuthor("Bill Murray")),
		NewCitation("Don't think about your errors or your failures, otherwise you will never do a thing.",
			WithAuthor("Bill Murray")),
		NewCitation("Doing anything is better than nothing."),
		NewCitation("A lie told once remains a lie but a lie told a thousand times becomes the truth",
			WithAuthor("Joseph Goebbels")),
	)
}
