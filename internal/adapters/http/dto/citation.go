package dto

import "github.com/jsamuelsen/footer-citations/internal/domain"

// CitationResponse is the HTTP representation of a citation.
type CitationResponse struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
	Title  string `json:"title,omitempty"`
	Markup string `json:"markup"`
}

// CitationListResponse lists every citation in registry order.
type CitationListResponse struct {
	Items []CitationResponse `json:"items"`
	Total int                `json:"total"`
}

// CitationURI is bound from /citations/:index.
type CitationURI struct {
	Index int `uri:"index" validate:"gte=0"`
}

// NewCitationResponse converts a domain citation to its response form.
// Author is omitted when unknown; Markup still shows the sentinel.
func NewCitationResponse(index int, c domain.Citation) CitationResponse {
	author, _ := c.Author.Name()

	return CitationResponse{
		Index:  index,
		Text:   c.Text,
		Author: author,
		Title:  c.Title,
		Markup: c.Format(),
	}
}

// NewCitationListResponse converts a registry to a list response.
func NewCitationListResponse(r *domain.Registry) CitationListResponse {
	all := r.All()
	items := make([]CitationResponse, len(all))
	for i, c := range all {
		items[i] = NewCitationResponse(i, c)
	}

	return CitationListResponse{Items: items, Total: len(items)}
}
