package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/footer-citations/internal/adapters/document"
	"github.com/jsamuelsen/footer-citations/internal/adapters/http/dto"
	"github.com/jsamuelsen/footer-citations/internal/app"
	"github.com/jsamuelsen/footer-citations/internal/domain"
)

const htmlContentType = "text/html; charset=utf-8"

// FooterHandler serves the host page and the citation API.
type FooterHandler struct {
	selector *app.FooterSelector
	page     *document.Page
}

// NewFooterHandler creates a new footer handler.
func NewFooterHandler(selector *app.FooterSelector, page *document.Page) *FooterHandler {
	return &FooterHandler{
		selector: selector,
		page:     page,
	}
}

// Page handles GET /
// Parses a fresh copy of the host page, writes one random citation into
// the footer target and returns the whole page.
func (h *FooterHandler) Page(c *gin.Context) {
	doc, err := h.page.New()
	if err != nil {
		dto.HandleError(c, domain.NewUnavailableError("host-page", err.Error()))
		return
	}

	if _, err := h.selector.Render(c.Request.Context(), doc); err != nil {
		dto.HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// ListCitations handles GET /api/v1/citations
func (h *FooterHandler) ListCitations(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewCitationListResponse(h.selector.Registry()))
}

// RandomCitation handles GET /api/v1/citations/random
// Selects a citation the same way the page does, without writing it
// into a document.
func (h *FooterHandler) RandomCitation(c *gin.Context) {
	sel, err := h.selector.Select()
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCitationResponse(sel.Index, sel.Citation))
}

// GetCitation handles GET /api/v1/citations/:index
func (h *FooterHandler) GetCitation(c *gin.Context) {
	var uri dto.CitationURI
	if err := dto.BindURIAndValidate(c, &uri); err != nil {
		details := dto.ValidationErrors(err)
		if errors.Is(err, dto.ErrBinding) {
			details = map[string]string{"index": "must be an integer"}
		}

		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrorCodeValidation,
			"invalid citation index",
			details,
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	citation, err := h.selector.Registry().At(uri.Index)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCitationResponse(uri.Index, citation))
}

// RegisterPageRoutes registers the host page at the root of rg.
func (h *FooterHandler) RegisterPageRoutes(rg gin.IRoutes) {
	rg.GET("/", h.Page)
}

// RegisterCitationRoutes registers citation routes on the given router group.
func (h *FooterHandler) RegisterCitationRoutes(rg *gin.RouterGroup) {
	citations := rg.Group("/citations")
	citations.GET("", h.ListCitations)
	citations.GET("/random", h.RandomCitation)
	citations.GET("/:index", h.GetCitation)
}
