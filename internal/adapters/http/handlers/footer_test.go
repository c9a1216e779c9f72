package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/footer-citations/internal/adapters/document"
	"github.com/jsamuelsen/footer-citations/internal/adapters/http/dto"
	"github.com/jsamuelsen/footer-citations/internal/app"
	"github.com/jsamuelsen/footer-citations/internal/domain"
)

// fixedRandom always draws the same index.
type fixedRandom int

func (f fixedRandom) IntN(int) int { return int(f) }

func newFooterRouter(t *testing.T, index int, page []byte) *gin.Engine {
	t.Helper()

	selector := app.NewFooterSelector(app.FooterSelectorConfig{
		Registry: domain.DefaultRegistry(),
		Random:   fixedRandom(index),
	})
	handler := NewFooterHandler(selector, document.NewPage(page, selector.TargetID()))

	router := gin.New()
	handler.RegisterPageRoutes(router)
	handler.RegisterCitationRoutes(router.Group("/api/v1"))

	return router
}

func serve(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))

	return w
}

func TestFooterHandler_Page(t *testing.T) {
	router := newFooterRouter(t, 3, document.DefaultPage())

	w := serve(router, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(),
		`<p id="footer-citations">“Music discovered by accident has the most dopamine.” - `+
			`<span title="a truthful commenter on youtube"><i>Paul Oketch</i></span></p>`)
}

func TestFooterHandler_PageIsFreshPerRequest(t *testing.T) {
	router := newFooterRouter(t, 0, document.DefaultPage())

	first := serve(router, "/")
	second := serve(router, "/")

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestFooterHandler_PageMissingTarget(t *testing.T) {
	router := newFooterRouter(t, 0, []byte(`<html><body><footer id="other"></footer></body></html>`))

	w := serve(router, "/")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
}

func TestFooterHandler_ListCitations(t *testing.T) {
	router := newFooterRouter(t, 0, document.DefaultPage())

	w := serve(router, "/api/v1/citations")

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.CitationListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 11, resp.Total)
	assert.Equal(t, "Lee Child", resp.Items[0].Author)
	assert.Empty(t, resp.Items[9].Author)
}

func TestFooterHandler_RandomCitation(t *testing.T) {
	router := newFooterRouter(t, 9, document.DefaultPage())

	w := serve(router, "/api/v1/citations/random")

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.CitationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 9, resp.Index)
	assert.Equal(t, "Doing anything is better than nothing.", resp.Text)
	assert.Equal(t, "“Doing anything is better than nothing.” - <span><i>?</i></span>", resp.Markup)
}

func TestFooterHandler_RandomCitation_FaultySourceIsServerError(t *testing.T) {
	router := newFooterRouter(t, 99, document.DefaultPage())

	w := serve(router, "/api/v1/citations/random")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
}

func TestFooterHandler_GetCitation(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"first", "/api/v1/citations/0", http.StatusOK, ""},
		{"last", "/api/v1/citations/10", http.StatusOK, ""},
		{"out of range", "/api/v1/citations/11", http.StatusNotFound, dto.ErrorCodeNotFound},
		{"negative", "/api/v1/citations/-1", http.StatusBadRequest, dto.ErrorCodeValidation},
		{"not a number", "/api/v1/citations/abc", http.StatusBadRequest, dto.ErrorCodeValidation},
	}

	router := newFooterRouter(t, 0, document.DefaultPage())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode == "" {
				return
			}

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
