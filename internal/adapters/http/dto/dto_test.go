package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/footer-citations/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewErrorResponseWithDetails(t *testing.T) {
	resp := NewErrorResponseWithDetails(ErrorCodeValidation, "invalid", map[string]string{"index": "must be a number"}).
		WithTraceID("trace-1")

	assert.Equal(t, ErrorCodeValidation, resp.Error.Code)
	assert.Equal(t, "must be a number", resp.Error.Details["index"])
	assert.Equal(t, "trace-1", resp.TraceID)
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeBadRequest, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}

func TestGetTraceID(t *testing.T) {
	tests := []struct {
		name         string
		setupContext func(*gin.Context)
		want         string
	}{
		{
			name:         "trace ID in context",
			setupContext: func(c *gin.Context) { c.Set("trace_id", "context-trace-123") },
			want:         "context-trace-123",
		},
		{
			name:         "request ID header",
			setupContext: func(c *gin.Context) { c.Request.Header.Set("X-Request-ID", "header-456") },
			want:         "header-456",
		},
		{
			name: "context takes precedence over header",
			setupContext: func(c *gin.Context) {
				c.Set("trace_id", "context-trace-123")
				c.Request.Header.Set("X-Request-ID", "header-456")
			},
			want: "context-trace-123",
		},
		{
			name:         "nothing set",
			setupContext: func(*gin.Context) {},
			want:         "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", http.NoBody)

			tt.setupContext(c)

			assert.Equal(t, tt.want, GetTraceID(c))
		})
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"nil", nil, http.StatusOK, ""},
		{"not found", domain.NewNotFoundError("citation", "12"), http.StatusNotFound, ErrorCodeNotFound},
		{"validation", domain.NewValidationError("index", "out of range"), http.StatusBadRequest, ErrorCodeValidation},
		{"unavailable", domain.NewUnavailableError("page", "unreadable"), http.StatusServiceUnavailable, ErrorCodeUnavailable},
		{"missing target is internal", domain.NewTargetNotFoundError("footer-citations"), http.StatusInternalServerError, ErrorCodeInternal},
		{"empty registry is internal", fmt.Errorf("select: %w", domain.ErrEmptyRegistry), http.StatusInternalServerError, ErrorCodeInternal},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ErrorCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapDomainError(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			if tt.err == nil {
				assert.Nil(t, resp)
				return
			}
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestMapDomainError_ValidationDetails(t *testing.T) {
	_, resp := MapDomainError(domain.NewValidationError("index", "out of range"))

	assert.Equal(t, map[string]string{"index": "out of range"}, resp.Error.Details)
}

func TestHandleError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	c.Set("trace_id", "trace-abc")

	HandleError(c, domain.NewTargetNotFoundError("footer-citations"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, c.IsAborted())

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, ErrorCodeInternal, response.Error.Code)
	assert.Equal(t, "an internal error occurred", response.Error.Message)
	assert.Equal(t, "trace-abc", response.TraceID)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(&CitationURI{Index: 0}))

	err := Validate(&CitationURI{Index: -1})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, map[string]string{"index": "must be greater than or equal to 0"}, ValidationErrors(err))
}

func TestBindURIAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    int
		wantErr error
	}{
		{"valid index", "/citations/3", 3, nil},
		{"negative index", "/citations/-1", 0, ErrValidation},
		{"not a number", "/citations/abc", 0, ErrBinding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()

			var (
				got    CitationURI
				gotErr error
			)
			engine.GET("/citations/:index", func(c *gin.Context) {
				gotErr = BindURIAndValidate(c, &got)
			})

			engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			if tt.wantErr != nil {
				require.ErrorIs(t, gotErr, tt.wantErr)
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.want, got.Index)
		})
	}
}

func TestNewCitationResponse(t *testing.T) {
	withAuthor := NewCitationResponse(3, domain.NewCitation("Music discovered by accident has the most dopamine.",
		domain.WithAuthor("Paul Oketch"), domain.WithTitle("a truthful commenter on youtube")))

	assert.Equal(t, CitationResponse{
		Index:  3,
		Text:   "Music discovered by accident has the most dopamine.",
		Author: "Paul Oketch",
		Title:  "a truthful commenter on youtube",
		Markup: "“Music discovered by accident has the most dopamine.” - <span title=\"a truthful commenter on youtube\"><i>Paul Oketch</i></span>",
	}, withAuthor)

	anonymous := NewCitationResponse(9, domain.NewCitation("Doing anything is better than nothing."))
	assert.Empty(t, anonymous.Author)
	assert.Contains(t, anonymous.Markup, "<i>?</i>")
}

func TestNewCitationListResponse(t *testing.T) {
	list := NewCitationListResponse(domain.DefaultRegistry())

	require.Len(t, list.Items, 11)
	assert.Equal(t, 11, list.Total)
	for i, item := range list.Items {
		assert.Equal(t, i, item.Index)
	}
}
